// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/tripdata/internal/core/ports/driving"
)

// SheetsLoaded carries the workbook previews back to the model.
type SheetsLoaded struct {
	Previews []driving.SheetPreview
	Err      error
}

// SheetChanged is sent after the active sheet switches.
type SheetChanged struct {
	Index int
	Name  string
}
