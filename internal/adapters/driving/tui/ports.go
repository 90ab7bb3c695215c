// Package tui provides an interactive terminal browser for workbooks.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/tripdata/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Inspector reads workbook sheets.
	Inspector driving.Inspector
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Inspector == nil {
		return ErrMissingInspector
	}
	return nil
}
