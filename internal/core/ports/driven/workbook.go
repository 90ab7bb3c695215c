package driven

import "github.com/custodia-labs/tripdata/internal/core/domain"

// WorkbookOpener opens spreadsheet files.
type WorkbookOpener interface {
	// Open opens the workbook at path.
	// Returns domain.ErrFileNotFound if the path does not exist and
	// domain.ErrUnreadableWorkbook if it is not a spreadsheet container.
	Open(path string) (Workbook, error)
}

// Workbook exposes the named sheets of an open spreadsheet file.
type Workbook interface {
	// Path returns the file the workbook was opened from.
	Path() string

	// SheetNames returns the sheet names in workbook order.
	SheetNames() []string

	// HasSheet reports whether a sheet named name exists.
	HasSheet(name string) bool

	// Sheet reads a sheet with its rows in source order.
	// Returns domain.ErrMissingSheet if no sheet is named name.
	Sheet(name string) (*domain.Sheet, error)

	// Close releases the underlying file.
	Close() error
}
