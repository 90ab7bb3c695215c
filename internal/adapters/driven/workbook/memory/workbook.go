// Package memory provides an in-memory workbook for tests and for feeding
// sheets that did not come from a file.
package memory

import (
	"fmt"

	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/core/ports/driven"
)

// Ensure Workbook and Opener implement the interfaces.
var (
	_ driven.Workbook       = (*Workbook)(nil)
	_ driven.WorkbookOpener = (*Opener)(nil)
)

// Workbook is an in-memory implementation of driven.Workbook.
type Workbook struct {
	path   string
	order  []string
	sheets map[string]*domain.Sheet
	closed bool
}

// NewWorkbook creates a workbook whose sheets are built from raw grids.
// Sheets keep the order they are added in.
func NewWorkbook(path string) *Workbook {
	return &Workbook{
		path:   path,
		sheets: make(map[string]*domain.Sheet),
	}
}

// AddSheet adds a sheet; the first grid row is the header.
func (w *Workbook) AddSheet(name string, grid [][]string) *Workbook {
	if _, ok := w.sheets[name]; !ok {
		w.order = append(w.order, name)
	}
	w.sheets[name] = domain.NewSheet(name, grid)
	return w
}

// Path returns the path the workbook was created with.
func (w *Workbook) Path() string {
	return w.path
}

// SheetNames returns sheet names in insertion order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.order))
	copy(names, w.order)
	return names
}

// HasSheet reports whether a sheet named name exists.
func (w *Workbook) HasSheet(name string) bool {
	_, ok := w.sheets[name]
	return ok
}

// Sheet returns the named sheet.
func (w *Workbook) Sheet(name string) (*domain.Sheet, error) {
	sheet, ok := w.sheets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrMissingSheet, name)
	}
	return sheet, nil
}

// Close marks the workbook closed.
func (w *Workbook) Close() error {
	w.closed = true
	return nil
}

// Closed reports whether Close was called.
func (w *Workbook) Closed() bool {
	return w.closed
}

// Opener hands out registered workbooks by path.
type Opener struct {
	books map[string]*Workbook
}

// NewOpener creates an opener serving the given workbooks.
func NewOpener(books ...*Workbook) *Opener {
	o := &Opener{books: make(map[string]*Workbook, len(books))}
	for _, b := range books {
		o.books[b.path] = b
	}
	return o
}

// Open returns the workbook registered at path or domain.ErrFileNotFound.
func (o *Opener) Open(path string) (driven.Workbook, error) {
	b, ok := o.books[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
	}
	return b, nil
}
