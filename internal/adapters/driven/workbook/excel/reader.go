// Package excel reads .xlsx workbooks with excelize and exposes each sheet
// as a header-keyed table of raw cell values.
package excel

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/core/ports/driven"
)

// Ensure Opener and Workbook implement the interfaces.
var (
	_ driven.WorkbookOpener = (*Opener)(nil)
	_ driven.Workbook       = (*Workbook)(nil)
)

// Opener opens workbooks from the local filesystem.
type Opener struct{}

// NewOpener creates a workbook opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open opens the workbook at path.
func (o *Opener) Open(path string) (driven.Workbook, error) {
	return Open(path)
}

// Workbook is an open excelize file.
type Workbook struct {
	file   *excelize.File
	path   string
	sheets []string
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrUnreadableWorkbook, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrUnreadableWorkbook, path, err)
	}

	return &Workbook{
		file:   f,
		path:   path,
		sheets: f.GetSheetList(),
	}, nil
}

// Path returns the file the workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.sheets))
	copy(names, w.sheets)
	return names
}

// HasSheet reports whether a sheet is named exactly name.
func (w *Workbook) HasSheet(name string) bool {
	for _, s := range w.sheets {
		if s == name {
			return true
		}
	}
	return false
}

// Sheet reads a sheet. The first row is the header.
func (w *Workbook) Sheet(name string) (*domain.Sheet, error) {
	if !w.HasSheet(name) {
		return nil, fmt.Errorf("%w: %q", domain.ErrMissingSheet, name)
	}

	rows, err := w.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", name, err)
	}

	return domain.NewSheet(name, rows), nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}
