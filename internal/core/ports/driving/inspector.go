package driving

import "context"

// Inspector previews the contents of an unfamiliar workbook.
type Inspector interface {
	// Inspect returns one preview per sheet in workbook order.
	// At most limit rows are included per sheet; limit <= 0 includes all rows.
	Inspect(ctx context.Context, workbookPath string, limit int) ([]SheetPreview, error)
}

// SheetPreview describes one sheet of a workbook.
type SheetPreview struct {
	// Name is the sheet name.
	Name string

	// RowCount is the number of data rows, excluding the header.
	RowCount int

	// Columns are the header names in column order.
	Columns []string

	// Rows holds the previewed rows as raw strings aligned with Columns.
	// Blank cells are empty strings.
	Rows [][]string
}
