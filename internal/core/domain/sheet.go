package domain

import (
	"fmt"
	"strconv"
)

// Sheet names the importer knows about.
const (
	SheetDistances = "Distances"
	SheetNewCities = "New Cities"
	SheetFoods     = "Foods"
)

// Column names on the Distances and New Cities sheets.
const (
	ColumnStartingCity = "Starting City"
	ColumnEndingCity   = "Ending City"
	ColumnKilometers   = "Kilometers"
)

// Column names on the Foods sheet.
const (
	ColumnCity     = "City"
	ColumnFoodItem = "Traditional Food Item"
	ColumnCost     = "Cost"
)

// Cell is a single raw spreadsheet value. The zero value is null.
type Cell struct {
	raw     string
	present bool
}

// NewCell returns a cell holding raw. An empty raw value is null,
// matching a blank spreadsheet cell.
func NewCell(raw string) Cell {
	return Cell{raw: raw, present: raw != ""}
}

// NullCell returns a blank cell.
func NullCell() Cell {
	return Cell{}
}

// Null reports whether the cell is blank.
func (c Cell) Null() bool {
	return !c.present
}

// String returns the raw value exactly as read. Null cells return "".
func (c Cell) String() string {
	return c.raw
}

// Float parses the raw value as a number.
func (c Cell) Float() (float64, error) {
	if c.Null() {
		return 0, fmt.Errorf("%w: null value", ErrInvalidCell)
	}
	f, err := strconv.ParseFloat(c.raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidCell, c.raw)
	}
	return f, nil
}

// Row is one data row of a sheet keyed by column name.
type Row struct {
	// Number is the 1-based spreadsheet row number. The header is row 1.
	Number int

	Cells map[string]Cell
}

// Get returns the cell in column col. Absent columns read as null.
func (r Row) Get(col string) Cell {
	return r.Cells[col]
}

// With returns a copy of the row with col set to c.
func (r Row) With(col string, c Cell) Row {
	cells := make(map[string]Cell, len(r.Cells)+1)
	for k, v := range r.Cells {
		cells[k] = v
	}
	cells[col] = c
	return Row{Number: r.Number, Cells: cells}
}

// Sheet is a named tabular page of a workbook with its rows in source order.
type Sheet struct {
	Name    string
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the header row contains col.
func (s *Sheet) HasColumn(col string) bool {
	for _, c := range s.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Require returns ErrMissingColumn for the first of cols absent from the header.
func (s *Sheet) Require(cols ...string) error {
	for _, col := range cols {
		if !s.HasColumn(col) {
			return fmt.Errorf("%w: sheet %q has no column %q", ErrMissingColumn, s.Name, col)
		}
	}
	return nil
}

// NewSheet builds a sheet from raw grid rows. The first row is the header.
// Rows shorter than the widest row are padded with null cells.
func NewSheet(name string, grid [][]string) *Sheet {
	sheet := &Sheet{Name: name}
	if len(grid) == 0 {
		return sheet
	}

	width := 0
	for _, r := range grid {
		if len(r) > width {
			width = len(r)
		}
	}

	sheet.Columns = headerNames(grid[0], width)
	sheet.Rows = make([]Row, 0, len(grid)-1)

	for i, raw := range grid[1:] {
		cells := make(map[string]Cell, width)
		for j, col := range sheet.Columns {
			if j < len(raw) {
				cells[col] = NewCell(raw[j])
			} else {
				cells[col] = NullCell()
			}
		}
		// Header is spreadsheet row 1, so the first data row is row 2.
		sheet.Rows = append(sheet.Rows, Row{Number: i + 2, Cells: cells})
	}

	return sheet
}

// headerNames names every column up to width. Blank headers become
// "Unnamed: <index>" and repeated names gain a ".N" suffix.
func headerNames(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]int, width)

	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			candidate := name + "." + strconv.Itoa(n+1)
			for {
				if _, taken := seen[candidate]; !taken {
					break
				}
				seen[name]++
				candidate = name + "." + strconv.Itoa(seen[name])
			}
			seen[candidate] = 0
			name = candidate
		} else {
			seen[name] = 0
		}

		names[i] = name
	}

	return names
}
