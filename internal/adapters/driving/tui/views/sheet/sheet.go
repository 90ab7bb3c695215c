// Package sheet provides the scrollable table view of one workbook sheet.
package sheet

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tripdata/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tripdata/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tripdata/internal/core/ports/driving"
)

const (
	minColumnWidth = 4
	maxColumnWidth = 32
)

// View shows the rows of a single sheet.
type View struct {
	styles  *styles.Styles
	table   table.Model
	preview driving.SheetPreview
	width   int
	height  int
}

// NewView creates an empty sheet view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	t := table.New(
		table.WithFocused(true),
		table.WithKeyMap(tableKeyMap(km)),
		table.WithStyles(s.Table()),
	)

	return &View{styles: s, table: t}
}

// tableKeyMap maps the browser bindings onto the table's movement keys.
func tableKeyMap(km *keymap.KeyMap) table.KeyMap {
	tk := table.DefaultKeyMap()
	tk.LineUp = km.Up
	tk.LineDown = km.Down
	tk.PageUp = km.PageUp
	tk.PageDown = km.PageDown
	return tk
}

// SetPreview replaces the displayed sheet and moves the cursor to the top.
func (v *View) SetPreview(p driving.SheetPreview) {
	v.preview = p

	// Rows must be cleared before the column count changes.
	v.table.SetRows(nil)
	v.table.SetColumns(columns(p))
	v.table.SetRows(rows(p))
	v.table.GotoTop()
}

// Preview returns the displayed sheet.
func (v *View) Preview() driving.SheetPreview {
	return v.preview
}

// SetDimensions sets the space available to the table.
func (v *View) SetDimensions(width, height int) {
	v.width, v.height = width, height
	v.table.SetWidth(width)
	if height > 0 {
		v.table.SetHeight(height)
	}
}

// Update forwards key messages to the table.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

// View renders the table.
func (v *View) View() string {
	if len(v.preview.Columns) == 0 {
		return v.styles.Muted.Render("(empty sheet)")
	}
	return v.table.View()
}

// Cursor returns the 1-based row under the cursor, or 0 for an empty sheet.
func (v *View) Cursor() int {
	if len(v.preview.Rows) == 0 {
		return 0
	}
	return v.table.Cursor() + 1
}

// columns sizes each column to its widest value within limits.
func columns(p driving.SheetPreview) []table.Column {
	cols := make([]table.Column, len(p.Columns))
	for i, name := range p.Columns {
		width := lipgloss.Width(name)
		for _, row := range p.Rows {
			if i < len(row) {
				width = max(width, lipgloss.Width(row[i]))
			}
		}
		cols[i] = table.Column{Title: name, Width: min(max(width, minColumnWidth), maxColumnWidth)}
	}
	return cols
}

// rows pads or trims each row to the column count.
func rows(p driving.SheetPreview) []table.Row {
	out := make([]table.Row, len(p.Rows))
	for i, row := range p.Rows {
		r := make(table.Row, len(p.Columns))
		copy(r, row)
		out[i] = r
	}
	return out
}
