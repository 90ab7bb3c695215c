package sheet

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tripdata/internal/core/ports/driving"
)

func distancesPreview() driving.SheetPreview {
	return driving.SheetPreview{
		Name:     "Distances",
		RowCount: 3,
		Columns:  []string{"Starting City", "Ending City", "Kilometers"},
		Rows: [][]string{
			{"Lima", "Cusco", "571"},
			{"Cusco", "Puno", "389"},
			{"Puno", "Lima", "1300"},
		},
	}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil)

	require.NotNil(t, v)
	assert.Equal(t, 0, v.Cursor())
	assert.Contains(t, v.View(), "empty sheet")
}

func TestView_SetPreview(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(80, 10)

	v.SetPreview(distancesPreview())

	assert.Equal(t, "Distances", v.Preview().Name)
	assert.Equal(t, 1, v.Cursor())
	view := v.View()
	assert.Contains(t, view, "Starting City")
	assert.Contains(t, view, "Cusco")
}

func TestView_CursorMoves(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(80, 10)
	v.SetPreview(distancesPreview())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})

	assert.Equal(t, 3, v.Cursor())
}

func TestView_SwitchToNarrowerSheet(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(80, 10)
	v.SetPreview(distancesPreview())

	narrow := driving.SheetPreview{
		Name:    "Notes",
		Columns: []string{"Remark"},
		Rows:    [][]string{{"first"}, {"second"}},
	}

	assert.NotPanics(t, func() { v.SetPreview(narrow) })
	assert.Equal(t, 1, v.Cursor())
	assert.Contains(t, v.View(), "second")
}

func TestColumns_Widths(t *testing.T) {
	p := driving.SheetPreview{
		Columns: []string{"ID", "Traditional Food Item"},
		Rows:    [][]string{{"1", "A dish with a very long name that keeps going on"}},
	}

	cols := columns(p)

	require.Len(t, cols, 2)
	assert.Equal(t, minColumnWidth, cols[0].Width)
	assert.Equal(t, maxColumnWidth, cols[1].Width)
}

func TestRows_PadsShortRows(t *testing.T) {
	p := driving.SheetPreview{
		Columns: []string{"a", "b", "c"},
		Rows:    [][]string{{"1"}, {"1", "2", "3", "4"}},
	}

	out := rows(p)

	assert.Len(t, out[0], 3)
	assert.Equal(t, "", out[0][2])
	assert.Len(t, out[1], 3)
}
