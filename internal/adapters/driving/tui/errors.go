package tui

import "errors"

// ErrMissingInspector is returned when the inspector is not provided.
var ErrMissingInspector = errors.New("tui: inspector is required")

// ErrMissingWorkbook is returned when no workbook path is given.
var ErrMissingWorkbook = errors.New("tui: workbook path is required")
