package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Workbook Errors.

	// ErrFileNotFound indicates the workbook path does not exist.
	// It is reported before the destination store is touched.
	ErrFileNotFound = errors.New("file not found")

	// ErrUnreadableWorkbook indicates the file exists but is not a valid
	// spreadsheet container.
	ErrUnreadableWorkbook = errors.New("unreadable workbook")

	// ErrMissingSheet indicates a required sheet is absent.
	// The phase that needed it is skipped and the run continues.
	ErrMissingSheet = errors.New("missing sheet")

	// ErrMissingColumn indicates a sheet lacks one of its fixed columns.
	ErrMissingColumn = errors.New("missing column")

	// ErrInvalidCell indicates a non-null cell could not be converted
	// to the type its column requires.
	ErrInvalidCell = errors.New("invalid cell")

	// Import Errors.

	// ErrUnresolvedReference indicates a row names a city that is not
	// present in the city table. The row is skipped and the importer
	// attaches this error to the warning it logs.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrWorkbookFault wraps any file-format layer failure during an import.
	// It aborts the remaining phases.
	ErrWorkbookFault = errors.New("workbook fault")

	// ErrStoreFault wraps any database layer failure during an import.
	// It aborts the remaining phases; already committed phases are kept.
	ErrStoreFault = errors.New("store fault")
)
