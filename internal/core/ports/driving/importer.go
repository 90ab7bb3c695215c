package driving

import (
	"context"

	"github.com/custodia-labs/tripdata/internal/core/domain"
)

// Importer loads a workbook into the destination store.
type Importer interface {
	// Import runs cities, foods and distances phases in order.
	// The report is nil only when the workbook could not be opened.
	// The error is non-nil when the run did not succeed.
	Import(ctx context.Context, workbookPath string, observer ImportObserver) (*domain.ImportReport, error)
}

// ImportObserver receives progress while an import runs. Any method may be a no-op.
type ImportObserver interface {
	// WorkbookOpened is called once with the sheets found in the workbook.
	WorkbookOpened(path string, sheets []string)

	// PhaseStarted is called before a phase reads its sheet.
	PhaseStarted(phase domain.Phase, sheet string)

	// PhaseFinished is called with each phase result as soon as it is known.
	PhaseFinished(result domain.PhaseResult)
}

// Summariser reports what the destination store currently holds.
type Summariser interface {
	Summary(ctx context.Context) (domain.Counts, error)
}
