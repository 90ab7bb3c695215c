package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/core/ports/driven"
	"github.com/custodia-labs/tripdata/internal/core/ports/driving"
	"github.com/custodia-labs/tripdata/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.Importer = (*ImportService)(nil)

// ImportService runs the cities, foods and distances phases against a
// workbook. Each phase commits on its own; a fatal phase stops the run but
// leaves earlier phases in place.
type ImportService struct {
	workbooks driven.WorkbookOpener
	stores    driven.StoreOpener

	now func() time.Time
}

// NewImportService creates an import service.
func NewImportService(workbooks driven.WorkbookOpener, stores driven.StoreOpener) *ImportService {
	return &ImportService{
		workbooks: workbooks,
		stores:    stores,
		now:       time.Now,
	}
}

// Import loads the workbook at workbookPath into the destination store.
//
// The workbook is opened before the store, so a bad path is reported
// without touching the database. The store is closed on every path.
//
//nolint:gocyclo // Sequential phases with a stop check after each
func (s *ImportService) Import(
	ctx context.Context,
	workbookPath string,
	observer driving.ImportObserver,
) (*domain.ImportReport, error) {
	if observer == nil {
		observer = NopObserver{}
	}

	wb, err := s.workbooks.Open(workbookPath)
	if err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			return nil, err
		}
		return nil, workbookFault(err)
	}
	defer wb.Close()

	report := &domain.ImportReport{
		RunID:     uuid.NewString(),
		Workbook:  workbookPath,
		Sheets:    wb.SheetNames(),
		StartedAt: s.now(),
	}
	log := logger.With("run_id", report.RunID)
	log.Info("import started", "workbook", workbookPath, "sheets", report.Sheets)
	observer.WorkbookOpened(workbookPath, report.Sheets)

	finish := func() (*domain.ImportReport, error) {
		report.FinishedAt = s.now()
		if err := report.Err(); err != nil {
			log.Error("import failed", "error", err, "elapsed", report.FinishedAt.Sub(report.StartedAt))
			return report, err
		}
		log.Info("import finished",
			"cities", report.Total(domain.PhaseCities),
			"foods", report.Total(domain.PhaseFoods),
			"distances", report.Total(domain.PhaseDistances),
			"elapsed", report.FinishedAt.Sub(report.StartedAt))
		return report, nil
	}

	// record stores a phase result and reports whether the run may continue.
	record := func(res domain.PhaseResult) bool {
		observer.PhaseFinished(res)
		report.Add(res)
		if errors.Is(res.Err, domain.ErrMissingSheet) {
			log.Warn("sheet missing", "phase", res.Phase, "sheet", res.Sheet)
		}
		return !res.Fatal()
	}

	store, err := s.stores.Open(ctx)
	if err != nil {
		observer.PhaseStarted(domain.PhaseCities, "")
		record(domain.PhaseResult{Phase: domain.PhaseCities, Err: storeFault(err)})
		return finish()
	}
	defer store.Close()

	reconciler := NewCityReconciler(store, log)
	foods := NewFoodImporter(store, log)
	distances := NewDistanceImporter(store, log)

	// Cities come from both distance sheets.
	observer.PhaseStarted(domain.PhaseCities, "")
	distanceSheet, err := optionalSheet(wb, domain.SheetDistances)
	if err != nil {
		record(domain.PhaseResult{Phase: domain.PhaseCities, Err: err})
		return finish()
	}
	newCitiesSheet, err := optionalSheet(wb, domain.SheetNewCities)
	if err != nil {
		record(domain.PhaseResult{Phase: domain.PhaseCities, Err: err})
		return finish()
	}
	if !record(reconciler.Reconcile(ctx, distanceSheet, newCitiesSheet)) {
		return finish()
	}

	observer.PhaseStarted(domain.PhaseFoods, domain.SheetFoods)
	foodSheet, err := wb.Sheet(domain.SheetFoods)
	if err != nil {
		if !record(sheetError(domain.PhaseFoods, domain.SheetFoods, err)) {
			return finish()
		}
	} else if !record(foods.Import(ctx, foodSheet)) {
		return finish()
	}

	observer.PhaseStarted(domain.PhaseDistances, domain.SheetDistances)
	if distanceSheet == nil {
		record(sheetError(domain.PhaseDistances, domain.SheetDistances,
			missingSheet(domain.SheetDistances)))
	} else if !record(distances.ImportSheet(ctx, distanceSheet)) {
		return finish()
	}

	// New Cities is optional and skipped without a message when absent.
	if newCitiesSheet != nil {
		observer.PhaseStarted(domain.PhaseDistances, domain.SheetNewCities)
		record(distances.ImportSheet(ctx, newCitiesSheet))
	}

	return finish()
}

// optionalSheet reads a sheet, returning nil without error when it is absent.
func optionalSheet(wb driven.Workbook, name string) (*domain.Sheet, error) {
	if !wb.HasSheet(name) {
		return nil, nil
	}
	sheet, err := wb.Sheet(name)
	if err != nil {
		return nil, workbookFault(err)
	}
	return sheet, nil
}

// sheetError builds the result for a phase whose sheet could not be read.
func sheetError(phase domain.Phase, sheet string, err error) domain.PhaseResult {
	if !errors.Is(err, domain.ErrMissingSheet) {
		err = workbookFault(err)
	}
	return domain.PhaseResult{Phase: phase, Sheet: sheet, Err: err}
}

func missingSheet(name string) error {
	return fmt.Errorf("%w: %q", domain.ErrMissingSheet, name)
}

// NopObserver ignores all import progress.
type NopObserver struct{}

// WorkbookOpened does nothing.
func (NopObserver) WorkbookOpened(string, []string) {}

// PhaseStarted does nothing.
func (NopObserver) PhaseStarted(domain.Phase, string) {}

// PhaseFinished does nothing.
func (NopObserver) PhaseFinished(domain.PhaseResult) {}
