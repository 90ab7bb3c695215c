package services

import (
	"context"
	"log/slog"
	"sort"

	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/core/ports/driven"
	"github.com/custodia-labs/tripdata/internal/logger"
)

// CityReconciler makes sure every city named on a distance sheet exists
// exactly once in the city table.
type CityReconciler struct {
	store driven.Store
	log   *slog.Logger
}

// NewCityReconciler creates a reconciler writing to store.
func NewCityReconciler(store driven.Store, log *slog.Logger) *CityReconciler {
	if log == nil {
		log = logger.L()
	}
	return &CityReconciler{store: store, log: log}
}

// CityNames returns the sorted union of non-null Starting City and
// Ending City values across sheets. Nil sheets are ignored.
func CityNames(sheets ...*domain.Sheet) ([]string, error) {
	seen := make(map[string]struct{})
	for _, sheet := range sheets {
		if sheet == nil {
			continue
		}
		if err := sheet.Require(domain.ColumnStartingCity, domain.ColumnEndingCity); err != nil {
			return nil, workbookFault(err)
		}
		for _, row := range sheet.Rows {
			for _, col := range []string{domain.ColumnStartingCity, domain.ColumnEndingCity} {
				if c := row.Get(col); !c.Null() {
					seen[c.String()] = struct{}{}
				}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Reconcile inserts the cities named on sheets that are not yet stored.
// Imported is the number of unique names; Duplicates counts names the
// store already held.
func (r *CityReconciler) Reconcile(ctx context.Context, sheets ...*domain.Sheet) domain.PhaseResult {
	result := domain.PhaseResult{Phase: domain.PhaseCities}

	names, err := CityNames(sheets...)
	if err != nil {
		result.Err = err
		return result
	}

	result.Err = inTx(ctx, r.store, func(tx driven.Tx) error {
		for _, name := range names {
			inserted, err := tx.Cities().Ensure(ctx, name)
			if err != nil {
				return storeFault(err)
			}
			if !inserted {
				result.Duplicates++
			}
		}
		return nil
	})
	if result.Err != nil {
		result.Duplicates = 0
		return result
	}

	result.Imported = len(names)
	r.log.Debug("cities reconciled", "unique", len(names), "existing", result.Duplicates)
	return result
}
