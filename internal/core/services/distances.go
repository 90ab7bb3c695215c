package services

import (
	"context"
	"log/slog"

	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/core/ports/driven"
	"github.com/custodia-labs/tripdata/internal/logger"
)

// DistanceImporter loads the Distances and New Cities sheets.
type DistanceImporter struct {
	store driven.Store
	log   *slog.Logger
}

// NewDistanceImporter creates an importer writing to store.
func NewDistanceImporter(store driven.Store, log *slog.Logger) *DistanceImporter {
	if log == nil {
		log = logger.L()
	}
	return &DistanceImporter{store: store, log: log}
}

// ImportSheet upserts one distance per row carrying both cities and a
// distance. An existing distance for the same ordered pair is overwritten.
// Rows naming an unstored city are logged and counted as skipped.
func (i *DistanceImporter) ImportSheet(ctx context.Context, sheet *domain.Sheet) domain.PhaseResult {
	result := domain.PhaseResult{Phase: domain.PhaseDistances}
	if sheet == nil {
		result.Sheet = domain.SheetDistances
		result.Err = missingSheet(result.Sheet)
		return result
	}
	result.Sheet = sheet.Name

	if err := sheet.Require(domain.ColumnStartingCity, domain.ColumnEndingCity, domain.ColumnKilometers); err != nil {
		result.Err = workbookFault(err)
		return result
	}

	var imported, skipped int
	result.Err = inTx(ctx, i.store, func(tx driven.Tx) error {
		for _, row := range sheet.Rows {
			from, to := row.Get(domain.ColumnStartingCity), row.Get(domain.ColumnEndingCity)
			if from.Null() || to.Null() || row.Get(domain.ColumnKilometers).Null() {
				continue
			}

			km, err := cellFloat(sheet, row, domain.ColumnKilometers)
			if err != nil {
				return err
			}

			fromID, fromOK, err := resolveCity(ctx, tx.Cities(), from.String())
			if err != nil {
				return err
			}
			toID, toOK, err := resolveCity(ctx, tx.Cities(), to.String())
			if err != nil {
				return err
			}
			if !fromOK || !toOK {
				var missing []string
				if !fromOK {
					missing = append(missing, from.String())
				}
				if !toOK {
					missing = append(missing, to.String())
				}
				i.log.Warn("city not found, skipping distance",
					"sheet", sheet.Name, "from", from.String(), "to", to.String(), "row", row.Number,
					"error", unresolvedCity(missing...))
				skipped++
				continue
			}

			if err := tx.Distances().Upsert(ctx, domain.Distance{FromCityID: fromID, ToCityID: toID, Kilometers: km}); err != nil {
				return storeFault(err)
			}
			imported++
		}
		return nil
	})
	if result.Err != nil {
		return result
	}

	result.Imported, result.Skipped = imported, skipped
	i.log.Debug("distances imported", "sheet", sheet.Name, "count", imported, "skipped", skipped)
	return result
}
