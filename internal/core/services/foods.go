package services

import (
	"context"
	"log/slog"

	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/core/ports/driven"
	"github.com/custodia-labs/tripdata/internal/logger"
)

// FoodImporter loads the grouped Foods sheet.
type FoodImporter struct {
	store driven.Store
	log   *slog.Logger
}

// NewFoodImporter creates an importer writing to store.
func NewFoodImporter(store driven.Store, log *slog.Logger) *FoodImporter {
	if log == nil {
		log = logger.L()
	}
	return &FoodImporter{store: store, log: log}
}

// FillCities forward-fills the City column: a null City inherits the
// nearest preceding non-null value. Rows keep their order. The input is
// not modified.
func FillCities(rows []domain.Row) []domain.Row {
	filled := make([]domain.Row, 0, len(rows))
	last := domain.NullCell()
	for _, row := range rows {
		if c := row.Get(domain.ColumnCity); !c.Null() {
			last = c
			filled = append(filled, row)
			continue
		}
		filled = append(filled, row.With(domain.ColumnCity, last))
	}
	return filled
}

// Import inserts one food per row carrying a city, an item and a cost.
// Rows without an item are group headers and are dropped. Rows whose city
// is not stored are logged and counted as skipped.
func (i *FoodImporter) Import(ctx context.Context, sheet *domain.Sheet) domain.PhaseResult {
	result := domain.PhaseResult{Phase: domain.PhaseFoods, Sheet: domain.SheetFoods}
	if sheet == nil {
		result.Err = missingSheet(result.Sheet)
		return result
	}
	result.Sheet = sheet.Name

	if err := sheet.Require(domain.ColumnCity, domain.ColumnFoodItem, domain.ColumnCost); err != nil {
		result.Err = workbookFault(err)
		return result
	}

	var imported, duplicates, skipped int
	result.Err = inTx(ctx, i.store, func(tx driven.Tx) error {
		for _, row := range FillCities(sheet.Rows) {
			city, item, cost := row.Get(domain.ColumnCity), row.Get(domain.ColumnFoodItem), row.Get(domain.ColumnCost)
			if item.Null() || city.Null() || cost.Null() {
				continue
			}

			price, err := cellFloat(sheet, row, domain.ColumnCost)
			if err != nil {
				return err
			}

			cityID, ok, err := resolveCity(ctx, tx.Cities(), city.String())
			if err != nil {
				return err
			}
			if !ok {
				i.log.Warn("city not found, skipping food",
					"city", city.String(), "food", item.String(), "row", row.Number,
					"error", unresolvedCity(city.String()))
				skipped++
				continue
			}

			inserted, err := tx.Foods().Insert(ctx, domain.Food{Name: item.String(), CityID: cityID, Price: price})
			if err != nil {
				return storeFault(err)
			}
			if !inserted {
				duplicates++
			}
			imported++
		}
		return nil
	})
	if result.Err != nil {
		return result
	}

	result.Imported, result.Duplicates, result.Skipped = imported, duplicates, skipped
	i.log.Debug("foods imported", "count", imported, "duplicates", duplicates, "skipped", skipped)
	return result
}
