package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/core/ports/driven"
)

// inTx runs fn in a new transaction, committing on success and rolling
// back on error. Store failures are tagged with domain.ErrStoreFault.
func inTx(ctx context.Context, store driven.Store, fn func(tx driven.Tx) error) error {
	tx, err := store.Begin(ctx)
	if err != nil {
		return storeFault(err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			err = errors.Join(err, storeFault(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return storeFault(err)
	}
	return nil
}

// storeFault tags err as a database layer failure.
func storeFault(err error) error {
	if errors.Is(err, domain.ErrStoreFault) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreFault, err)
}

// workbookFault tags err as a file-format layer failure.
func workbookFault(err error) error {
	if errors.Is(err, domain.ErrWorkbookFault) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrWorkbookFault, err)
}

// resolveCity looks up a city id. ok is false when the city is absent.
func resolveCity(ctx context.Context, cities driven.CityRepository, name string) (id int64, ok bool, err error) {
	id, err = cities.ID(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, storeFault(err)
	}
	return id, true, nil
}

// unresolvedCity reports a row naming a city that is not stored.
func unresolvedCity(names ...string) error {
	return fmt.Errorf("%w: city %s", domain.ErrUnresolvedReference, strings.Join(quoteAll(names), ", "))
}

func quoteAll(names []string) []string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = strconv.Quote(n)
	}
	return quoted
}

// cellFloat parses a numeric cell, tagging failures with the sheet position.
func cellFloat(sheet *domain.Sheet, row domain.Row, col string) (float64, error) {
	v, err := row.Get(col).Float()
	if err != nil {
		return 0, workbookFault(fmt.Errorf("sheet %q row %d column %q: %w", sheet.Name, row.Number, col, err))
	}
	return v, nil
}
