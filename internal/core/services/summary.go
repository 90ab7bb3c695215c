package services

import (
	"context"

	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/core/ports/driven"
	"github.com/custodia-labs/tripdata/internal/core/ports/driving"
)

// Ensure SummaryService implements the interface.
var _ driving.Summariser = (*SummaryService)(nil)

// SummaryService reports row counts in the destination store.
type SummaryService struct {
	stores driven.StoreOpener
}

// NewSummaryService creates a summary service.
func NewSummaryService(stores driven.StoreOpener) *SummaryService {
	return &SummaryService{stores: stores}
}

// Summary opens the store, counts its rows and closes it again.
func (s *SummaryService) Summary(ctx context.Context) (domain.Counts, error) {
	store, err := s.stores.Open(ctx)
	if err != nil {
		return domain.Counts{}, storeFault(err)
	}
	defer store.Close()

	counts, err := store.Counts(ctx)
	if err != nil {
		return domain.Counts{}, storeFault(err)
	}
	return counts, nil
}
