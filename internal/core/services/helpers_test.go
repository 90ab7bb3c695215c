package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	storemem "github.com/custodia-labs/tripdata/internal/adapters/driven/storage/memory"
	bookmem "github.com/custodia-labs/tripdata/internal/adapters/driven/workbook/memory"
	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/core/ports/driven"
)

var errDiskFull = errors.New("disk full")

var (
	distanceHeader = []string{domain.ColumnStartingCity, domain.ColumnEndingCity, domain.ColumnKilometers}
	foodHeader     = []string{domain.ColumnCity, domain.ColumnFoodItem, domain.ColumnCost}
)

// grid prepends header to rows.
func grid(header []string, rows ...[]string) [][]string {
	return append([][]string{header}, rows...)
}

// limaWorkbook is the Lima/Cusco example workbook with the given distance.
func limaWorkbook(path, km string) *bookmem.Workbook {
	return bookmem.NewWorkbook(path).
		AddSheet(domain.SheetDistances, grid(distanceHeader, []string{"Lima", "Cusco", km})).
		AddSheet(domain.SheetFoods, grid(foodHeader, []string{"Lima", "Ceviche", "12.5"}))
}

// snapshot is everything a store holds, with city ids replaced by names.
type snapshot struct {
	Cities    []string
	Foods     []string
	Distances map[string]float64
}

func readStore(t *testing.T, store driven.Store) snapshot {
	t.Helper()
	ctx := context.Background()

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback()

	cities, err := tx.Cities().List(ctx)
	require.NoError(t, err)
	foods, err := tx.Foods().List(ctx)
	require.NoError(t, err)
	distances, err := tx.Distances().List(ctx)
	require.NoError(t, err)

	names := make(map[int64]string, len(cities))
	snap := snapshot{Distances: make(map[string]float64)}
	for _, c := range cities {
		names[c.ID] = c.Name
		snap.Cities = append(snap.Cities, c.Name)
	}
	for _, f := range foods {
		snap.Foods = append(snap.Foods, f.Name+"@"+names[f.CityID])
	}
	for _, d := range distances {
		snap.Distances[names[d.FromCityID]+"->"+names[d.ToCityID]] = d.Kilometers
	}
	return snap
}

// seedCities stores names in one committed transaction.
func seedCities(t *testing.T, store driven.Store, names ...string) {
	t.Helper()
	ctx := context.Background()

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	for _, name := range names {
		_, err := tx.Cities().Ensure(ctx, name)
		require.NoError(t, err)
	}
	require.NoError(t, tx.Commit())
}

// ==================== Fakes ====================

// storeOpenerFunc adapts a function to driven.StoreOpener.
type storeOpenerFunc func(ctx context.Context) (driven.Store, error)

func (f storeOpenerFunc) Open(ctx context.Context) (driven.Store, error) { return f(ctx) }

// countingOpener records how often the store was opened and closed.
type countingOpener struct {
	store  driven.Store
	opens  int
	closes int
}

func (o *countingOpener) Open(context.Context) (driven.Store, error) {
	o.opens++
	return &closeCounter{Store: o.store, closes: &o.closes}, nil
}

type closeCounter struct {
	driven.Store
	closes *int
}

func (c *closeCounter) Close() error {
	*c.closes++
	return c.Store.Close()
}

// faultyStore fails food inserts or distance upserts with err.
type faultyStore struct {
	*storemem.Store
	foodErr     error
	distanceErr error
}

func (s *faultyStore) Open(context.Context) (driven.Store, error) { return s, nil }

func (s *faultyStore) Begin(ctx context.Context) (driven.Tx, error) {
	tx, err := s.Store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &faultyTx{Tx: tx, store: s}, nil
}

type faultyTx struct {
	driven.Tx
	store *faultyStore
}

func (t *faultyTx) Foods() driven.FoodRepository {
	return &faultyFoods{FoodRepository: t.Tx.Foods(), err: t.store.foodErr}
}

func (t *faultyTx) Distances() driven.DistanceRepository {
	return &faultyDistances{DistanceRepository: t.Tx.Distances(), err: t.store.distanceErr}
}

type faultyFoods struct {
	driven.FoodRepository
	err error
}

func (f *faultyFoods) Insert(ctx context.Context, food domain.Food) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.FoodRepository.Insert(ctx, food)
}

type faultyDistances struct {
	driven.DistanceRepository
	err error
}

func (d *faultyDistances) Upsert(ctx context.Context, dist domain.Distance) error {
	if d.err != nil {
		return d.err
	}
	return d.DistanceRepository.Upsert(ctx, dist)
}

// recordingObserver keeps every progress event as a string.
type recordingObserver struct {
	events  []string
	results []domain.PhaseResult
}

func (o *recordingObserver) WorkbookOpened(path string, _ []string) {
	o.events = append(o.events, "opened "+path)
}

func (o *recordingObserver) PhaseStarted(phase domain.Phase, sheet string) {
	o.events = append(o.events, "start "+string(phase)+" "+sheet)
}

func (o *recordingObserver) PhaseFinished(result domain.PhaseResult) {
	o.events = append(o.events, "finish "+string(result.Phase)+" "+result.Sheet)
	o.results = append(o.results, result)
}
