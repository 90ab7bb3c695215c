// Package memory provides an in-memory destination store with the same
// conflict semantics as the SQL stores. It backs tests and dry runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.StoreOpener = (*Store)(nil)
	_ driven.Store       = (*Store)(nil)
	_ driven.Tx          = (*tx)(nil)
)

type foodKey struct {
	name   string
	cityID int64
	price  float64
}

type pairKey struct {
	from int64
	to   int64
}

// tables is one consistent copy of every table.
type tables struct {
	cities    []domain.City
	cityByKey map[string]int64
	foods     []domain.Food
	foodKeys  map[foodKey]struct{}
	distances map[pairKey]float64
	nextCity  int64
	nextFood  int64
}

func newTables() *tables {
	return &tables{
		cityByKey: make(map[string]int64),
		foodKeys:  make(map[foodKey]struct{}),
		distances: make(map[pairKey]float64),
		nextCity:  1,
		nextFood:  1,
	}
}

func (t *tables) clone() *tables {
	c := &tables{
		cities:    append([]domain.City(nil), t.cities...),
		cityByKey: make(map[string]int64, len(t.cityByKey)),
		foods:     append([]domain.Food(nil), t.foods...),
		foodKeys:  make(map[foodKey]struct{}, len(t.foodKeys)),
		distances: make(map[pairKey]float64, len(t.distances)),
		nextCity:  t.nextCity,
		nextFood:  t.nextFood,
	}
	for k, v := range t.cityByKey {
		c.cityByKey[k] = v
	}
	for k := range t.foodKeys {
		c.foodKeys[k] = struct{}{}
	}
	for k, v := range t.distances {
		c.distances[k] = v
	}
	return c
}

// Store is an in-memory implementation of driven.Store.
type Store struct {
	mu   sync.Mutex
	data *tables
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{data: newTables()}
}

// Open returns the store itself; there is no connection to establish.
func (s *Store) Open(_ context.Context) (driven.Store, error) {
	return s, nil
}

// Begin starts a unit of work over a private copy of the tables.
func (s *Store) Begin(_ context.Context) (driven.Tx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &tx{store: s, data: s.data.clone()}, nil
}

// Counts returns the number of rows in each table.
func (s *Store) Counts(_ context.Context) (domain.Counts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Counts{
		Cities:    len(s.data.cities),
		Foods:     len(s.data.foods),
		Distances: len(s.data.distances),
	}, nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// tx buffers writes until Commit.
type tx struct {
	store *Store
	data  *tables
	done  bool
}

func (t *tx) Cities() driven.CityRepository       { return cityRepo{t} }
func (t *tx) Foods() driven.FoodRepository        { return foodRepo{t} }
func (t *tx) Distances() driven.DistanceRepository { return distanceRepo{t} }

// Commit publishes the buffered tables.
func (t *tx) Commit() error {
	if t.done {
		return nil
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.data = t.data
	t.done = true
	return nil
}

// Rollback drops the buffered tables.
func (t *tx) Rollback() error {
	t.done = true
	return nil
}

type cityRepo struct{ tx *tx }

func (r cityRepo) Ensure(_ context.Context, name string) (bool, error) {
	d := r.tx.data
	if _, ok := d.cityByKey[name]; ok {
		return false, nil
	}
	city := domain.City{ID: d.nextCity, Name: name}
	d.nextCity++
	d.cities = append(d.cities, city)
	d.cityByKey[name] = city.ID
	return true, nil
}

func (r cityRepo) ID(_ context.Context, name string) (int64, error) {
	id, ok := r.tx.data.cityByKey[name]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

func (r cityRepo) List(_ context.Context) ([]domain.City, error) {
	return append([]domain.City(nil), r.tx.data.cities...), nil
}

type foodRepo struct{ tx *tx }

func (r foodRepo) Insert(_ context.Context, food domain.Food) (bool, error) {
	d := r.tx.data
	key := foodKey{name: food.Name, cityID: food.CityID, price: food.Price}
	if _, ok := d.foodKeys[key]; ok {
		return false, nil
	}
	food.ID = d.nextFood
	d.nextFood++
	d.foods = append(d.foods, food)
	d.foodKeys[key] = struct{}{}
	return true, nil
}

func (r foodRepo) List(_ context.Context) ([]domain.Food, error) {
	return append([]domain.Food(nil), r.tx.data.foods...), nil
}

type distanceRepo struct{ tx *tx }

func (r distanceRepo) Upsert(_ context.Context, d domain.Distance) error {
	r.tx.data.distances[pairKey{from: d.FromCityID, to: d.ToCityID}] = d.Kilometers
	return nil
}

func (r distanceRepo) List(_ context.Context) ([]domain.Distance, error) {
	out := make([]domain.Distance, 0, len(r.tx.data.distances))
	for k, km := range r.tx.data.distances {
		out = append(out, domain.Distance{FromCityID: k.from, ToCityID: k.to, Kilometers: km})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FromCityID != out[j].FromCityID {
			return out[i].FromCityID < out[j].FromCityID
		}
		return out[i].ToCityID < out[j].ToCityID
	})
	return out, nil
}
