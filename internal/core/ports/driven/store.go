package driven

import (
	"context"

	"github.com/custodia-labs/tripdata/internal/core/domain"
)

// StoreOpener connects to the destination store.
// The store's schema is owned elsewhere and must already exist.
type StoreOpener interface {
	Open(ctx context.Context) (Store, error)
}

// Store is an open connection to the destination store.
type Store interface {
	// Begin starts a unit of work. Its writes become durable on Commit.
	Begin(ctx context.Context) (Tx, error)

	// Counts returns the number of rows in each table.
	Counts(ctx context.Context) (domain.Counts, error)

	// Close releases the connection.
	Close() error
}

// Tx is a unit of work against the destination store.
type Tx interface {
	Cities() CityRepository
	Foods() FoodRepository
	Distances() DistanceRepository

	Commit() error

	// Rollback discards uncommitted writes. It is a no-op after Commit.
	Rollback() error
}

// CityRepository accesses the cities table.
type CityRepository interface {
	// Ensure inserts a city unless one with the same name exists.
	// Returns true if a row was inserted.
	Ensure(ctx context.Context, name string) (bool, error)

	// ID returns the id of the city whose name matches exactly.
	// Returns domain.ErrNotFound if there is none.
	ID(ctx context.Context, name string) (int64, error)

	// List returns all cities ordered by id.
	List(ctx context.Context) ([]domain.City, error)
}

// FoodRepository accesses the foods table.
type FoodRepository interface {
	// Insert adds a food unless an identical (name, city, price) row exists.
	// Returns true if a row was inserted.
	Insert(ctx context.Context, food domain.Food) (bool, error)

	// List returns all foods ordered by id.
	List(ctx context.Context) ([]domain.Food, error)
}

// DistanceRepository accesses the city_distances table.
type DistanceRepository interface {
	// Upsert stores the distance for the ordered city pair, overwriting
	// any existing value for that pair.
	Upsert(ctx context.Context, distance domain.Distance) error

	// List returns all distances ordered by (from, to).
	List(ctx context.Context) ([]domain.Distance, error)
}
