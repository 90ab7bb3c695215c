// Package postgres provides the PostgreSQL implementation of the destination
// store on top of a pgx connection pool. Like the SQLite store it never
// creates tables; the schema must already exist.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/core/ports/driven"
)

// Ensure the store types implement the interfaces.
var (
	_ driven.StoreOpener = (*Opener)(nil)
	_ driven.Store       = (*Store)(nil)
	_ driven.Tx          = (*tx)(nil)
)

// Opener connects to PostgreSQL using a connection string.
type Opener struct {
	DSN string
}

// NewOpener creates an opener for dsn.
func NewOpener(dsn string) *Opener {
	return &Opener{DSN: dsn}
}

// Open connects and pings the server.
func (o *Opener) Open(ctx context.Context) (driven.Store, error) {
	return NewStore(ctx, o.DSN)
}

// Store is a PostgreSQL-backed destination store.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore opens a pool limited to a single connection.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: database url is empty", domain.ErrInvalidInput)
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}
	config.MaxConns = 1
	config.MinConns = 0

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Begin starts a transaction.
func (s *Store) Begin(ctx context.Context) (driven.Tx, error) {
	t, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return &tx{ctx: ctx, tx: t}, nil
}

// Counts returns the number of rows in each table.
func (s *Store) Counts(ctx context.Context) (domain.Counts, error) {
	var c domain.Counts
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM cities),
			(SELECT COUNT(*) FROM foods),
			(SELECT COUNT(*) FROM city_distances)
	`).Scan(&c.Cities, &c.Foods, &c.Distances)
	if err != nil {
		return domain.Counts{}, fmt.Errorf("counting rows: %w", err)
	}
	return c, nil
}

type tx struct {
	// ctx is the context the transaction was started with; pgx needs one
	// to finish it.
	ctx context.Context
	tx  pgx.Tx
}

func (t *tx) Cities() driven.CityRepository       { return &cityRepository{tx: t.tx} }
func (t *tx) Foods() driven.FoodRepository        { return &foodRepository{tx: t.tx} }
func (t *tx) Distances() driven.DistanceRepository { return &distanceRepository{tx: t.tx} }

func (t *tx) Commit() error {
	if err := t.tx.Commit(t.ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (t *tx) Rollback() error {
	if err := t.tx.Rollback(t.ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("rolling back transaction: %w", err)
	}
	return nil
}

type cityRepository struct {
	tx pgx.Tx
}

func (r *cityRepository) Ensure(ctx context.Context, name string) (bool, error) {
	tag, err := r.tx.Exec(ctx, `
		INSERT INTO cities (name) VALUES ($1)
		ON CONFLICT DO NOTHING
	`, name)
	if err != nil {
		return false, fmt.Errorf("inserting city: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *cityRepository) ID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.tx.QueryRow(ctx, "SELECT id FROM cities WHERE name = $1", name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("looking up city: %w", err)
	}
	return id, nil
}

type cityRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

func (r *cityRepository) List(ctx context.Context) ([]domain.City, error) {
	rows, err := r.tx.Query(ctx, "SELECT id, name FROM cities ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying cities: %w", err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[cityRow])
	if err != nil {
		return nil, fmt.Errorf("scanning cities: %w", err)
	}

	cities := make([]domain.City, 0, len(collected))
	for _, c := range collected {
		cities = append(cities, domain.City{ID: c.ID, Name: c.Name})
	}
	return cities, nil
}

type foodRepository struct {
	tx pgx.Tx
}

func (r *foodRepository) Insert(ctx context.Context, food domain.Food) (bool, error) {
	tag, err := r.tx.Exec(ctx, `
		INSERT INTO foods (name, city_id, price) VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`, food.Name, food.CityID, food.Price)
	if err != nil {
		return false, fmt.Errorf("inserting food: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

type foodRow struct {
	ID     int64   `db:"id"`
	Name   string  `db:"name"`
	CityID int64   `db:"city_id"`
	Price  float64 `db:"price"`
}

func (r *foodRepository) List(ctx context.Context) ([]domain.Food, error) {
	rows, err := r.tx.Query(ctx, "SELECT id, name, city_id, price::float8 AS price FROM foods ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying foods: %w", err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[foodRow])
	if err != nil {
		return nil, fmt.Errorf("scanning foods: %w", err)
	}

	foods := make([]domain.Food, 0, len(collected))
	for _, f := range collected {
		foods = append(foods, domain.Food{ID: f.ID, Name: f.Name, CityID: f.CityID, Price: f.Price})
	}
	return foods, nil
}

type distanceRepository struct {
	tx pgx.Tx
}

func (r *distanceRepository) Upsert(ctx context.Context, d domain.Distance) error {
	_, err := r.tx.Exec(ctx, `
		INSERT INTO city_distances (from_city_id, to_city_id, distance)
		VALUES ($1, $2, $3)
		ON CONFLICT (from_city_id, to_city_id) DO UPDATE SET
			distance = EXCLUDED.distance
	`, d.FromCityID, d.ToCityID, d.Kilometers)
	if err != nil {
		return fmt.Errorf("saving distance: %w", err)
	}
	return nil
}

type distanceRow struct {
	FromCityID int64   `db:"from_city_id"`
	ToCityID   int64   `db:"to_city_id"`
	Distance   float64 `db:"distance"`
}

func (r *distanceRepository) List(ctx context.Context) ([]domain.Distance, error) {
	rows, err := r.tx.Query(ctx, `
		SELECT from_city_id, to_city_id, distance::float8 AS distance
		FROM city_distances
		ORDER BY from_city_id, to_city_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying distances: %w", err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[distanceRow])
	if err != nil {
		return nil, fmt.Errorf("scanning distances: %w", err)
	}

	distances := make([]domain.Distance, 0, len(collected))
	for _, d := range collected {
		distances = append(distances, domain.Distance{FromCityID: d.FromCityID, ToCityID: d.ToCityID, Kilometers: d.Distance})
	}
	return distances, nil
}
