package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/core/ports/driven"
)

// Ensure the store types implement the interfaces.
var (
	_ driven.StoreOpener = (*Opener)(nil)
	_ driven.Store       = (*Store)(nil)
	_ driven.Tx          = (*tx)(nil)
)

// Opener opens the SQLite database file at Path.
type Opener struct {
	Path string
}

// NewOpener creates an opener for the database file at path.
func NewOpener(path string) *Opener {
	return &Opener{Path: path}
}

// Open connects to the database and verifies the connection.
func (o *Opener) Open(ctx context.Context) (driven.Store, error) {
	s, err := NewStore(o.Path)
	if err != nil {
		return nil, err
	}
	if err := s.db.PingContext(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return s, nil
}

// Store is a SQLite-backed destination store.
type Store struct {
	db   *sqlx.DB
	path string
}

// NewStore opens an existing SQLite database file.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: database path is empty", domain.ErrInvalidInput)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	db, err := sqlx.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Begin starts a transaction.
func (s *Store) Begin(ctx context.Context) (driven.Tx, error) {
	t, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return &tx{tx: t}, nil
}

// Counts returns the number of rows in each table.
func (s *Store) Counts(ctx context.Context) (domain.Counts, error) {
	var c domain.Counts
	for _, q := range []struct {
		dst   *int
		table string
	}{
		{&c.Cities, "cities"},
		{&c.Foods, "foods"},
		{&c.Distances, "city_distances"},
	} {
		if err := s.db.GetContext(ctx, q.dst, "SELECT COUNT(*) FROM "+q.table); err != nil {
			return domain.Counts{}, fmt.Errorf("counting %s: %w", q.table, err)
		}
	}
	return c, nil
}

// ==================== Transaction ====================

type tx struct {
	tx *sqlx.Tx
}

func (t *tx) Cities() driven.CityRepository       { return &cityRepository{tx: t.tx} }
func (t *tx) Foods() driven.FoodRepository        { return &foodRepository{tx: t.tx} }
func (t *tx) Distances() driven.DistanceRepository { return &distanceRepository{tx: t.tx} }

func (t *tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (t *tx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rolling back transaction: %w", err)
	}
	return nil
}

// ==================== Cities ====================

type cityRepository struct {
	tx *sqlx.Tx
}

// Ensure inserts the city unless its name is already present.
func (r *cityRepository) Ensure(ctx context.Context, name string) (bool, error) {
	res, err := r.tx.ExecContext(ctx, `
		INSERT INTO cities (name) VALUES (?)
		ON CONFLICT DO NOTHING
	`, name)
	if err != nil {
		return false, fmt.Errorf("inserting city: %w", err)
	}
	return affected(res)
}

// ID looks up a city id by exact name.
func (r *cityRepository) ID(ctx context.Context, name string) (int64, error) {
	var id int64
	if err := r.tx.GetContext(ctx, &id, "SELECT id FROM cities WHERE name = ?", name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("looking up city: %w", err)
	}
	return id, nil
}

type cityRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// List returns all cities ordered by id.
func (r *cityRepository) List(ctx context.Context) ([]domain.City, error) {
	var rows []cityRow
	if err := r.tx.SelectContext(ctx, &rows, "SELECT id, name FROM cities ORDER BY id"); err != nil {
		return nil, fmt.Errorf("querying cities: %w", err)
	}

	cities := make([]domain.City, 0, len(rows))
	for _, row := range rows {
		cities = append(cities, domain.City{ID: row.ID, Name: row.Name})
	}
	return cities, nil
}

// ==================== Foods ====================

type foodRepository struct {
	tx *sqlx.Tx
}

// Insert adds a food; an identical existing row is left alone.
func (r *foodRepository) Insert(ctx context.Context, food domain.Food) (bool, error) {
	res, err := r.tx.ExecContext(ctx, `
		INSERT INTO foods (name, city_id, price) VALUES (?, ?, ?)
		ON CONFLICT DO NOTHING
	`, food.Name, food.CityID, food.Price)
	if err != nil {
		return false, fmt.Errorf("inserting food: %w", err)
	}
	return affected(res)
}

type foodRow struct {
	ID     int64   `db:"id"`
	Name   string  `db:"name"`
	CityID int64   `db:"city_id"`
	Price  float64 `db:"price"`
}

// List returns all foods ordered by id.
func (r *foodRepository) List(ctx context.Context) ([]domain.Food, error) {
	var rows []foodRow
	if err := r.tx.SelectContext(ctx, &rows, "SELECT id, name, city_id, price FROM foods ORDER BY id"); err != nil {
		return nil, fmt.Errorf("querying foods: %w", err)
	}

	foods := make([]domain.Food, 0, len(rows))
	for _, row := range rows {
		foods = append(foods, domain.Food{ID: row.ID, Name: row.Name, CityID: row.CityID, Price: row.Price})
	}
	return foods, nil
}

// ==================== Distances ====================

type distanceRepository struct {
	tx *sqlx.Tx
}

// Upsert stores the distance for the ordered pair.
func (r *distanceRepository) Upsert(ctx context.Context, d domain.Distance) error {
	_, err := r.tx.ExecContext(ctx, `
		INSERT INTO city_distances (from_city_id, to_city_id, distance)
		VALUES (?, ?, ?)
		ON CONFLICT(from_city_id, to_city_id) DO UPDATE SET
			distance = excluded.distance
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

// List returns all distances ordered by (from, to).
func (r *distanceRepository) List(ctx context.Context) ([]domain.Distance, error) {
	var rows []distanceRow
	if err := r.tx.SelectContext(ctx, &rows, `
		SELECT from_city_id, to_city_id, distance
		FROM city_distances
		ORDER BY from_city_id, to_city_id
	`); err != nil {
		return nil, fmt.Errorf("querying distances: %w", err)
	}

	distances := make([]domain.Distance, 0, len(rows))
	for _, row := range rows {
		distances = append(distances, domain.Distance{
			FromCityID: row.FromCityID,
			ToCityID:   row.ToCityID,
			Kilometers: row.Distance,
		})
	}
	return distances, nil
}

// ==================== Helper Functions ====================

// affected reports whether a statement changed at least one row.
func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}
	return n > 0, nil
}
