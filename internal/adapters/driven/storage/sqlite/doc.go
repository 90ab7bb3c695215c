// Package sqlite provides the SQLite implementation of the destination store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Queries go through sqlx for scanning.
//
// # Schema
//
// The cities, foods and city_distances tables are owned by whoever created
// the database file. This package never creates or alters tables; it opens
// an existing file and fails if the file is missing.
//
// # Connection
//
// A store holds exactly one connection. Foreign keys are enforced and a busy
// timeout is set on it through DSN pragmas.
package sqlite
