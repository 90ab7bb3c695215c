package domain

import "fmt"

// DefaultDatabasePath is the SQLite file used when none is configured.
const DefaultDatabasePath = "database/cs1d_lab3.db"

// Driver selects the destination store implementation.
type Driver string

// Supported drivers.
const (
	// DriverSQLite writes to an existing SQLite database file.
	DriverSQLite Driver = "sqlite"

	// DriverPostgres writes to a PostgreSQL database.
	DriverPostgres Driver = "postgres"

	// DriverMemory keeps everything in memory and discards it on exit.
	// Used for dry runs.
	DriverMemory Driver = "memory"
)

// IsValid returns true if the driver is recognised.
func (d Driver) IsValid() bool {
	switch d {
	case DriverSQLite, DriverPostgres, DriverMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d Driver) String() string {
	return string(d)
}

// Description returns a human-readable description of the driver.
func (d Driver) Description() string {
	switch d {
	case DriverSQLite:
		return "SQLite (local file)"
	case DriverPostgres:
		return "PostgreSQL"
	case DriverMemory:
		return "In-memory (dry run)"
	default:
		return "Unknown"
	}
}

// Settings is the resolved application configuration.
type Settings struct {
	Database DatabaseSettings
	Log      LogSettings
}

// DatabaseSettings locates the destination store.
type DatabaseSettings struct {
	Driver Driver

	// Path is the SQLite database file.
	Path string

	// URL is the PostgreSQL connection string.
	URL string
}

// Validate checks the fields the selected driver needs.
func (s DatabaseSettings) Validate() error {
	switch s.Driver {
	case DriverSQLite:
		if s.Path == "" {
			return fmt.Errorf("%w: sqlite requires database.path", ErrInvalidInput)
		}
	case DriverPostgres:
		if s.URL == "" {
			return fmt.Errorf("%w: postgres requires database.url or DATABASE_URL", ErrInvalidInput)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidInput, s.Driver)
	}
	return nil
}

// Target describes where the store lives, without credentials.
func (s DatabaseSettings) Target() string {
	switch s.Driver {
	case DriverSQLite:
		return s.Path
	case DriverPostgres:
		return "postgres"
	default:
		return string(s.Driver)
	}
}

// LogSettings configures the diagnostic log.
type LogSettings struct {
	// Level is one of debug, info, warn, error.
	Level string

	// Format is text or json.
	Format string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Database: DatabaseSettings{
			Driver: DriverSQLite,
			Path:   DefaultDatabasePath,
		},
		Log: LogSettings{
			Level:  "warn",
			Format: "text",
		},
	}
}
