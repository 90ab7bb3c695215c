package driving

import "github.com/custodia-labs/tripdata/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the settings with defaults and environment overrides applied.
	Get() (*domain.Settings, error)

	// Set validates and persists a single setting.
	Set(key, value string) error

	// Keys lists the settings that Set accepts.
	Keys() []string

	// Path returns the configuration file path.
	Path() string
}
