package services

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/core/ports/driven"
	"github.com/custodia-labs/tripdata/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDatabaseDriver = "database.driver"
	keyDatabasePath   = "database.path"
	keyDatabaseURL    = "database.url"
	keyLogLevel       = "log.level"
	keyLogFormat      = "log.format"
)

// envDatabaseURL overrides database.url when set.
const envDatabaseURL = "DATABASE_URL"

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// SettingsService resolves application settings from the config store,
// defaults and the environment.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get returns the current settings. Invalid stored values fall back to
// the defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Database: domain.DatabaseSettings{
			Driver: s.getDriver(defaults.Database.Driver),
			Path:   s.getString(keyDatabasePath, defaults.Database.Path),
			URL:    s.configStore.GetString(keyDatabaseURL),
		},
		Log: domain.LogSettings{
			Level:  s.getChoice(keyLogLevel, logLevels, defaults.Log.Level),
			Format: s.getChoice(keyLogFormat, logFormats, defaults.Log.Format),
		},
	}

	if url := s.getenv(envDatabaseURL); url != "" {
		settings.Database.URL = url
	}

	return settings, nil
}

// Set validates and persists one setting.
func (s *SettingsService) Set(key, value string) error {
	switch key {
	case keyDatabaseDriver:
		driver := domain.Driver(value)
		if !driver.IsValid() || driver == domain.DriverMemory {
			return fmt.Errorf("%w: driver must be sqlite or postgres, got %q", domain.ErrInvalidInput, value)
		}
	case keyDatabasePath, keyDatabaseURL:
		if value == "" {
			return fmt.Errorf("%w: %s cannot be empty", domain.ErrInvalidInput, key)
		}
	case keyLogLevel:
		if !slices.Contains(logLevels, strings.ToLower(value)) {
			return fmt.Errorf("%w: log level must be one of %s", domain.ErrInvalidInput, strings.Join(logLevels, ", "))
		}
		value = strings.ToLower(value)
	case keyLogFormat:
		if !slices.Contains(logFormats, strings.ToLower(value)) {
			return fmt.Errorf("%w: log format must be one of %s", domain.ErrInvalidInput, strings.Join(logFormats, ", "))
		}
		value = strings.ToLower(value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists the settings Set accepts.
func (s *SettingsService) Keys() []string {
	return []string{keyDatabaseDriver, keyDatabasePath, keyDatabaseURL, keyLogLevel, keyLogFormat}
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getDriver(defaultVal domain.Driver) domain.Driver {
	driver := domain.Driver(s.configStore.GetString(keyDatabaseDriver))
	if driver.IsValid() && driver != domain.DriverMemory {
		return driver
	}
	return defaultVal
}

func (s *SettingsService) getChoice(key string, choices []string, defaultVal string) string {
	val := strings.ToLower(s.configStore.GetString(key))
	if slices.Contains(choices, val) {
		return val
	}
	return defaultVal
}
