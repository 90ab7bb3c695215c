package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tripdata/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tripdata/internal/core/domain"
)

func newSettingsService(values map[string]any, env map[string]string) *SettingsService {
	service := NewSettingsService(memory.NewConfigStore(values))
	service.getenv = func(key string) string { return env[key] }
	return service
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := newSettingsService(nil, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	service := newSettingsService(map[string]any{
		"database.driver": "postgres",
		"database.url":    "postgres://localhost/trip",
		"log.level":       "DEBUG",
		"log.format":      "json",
	}, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DriverPostgres, settings.Database.Driver)
	assert.Equal(t, "postgres://localhost/trip", settings.Database.URL)
	assert.Equal(t, "debug", settings.Log.Level)
	assert.Equal(t, "json", settings.Log.Format)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	service := newSettingsService(map[string]any{
		"database.driver": "memory",
		"log.level":       "loud",
		"log.format":      "xml",
	}, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DriverSQLite, settings.Database.Driver)
	assert.Equal(t, "warn", settings.Log.Level)
	assert.Equal(t, "text", settings.Log.Format)
}

func TestSettingsService_Get_EnvironmentOverridesURL(t *testing.T) {
	service := newSettingsService(
		map[string]any{"database.url": "postgres://file/trip"},
		map[string]string{"DATABASE_URL": "postgres://env/trip"},
	)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "postgres://env/trip", settings.Database.URL)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
		stored  string
	}{
		{name: "driver", key: "database.driver", value: "postgres", stored: "postgres"},
		{name: "memory driver rejected", key: "database.driver", value: "memory", wantErr: true},
		{name: "path", key: "database.path", value: "trip.db", stored: "trip.db"},
		{name: "empty path rejected", key: "database.path", value: "", wantErr: true},
		{name: "level is lowercased", key: "log.level", value: "INFO", stored: "info"},
		{name: "bad level", key: "log.level", value: "trace", wantErr: true},
		{name: "format", key: "log.format", value: "json", stored: "json"},
		{name: "unknown key", key: "search.mode", value: "hybrid", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore(nil)
			service := NewSettingsService(store)

			err := service.Set(tt.key, tt.value)

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				_, ok := store.Get(tt.key)
				assert.False(t, ok)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.stored, store.GetString(tt.key))
		})
	}
}

func TestSettingsService_KeysAreAccepted(t *testing.T) {
	service := newSettingsService(nil, nil)

	for _, key := range service.Keys() {
		value := "text"
		switch key {
		case "database.driver":
			value = "sqlite"
		case "log.level":
			value = "info"
		}
		assert.NoError(t, service.Set(key, value), key)
	}
	assert.Empty(t, service.Path())
}
