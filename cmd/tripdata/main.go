// Command tripdata imports trip planning data from an xlsx workbook.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/tripdata/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tripdata/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tripdata/internal/adapters/driven/storage/postgres"
	"github.com/custodia-labs/tripdata/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/tripdata/internal/adapters/driven/workbook/excel"
	"github.com/custodia-labs/tripdata/internal/adapters/driving/cli"
	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/core/ports/driven"
	"github.com/custodia-labs/tripdata/internal/core/services"
	"github.com/custodia-labs/tripdata/internal/logger"
)

// version is set by the linker.
var version = "dev"

func main() {
	// A .env file may supply DATABASE_URL; real environment variables win.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBuilder(buildServices)

	if err := cli.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, cli.ErrReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

// buildServices resolves settings and wires adapters into services.
func buildServices(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	logger.Setup(settings.Log.Level, settings.Log.Format)

	db := settings.Database
	if opts.Driver != "" {
		db.Driver = domain.Driver(opts.Driver)
		if db.Driver == domain.DriverMemory {
			return nil, fmt.Errorf("%w: use --dry-run instead of --driver memory", domain.ErrInvalidInput)
		}
	}
	if opts.DatabasePath != "" {
		db.Path = opts.DatabasePath
	}
	if opts.DryRun {
		db.Driver = domain.DriverMemory
	}
	if err := db.Validate(); err != nil {
		return nil, err
	}

	var stores driven.StoreOpener
	switch db.Driver {
	case domain.DriverSQLite:
		stores = sqlite.NewOpener(db.Path)
	case domain.DriverPostgres:
		stores = postgres.NewOpener(db.URL)
	case domain.DriverMemory:
		stores = memory.NewStore()
	}

	logger.Debug("services configured", "driver", db.Driver.String(), "target", db.Target())

	workbooks := excel.NewOpener()
	return &cli.Services{
		Importer:   services.NewImportService(workbooks, stores),
		Inspector:  services.NewInspectService(workbooks),
		Summariser: services.NewSummaryService(stores),
		Settings:   settingsService,
		Database:   db,
	}, nil
}
