// Package cli provides the tripdata command line interface.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/core/ports/driving"
	"github.com/custodia-labs/tripdata/internal/logger"
)

// ErrReported marks an error whose message was already printed to the user.
var ErrReported = errors.New("reported")

// version is set at build time.
var version = "dev"

// Options carries the global flag values to the service builder.
type Options struct {
	ConfigDir    string
	DatabasePath string
	Driver       string
	Verbose      bool
	DryRun       bool
}

// Services holds the driving ports the commands use.
type Services struct {
	Importer   driving.Importer
	Inspector  driving.Inspector
	Summariser driving.Summariser
	Settings   driving.SettingsService

	// Database is the resolved destination, shown to the user.
	Database domain.DatabaseSettings
}

// Builder creates services once flags are parsed.
type Builder func(opts Options) (*Services, error)

var (
	opts     Options
	builder  Builder
	services *Services
)

var rootCmd = &cobra.Command{
	Use:   "tripdata <workbook>",
	Short: "Import trip planning data from a spreadsheet",
	Long: `tripdata imports cities, inter-city distances and local food prices
from an xlsx workbook into the trip planner database.

The workbook must contain a "Distances" sheet (Starting City, Ending City,
Kilometers), may contain a "New Cities" sheet of the same shape, and a
"Foods" sheet (City, Traditional Food Item, Cost). The database tables must
already exist.`,
	Args:          cobra.ExactArgs(1),
	RunE:          runImport,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(opts.Verbose)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.ConfigDir, "config", "", "config directory (default ~/.tripdata)")
	pf.StringVar(&opts.DatabasePath, "db", "", "SQLite database file (default "+domain.DefaultDatabasePath+")")
	pf.StringVar(&opts.Driver, "driver", "", "database driver: sqlite or postgres")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "import into memory and discard the result")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx passed to every command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetBuilder sets the function that creates services from flags.
func SetBuilder(b Builder) {
	builder = b
	services = nil
}

// SetServices injects ready-made services, bypassing the builder.
func SetServices(s *Services) {
	services = s
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// getServices builds services on first use.
func getServices() (*Services, error) {
	if services != nil {
		return services, nil
	}
	if builder == nil {
		return nil, errors.New("services not configured")
	}

	s, err := builder(opts)
	if err != nil {
		return nil, err
	}
	services = s
	return services, nil
}
