package cli

import (
	"bytes"
	"testing"

	storemem "github.com/custodia-labs/tripdata/internal/adapters/driven/storage/memory"
	bookmem "github.com/custodia-labs/tripdata/internal/adapters/driven/workbook/memory"
	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/core/services"
)

var (
	distanceHeader = []string{domain.ColumnStartingCity, domain.ColumnEndingCity, domain.ColumnKilometers}
	foodHeader     = []string{domain.ColumnCity, domain.ColumnFoodItem, domain.ColumnCost}
)

// tripWorkbook is a small workbook with all three sheets.
func tripWorkbook(path string) *bookmem.Workbook {
	return bookmem.NewWorkbook(path).
		AddSheet(domain.SheetDistances, [][]string{
			distanceHeader,
			{"Lima", "Cusco", "571"},
			{"Cusco", "Lima", "571"},
		}).
		AddSheet(domain.SheetFoods, [][]string{
			foodHeader,
			{"Lima", "Ceviche", "12.5"},
			{"", "Lomo Saltado", "15"},
			{"Cusco", "Cuy", "30"},
		}).
		AddSheet(domain.SheetNewCities, [][]string{
			distanceHeader,
			{"Lima", "Arequipa", "1010"},
		})
}

// newTestServices wires real services over in-memory adapters.
func newTestServices(store *storemem.Store, books ...*bookmem.Workbook) *Services {
	workbooks := bookmem.NewOpener(books...)
	return &Services{
		Importer:   services.NewImportService(workbooks, store),
		Inspector:  services.NewInspectService(workbooks),
		Summariser: services.NewSummaryService(store),
		Settings:   services.NewSettingsService(storemem.NewConfigStore(nil)),
		Database:   domain.DatabaseSettings{Driver: domain.DriverMemory},
	}
}

// execute runs the root command with svc injected and returns its output.
func execute(t *testing.T, svc *Services, args ...string) (string, error) {
	t.Helper()

	opts = Options{}
	inspectRows = 3
	SetServices(svc)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		SetServices(nil)
		opts = Options{}
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
