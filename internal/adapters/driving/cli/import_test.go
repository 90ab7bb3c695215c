package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storemem "github.com/custodia-labs/tripdata/internal/adapters/driven/storage/memory"
	bookmem "github.com/custodia-labs/tripdata/internal/adapters/driven/workbook/memory"
	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/logger"
)

func TestImport_PrintsProgress(t *testing.T) {
	store := storemem.NewStore()
	svc := newTestServices(store, tripWorkbook("trip.xlsx"))

	out, err := execute(t, svc, "trip.xlsx")
	require.NoError(t, err)

	assert.Contains(t, out, "Available sheets: [Distances Foods New Cities]")
	assert.Contains(t, out, "Importing cities...")
	assert.Contains(t, out, "Imported 3 unique cities.")
	assert.Contains(t, out, "Importing foods...")
	assert.Contains(t, out, "Imported 3 food items.")
	assert.Contains(t, out, "Imported 2 distances from 'Distances' sheet.")
	assert.Contains(t, out, "Imported 1 distances from 'New Cities' sheet.")
	assert.Contains(t, out, "Data import complete! Total distances: 3")

	counts, err := store.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Counts{Cities: 3, Foods: 3, Distances: 3}, counts)
}

func TestImport_AnnouncesDistancesOnce(t *testing.T) {
	svc := newTestServices(storemem.NewStore(), tripWorkbook("trip.xlsx"))

	out, err := execute(t, svc, "trip.xlsx")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "Importing city distances..."))
}

func TestImport_FileNotFound(t *testing.T) {
	svc := newTestServices(storemem.NewStore())

	out, err := execute(t, svc, "missing.xlsx")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReported))
	assert.True(t, errors.Is(err, domain.ErrFileNotFound))
	assert.Contains(t, out, "Error: Excel file 'missing.xlsx' not found.")
	assert.NotContains(t, out, "Available sheets")
}

func TestImport_MissingFoodsSheetContinues(t *testing.T) {
	book := bookmem.NewWorkbook("trip.xlsx").
		AddSheet(domain.SheetDistances, [][]string{distanceHeader, {"Lima", "Cusco", "571"}})
	svc := newTestServices(storemem.NewStore(), book)

	out, err := execute(t, svc, "trip.xlsx")
	require.NoError(t, err)

	assert.Contains(t, out, "Error: Worksheet named 'Foods' not found.")
	assert.Contains(t, out, "Data import complete! Total distances: 1")
}

func TestImport_BadCostFails(t *testing.T) {
	book := bookmem.NewWorkbook("trip.xlsx").
		AddSheet(domain.SheetDistances, [][]string{distanceHeader, {"Lima", "Cusco", "571"}}).
		AddSheet(domain.SheetFoods, [][]string{foodHeader, {"Lima", "Ceviche", "cheap"}})
	store := storemem.NewStore()
	svc := newTestServices(store, book)

	out, err := execute(t, svc, "trip.xlsx")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReported))
	assert.Contains(t, out, "Import failed:")
	assert.NotContains(t, out, "Data import complete!")

	counts, err := store.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Cities, "cities phase committed before foods failed")
	assert.Zero(t, counts.Foods)
}

func TestImport_DryRunNotice(t *testing.T) {
	svc := newTestServices(storemem.NewStore(), tripWorkbook("trip.xlsx"))

	out, err := execute(t, svc, "--dry-run", "trip.xlsx")
	require.NoError(t, err)

	assert.Contains(t, out, "Dry run: nothing will be written to the database.")
}

func TestImport_RequiresOneArgument(t *testing.T) {
	svc := newTestServices(storemem.NewStore())

	_, err := execute(t, svc)

	assert.Error(t, err)
}

func TestImport_BuilderError(t *testing.T) {
	errBroken := errors.New("broken config")
	SetBuilder(func(Options) (*Services, error) { return nil, errBroken })
	t.Cleanup(func() { SetBuilder(nil) })

	rootCmd.SetArgs([]string{"trip.xlsx"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	assert.True(t, errors.Is(err, errBroken))
}

func TestImport_VerboseSurvivesConfiguredLevel(t *testing.T) {
	var logs bytes.Buffer
	logger.SetOutput(&logs)
	t.Cleanup(func() {
		logger.SetVerbose(false)
		logger.Setup("info", "text")
		logger.SetOutput(os.Stderr)
	})

	svc := newTestServices(storemem.NewStore(), tripWorkbook("trip.xlsx"))
	SetBuilder(func(Options) (*Services, error) {
		logger.Setup("warn", "text")
		return svc, nil
	})
	t.Cleanup(func() { SetBuilder(nil) })

	opts = Options{}
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"--verbose", "trip.xlsx"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		opts = Options{}
	})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, logs.String(), "level=DEBUG")
	assert.Contains(t, logs.String(), `msg="cities reconciled"`)
	assert.Contains(t, logs.String(), `msg="foods imported"`)
}

func TestImport_ReportsSkippedRows(t *testing.T) {
	book := bookmem.NewWorkbook("trip.xlsx").
		AddSheet(domain.SheetDistances, [][]string{distanceHeader, {"Lima", "Cusco", "571"}}).
		AddSheet(domain.SheetFoods, [][]string{
			foodHeader,
			{"Lima", "Ceviche", "12.5"},
			{"Atlantis", "Ambrosia", "99"},
		})
	svc := newTestServices(storemem.NewStore(), book)

	out, err := execute(t, svc, "trip.xlsx")
	require.NoError(t, err)

	assert.Contains(t, out, "Imported 1 food items.")
	assert.Contains(t, out, "Skipped 1 food items with unknown cities.")
	assert.NotContains(t, out, "distances with unknown cities")
}
