package services

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storemem "github.com/custodia-labs/tripdata/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tripdata/internal/core/domain"
	"github.com/custodia-labs/tripdata/internal/logger"
)

func TestFillCities(t *testing.T) {
	sheet := domain.NewSheet(domain.SheetFoods, grid(foodHeader,
		[]string{"A", "x", "1"},
		[]string{"", "y", "2"},
		[]string{"B", "z", "3"},
		[]string{"", "w", "4"},
	))

	filled := FillCities(sheet.Rows)

	require.Len(t, filled, 4)
	var cities []string
	for _, row := range filled {
		cities = append(cities, row.Get(domain.ColumnCity).String())
	}
	assert.Equal(t, []string{"A", "A", "B", "B"}, cities)
	assert.True(t, sheet.Rows[1].Get(domain.ColumnCity).Null(), "input rows are not modified")
}

func TestFillCities_LeadingBlankStaysNull(t *testing.T) {
	sheet := domain.NewSheet(domain.SheetFoods, grid(foodHeader,
		[]string{"", "orphan", "1"},
		[]string{"A", "x", "1"},
	))

	filled := FillCities(sheet.Rows)

	assert.True(t, filled[0].Get(domain.ColumnCity).Null())
}

func TestFoodImporter_GroupedSheet(t *testing.T) {
	store := storemem.NewStore()
	seedCities(t, store, "A", "B")
	sheet := domain.NewSheet(domain.SheetFoods, grid(foodHeader,
		[]string{"A", "", ""},
		[]string{"", "x", "1"},
		[]string{"", "y", "2"},
		[]string{"B", "", ""},
		[]string{"", "z", "3"},
	))

	result := NewFoodImporter(store, nil).Import(context.Background(), sheet)

	require.NoError(t, result.Err)
	assert.Equal(t, 3, result.Imported)
	assert.Zero(t, result.Skipped)
	assert.Equal(t, []string{"x@A", "y@A", "z@B"}, readStore(t, store).Foods)
}

func TestFoodImporter_NullItemContributesNothing(t *testing.T) {
	store := storemem.NewStore()
	seedCities(t, store, "Lima")
	sheet := domain.NewSheet(domain.SheetFoods, grid(foodHeader,
		[]string{"Lima", "", "12.5"},
	))

	result := NewFoodImporter(store, nil).Import(context.Background(), sheet)

	require.NoError(t, result.Err)
	assert.Zero(t, result.Imported)
	assert.Empty(t, readStore(t, store).Foods)
}

func TestFoodImporter_NullCostIgnored(t *testing.T) {
	store := storemem.NewStore()
	seedCities(t, store, "Lima")
	sheet := domain.NewSheet(domain.SheetFoods, grid(foodHeader,
		[]string{"Lima", "Ceviche", ""},
	))

	result := NewFoodImporter(store, nil).Import(context.Background(), sheet)

	require.NoError(t, result.Err)
	assert.Zero(t, result.Imported)
	assert.Zero(t, result.Skipped)
}

func TestFoodImporter_UnresolvedCityWarnsAndSkips(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	store := storemem.NewStore()
	seedCities(t, store, "Lima")
	sheet := domain.NewSheet(domain.SheetFoods, grid(foodHeader,
		[]string{"Lima", "Ceviche", "12.5"},
		[]string{"Atlantis", "Ambrosia", "99"},
	))

	result := NewFoodImporter(store, nil).Import(context.Background(), sheet)

	require.NoError(t, result.Err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Contains(t, buf.String(), "Atlantis")
	assert.Contains(t, buf.String(), "Ambrosia")
	assert.Contains(t, buf.String(), domain.ErrUnresolvedReference.Error())
}

func TestFoodImporter_DuplicatesCountedButNotStored(t *testing.T) {
	store := storemem.NewStore()
	seedCities(t, store, "Lima")
	sheet := domain.NewSheet(domain.SheetFoods, grid(foodHeader,
		[]string{"Lima", "Ceviche", "12.5"},
		[]string{"", "Ceviche", "12.5"},
	))

	result := NewFoodImporter(store, nil).Import(context.Background(), sheet)

	require.NoError(t, result.Err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Duplicates)
	assert.Len(t, readStore(t, store).Foods, 1)
}

func TestFoodImporter_InvalidCostRollsBack(t *testing.T) {
	store := storemem.NewStore()
	seedCities(t, store, "Lima")
	sheet := domain.NewSheet(domain.SheetFoods, grid(foodHeader,
		[]string{"Lima", "Ceviche", "12.5"},
		[]string{"Lima", "Anticuchos", "cheap"},
	))

	result := NewFoodImporter(store, nil).Import(context.Background(), sheet)

	assert.ErrorIs(t, result.Err, domain.ErrWorkbookFault)
	assert.ErrorIs(t, result.Err, domain.ErrInvalidCell)
	assert.True(t, result.Fatal())
	assert.Zero(t, result.Imported)
	assert.Empty(t, readStore(t, store).Foods)
}

func TestFoodImporter_StoreFault(t *testing.T) {
	store := &faultyStore{Store: storemem.NewStore(), foodErr: errDiskFull}
	seedCities(t, store, "Lima")
	sheet := domain.NewSheet(domain.SheetFoods, grid(foodHeader,
		[]string{"Lima", "Ceviche", "12.5"},
	))

	result := NewFoodImporter(store, nil).Import(context.Background(), sheet)

	assert.ErrorIs(t, result.Err, domain.ErrStoreFault)
	assert.ErrorIs(t, result.Err, errDiskFull)
}

func TestFoodImporter_MissingSheetOrColumn(t *testing.T) {
	store := storemem.NewStore()
	importer := NewFoodImporter(store, nil)
	ctx := context.Background()

	result := importer.Import(ctx, nil)
	assert.ErrorIs(t, result.Err, domain.ErrMissingSheet)
	assert.False(t, result.Fatal())
	assert.Equal(t, domain.SheetFoods, result.Sheet)

	sheet := domain.NewSheet(domain.SheetFoods, [][]string{{"City", "Dish", "Cost"}})
	result = importer.Import(ctx, sheet)
	assert.ErrorIs(t, result.Err, domain.ErrMissingColumn)
	assert.True(t, result.Fatal())
}
