package xlsx

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
)

var header = []any{"country", "year", "gdp", "gdp_growth", "inflation", "unemployment", "population", "continent"}

func writeWorkbook(t *testing.T, rows ...[]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	path := filepath.Join(t.TempDir(), "economy.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestSource_Read(t *testing.T) {
	path := writeWorkbook(t,
		header,
		[]any{"India", 2021, 3150.5, 8.7, 5.1, 7.7, int64(1380000000), " Asia "},
		[]any{},
		[]any{"Japan", 2021, nil, nil, nil, nil, nil, "Asia"},
	)

	obs, err := New().Read(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, obs, 2)

	assert.Equal(t, "India", obs[0].Country)
	assert.Equal(t, "Asia", obs[0].Record.Continent)
	gdp, ok := obs[0].Record.GDP.Get()
	assert.True(t, ok)
	assert.Equal(t, 3150.5, gdp)
	pop, _ := obs[0].Record.Population.Get()
	assert.Equal(t, int64(1380000000), pop)

	assert.Equal(t, "Japan", obs[1].Country)
	assert.False(t, obs[1].Record.GDP.Valid())
}

func TestSource_Read_TrailingEmptyCells(t *testing.T) {
	path := writeWorkbook(t,
		[]any{"country", "year", "continent", "gdp", "gdp_growth", "inflation", "unemployment", "population"},
		[]any{"Chile", 2020, "South America", 300.0},
	)

	obs, err := New().Read(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.False(t, obs[0].Record.Population.Valid())
}

func TestSource_Read_ConversionError(t *testing.T) {
	path := writeWorkbook(t,
		header,
		[]any{"Peru", 2020, 1.0, 1.0, 1.0, 1.0, 1.0, "South America"},
		[]any{"India", "twenty", nil, nil, nil, nil, nil, "Asia"},
	)

	_, err := New().Read(context.Background(), path)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRowConversion)
	var rowErr *domain.RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 3, rowErr.Line)
	assert.Equal(t, "year", rowErr.Column)
}

func TestSource_Read_MissingColumn(t *testing.T) {
	path := writeWorkbook(t,
		[]any{"country", "year"},
		[]any{"Peru", 2020},
	)

	_, err := New().Read(context.Background(), path)

	assert.ErrorIs(t, err, domain.ErrMissingColumn)
}

func TestSource_Read_HeaderOnly(t *testing.T) {
	obs, err := New().Read(context.Background(), writeWorkbook(t, header))

	require.NoError(t, err)
	assert.Empty(t, obs)
}

func TestSource_Read_FileNotFound(t *testing.T) {
	_, err := New().Read(context.Background(), filepath.Join(t.TempDir(), "nope.xlsx"))

	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}

func TestSource_Read_NotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("country,year\n"), 0600))

	_, err := New().Read(context.Background(), path)

	assert.ErrorIs(t, err, domain.ErrFileRead)
	assert.Contains(t, err.Error(), "fake.xlsx")
}

func TestSource_Extensions(t *testing.T) {
	assert.Equal(t, "xlsx", New().Name())
	assert.Contains(t, New().Extensions(), ".xlsx")
}
