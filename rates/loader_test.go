package rates

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"punchsheet/internal/timeutil"
)

func writeRatesCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "timesheet-rates.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_CSV(t *testing.T) {
	t.Parallel()

	path := writeRatesCSV(t, "ID,RATE,START,EXTRA,DETAILS\n"+
		"1,20,2023-11-01,50,Forklift\n"+
		"2,$17.35,,,\n"+
		"\n"+
		"3,22.5,12/18/2023,0,New hire\n")

	table, warnings, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Equal(t, 3, table.Len())

	first, ok := table.Lookup("1")
	require.True(t, ok)
	assert.Equal(t, "20", first.Rate.String())
	assert.Equal(t, "50", first.Extra.String())
	assert.Equal(t, "Forklift", first.Details)
	assert.True(t, first.Start.Equal(timeutil.Date(2023, 11, 1)))

	second, _ := table.Lookup("2")
	assert.Equal(t, "17.35", second.Rate.String())
	assert.False(t, second.HasStart())
	assert.True(t, second.Extra.IsZero())

	third, _ := table.Lookup("3")
	assert.True(t, third.Start.Equal(timeutil.Date(2023, 12, 18)))
}

func TestLoad_HeaderIsCaseInsensitiveAndOrderFree(t *testing.T) {
	t.Parallel()

	path := writeRatesCSV(t, "\ufeffdetails,rate,id\nNight shift,19,42\n")

	table, warnings, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	record, ok := table.Lookup("42")
	require.True(t, ok)
	assert.Equal(t, "19", record.Rate.String())
	assert.Equal(t, "Night shift", record.Details)
}

func TestLoad_BadRowsAreWarnings(t *testing.T) {
	t.Parallel()

	path := writeRatesCSV(t, "ID,RATE,START\n"+
		"1,20,\n"+
		",15,\n"+
		"3,abc,\n"+
		"4,-5,\n"+
		"5,18,someday\n")

	table, warnings, err := Load(path)
	require.NoError(t, err)
	require.Len(t, warnings, 4)

	rows := make([]int, 0, len(warnings))
	for _, warning := range warnings {
		var rowErr *RowError
		require.True(t, errors.As(warning, &rowErr), warning.Error())
		rows = append(rows, rowErr.Row)
	}
	assert.Equal(t, []int{3, 4, 5, 6}, rows)

	assert.Equal(t, 2, table.Len())
	record, ok := table.Lookup("5")
	require.True(t, ok, "bad start date keeps the row")
	assert.False(t, record.HasStart())
}

func TestLoad_Duplicates(t *testing.T) {
	t.Parallel()

	path := writeRatesCSV(t, "ID,RATE\n1,20\n1,25\n")

	table, warnings, err := Load(path)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	var duplicate *DuplicateRateWarning
	assert.True(t, errors.As(warnings[0], &duplicate))

	record, _ := table.Lookup("1")
	assert.Equal(t, "25", record.Rate.String())
}

func TestLoad_MissingColumns(t *testing.T) {
	t.Parallel()

	path := writeRatesCSV(t, "ID,START\n1,2024-01-01\n")

	_, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing RATE column")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_Excel(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "timesheet-rates.xlsx")
	file := excelize.NewFile()
	sheet := file.GetSheetName(0)
	rows := [][]any{
		{"ID", "RATE", "START", "EXTRA", "DETAILS"},
		{"10", "21.75", "2024-01-02", "", "Day shift"},
		{"11", "19", "", "25", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, file.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, file.SaveAs(path))
	require.NoError(t, file.Close())

	table, warnings, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Equal(t, 2, table.Len())

	record, _ := table.Lookup("10")
	assert.Equal(t, "21.75", record.Rate.String())
	assert.Equal(t, "Day shift", record.Details)
	assert.True(t, record.Start.Equal(timeutil.Date(2024, 1, 2)))

	bonus, _ := table.Lookup("11")
	assert.Equal(t, "25", bonus.Extra.String())
}

func TestLoad_ExcelDateStart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "timesheet-rates.xlsx")
	file := excelize.NewFile()
	sheet := file.GetSheetName(0)
	require.NoError(t, file.SetSheetRow(sheet, "A1", &[]any{"ID", "RATE", "START", "EXTRA", "DETAILS"}))
	require.NoError(t, file.SetSheetRow(sheet, "A2", &[]any{"10", 21.75, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 25, ""}))
	style, err := file.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	require.NoError(t, file.SetCellStyle(sheet, "C2", "C2", style))
	require.NoError(t, file.SaveAs(path))
	require.NoError(t, file.Close())

	table, warnings, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	record, ok := table.Lookup("10")
	require.True(t, ok)
	assert.True(t, record.Start.Equal(timeutil.Date(2024, 1, 2)), "start = %s", record.Start)
	assert.Equal(t, "21.75", record.Rate.String())
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	_, _, err := Parse(nil)
	assert.Error(t, err)
}
