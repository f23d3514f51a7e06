package xlsxutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadSheet_RendersDateCells(t *testing.T) {
	t.Parallel()

	file := excelize.NewFile()
	defer file.Close()
	sheet := file.GetSheetName(0)

	dateStyle, err := file.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	clockStyle, err := file.NewStyle(&excelize.Style{NumFmt: 20})
	require.NoError(t, err)
	customFormat := "dd.mm.yyyy hh:mm"
	customStyle, err := file.NewStyle(&excelize.Style{CustomNumFmt: &customFormat})
	require.NoError(t, err)
	elapsedStyle, err := file.NewStyle(&excelize.Style{NumFmt: 46})
	require.NoError(t, err)

	require.NoError(t, file.SetSheetRow(sheet, "A1", &[]any{"Date", "In", "Stamp", "Hours", "Plain"}))
	require.NoError(t, file.SetCellValue(sheet, "A2", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, file.SetCellStyle(sheet, "A2", "A2", dateStyle))
	require.NoError(t, file.SetCellFloat(sheet, "B2", 0.375, -1, 64))
	require.NoError(t, file.SetCellStyle(sheet, "B2", "B2", clockStyle))
	require.NoError(t, file.SetCellFloat(sheet, "C2", 45293.5, -1, 64))
	require.NoError(t, file.SetCellStyle(sheet, "C2", "C2", customStyle))
	require.NoError(t, file.SetCellFloat(sheet, "D2", 0.3125, -1, 64))
	require.NoError(t, file.SetCellStyle(sheet, "D2", "D2", elapsedStyle))
	require.NoError(t, file.SetCellValue(sheet, "E2", 7.5))

	name, rows, err := ReadSheet(file, "")
	require.NoError(t, err)
	assert.Equal(t, sheet, name)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-01", rows[1][0])
	assert.Equal(t, "09:00:00", rows[1][1])
	assert.Equal(t, "2024-01-02 12:00:00", rows[1][2])
	assert.False(t, isBuiltInDateFormat(46))
	assert.Equal(t, "7.5", rows[1][4])
}

func TestReadSheet_UnknownSheet(t *testing.T) {
	t.Parallel()

	file := excelize.NewFile()
	defer file.Close()

	_, _, err := ReadSheet(file, "Punches")
	assert.Error(t, err)
}

func TestIsDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   bool
	}{
		{format: "yyyy-mm-dd", want: true},
		{format: "hh:mm", want: true},
		{format: "[h]:mm", want: false},
		{format: "0.00", want: false},
		{format: `"Day "0`, want: false},
		{format: `#,##0.00 [$USD]`, want: false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, isDateFormat(tc.format), tc.format)
	}
}
