package importer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"punchsheet/internal/timeutil"
)

func TestExcelReader_ReadsFirstSheet(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "punches.xlsx")
	file := excelize.NewFile()
	sheet := file.GetSheetName(0)
	rows := [][]any{
		{"ID", "Date", "Location", "Hours"},
		{"E1", "2024-01-01", "SiteA", "8"},
		{},
		{"E2", "2024-01-02", "SiteB", "6.5"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := file.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = file.Close()

	records, err := (&ExcelReader{}).Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if got := records[1].Get("hours"); got != "6.5" {
		t.Fatalf("hours = %q, want 6.5", got)
	}
}

func TestExcelReader_UnknownSheet(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.xlsx")
	file := excelize.NewFile()
	if err := file.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = file.Close()

	if _, err := (&ExcelReader{Sheet: "Punches"}).Read(path); err == nil {
		t.Fatalf("expected error for unknown sheet")
	}
}

func TestExcelReader_DateCellsParseAsPunches(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "punches-01-07-2024.xlsx")
	file := excelize.NewFile()
	sheet := file.GetSheetName(0)
	if err := file.SetSheetRow(sheet, "A1", &[]any{"ID", "Date", "Location", "Hours"}); err != nil {
		t.Fatalf("set header: %v", err)
	}
	if err := file.SetSheetRow(sheet, "A2", &[]any{"E1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "SiteA", 8}); err != nil {
		t.Fatalf("set row: %v", err)
	}
	style, err := file.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		t.Fatalf("new style: %v", err)
	}
	if err := file.SetCellStyle(sheet, "B2", "B2", style); err != nil {
		t.Fatalf("set style: %v", err)
	}
	if err := file.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = file.Close()

	result, err := Run(path, runOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", result.Warnings)
	}
	if len(result.Punches) != 1 {
		t.Fatalf("expected 1 punch, got %d", len(result.Punches))
	}
	punch := result.Punches[0]
	if !punch.Date.Equal(timeutil.Date(2024, 1, 1)) || punch.Hours.String() != "8" {
		t.Fatalf("unexpected punch: %+v", punch)
	}
}
