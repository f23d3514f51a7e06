package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"punchsheet/timesheet"
)

func runOptions() Options {
	return Options{Mapping: MapperOptions{Sites: timesheet.DefaultSites(), DefaultLocation: timesheet.Other}}
}

func TestRun_OneCorruptedRowAmongHundred(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("ID,Date,Location,Hours\n")
	for i := 0; i < 100; i++ {
		if i == 57 {
			b.WriteString("E1,2024-01-0X,SiteA,8\n")
			continue
		}
		fmt.Fprintf(&b, "E%d,2024-01-0%d,SiteA,1.5\n", i%4, 1+i%7)
	}
	path := writeFile(t, t.TempDir(), "punches-01-07-2024.csv", b.String())

	result, err := Run(path, runOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RowsRead != 100 || result.RowsMapped != 99 || result.RowsSkipped != 1 {
		t.Fatalf("unexpected counts: read=%d mapped=%d skipped=%d", result.RowsRead, result.RowsMapped, result.RowsSkipped)
	}
	if len(result.Punches) != 99 {
		t.Fatalf("expected 99 punches, got %d", len(result.Punches))
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(result.Warnings))
	}
	var malformed *timesheet.MalformedRowError
	if !errors.As(result.Warnings[0], &malformed) || malformed.Row != 59 {
		t.Fatalf("expected malformed row 59, got %v", result.Warnings[0])
	}
}

func TestRun_UndecodableCSVRowIsSkipped(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("ID,Date,Location,Hours\n")
	for i := 0; i < 100; i++ {
		if i == 50 {
			b.WriteString("E1,2024-01-01,Si\"teA,8\n")
			continue
		}
		fmt.Fprintf(&b, "E%d,2024-01-0%d,SiteA,1.5\n", i%4, 1+i%7)
	}
	path := writeFile(t, t.TempDir(), "punches-01-07-2024.csv", b.String())

	result, err := Run(path, runOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RowsRead != 100 || result.RowsMapped != 99 || result.RowsSkipped != 1 {
		t.Fatalf("unexpected counts: read=%d mapped=%d skipped=%d", result.RowsRead, result.RowsMapped, result.RowsSkipped)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(result.Warnings))
	}
	var malformed *timesheet.MalformedRowError
	if !errors.As(result.Warnings[0], &malformed) || malformed.Row != 52 {
		t.Fatalf("expected malformed row 52, got %v", result.Warnings[0])
	}
	var parseErr *csv.ParseError
	if !errors.As(result.Warnings[0], &parseErr) {
		t.Fatalf("expected csv parse error cause, got %v", result.Warnings[0])
	}
}

func TestRun_DetectsFormatWhenFirstRowIsUndecodable(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "attendance.csv",
		"Person ID,Person Name,Punch Date,Attendance record\n"+
			"1,A\"na,2024-01-02,07:00:00\n"+
			"1,Ana,2024-01-02,08:00:00\n"+
			"1,Ana,2024-01-02,16:00:00\n")

	result, err := Run(path, runOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MapperName != MapperAttendance {
		t.Fatalf("expected attendance mapper, got %s", result.MapperName)
	}
	if result.RowsSkipped != 1 || len(result.Punches) != 1 {
		t.Fatalf("unexpected result: skipped=%d punches=%+v", result.RowsSkipped, result.Punches)
	}
}

func TestRun_DetectsAttendanceExport(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "attendance.csv",
		"Person ID,Person Name,Punch Date,Attendance record\n"+
			"1,Ana,2024-01-02,08:00:00\n"+
			"1,Ana,2024-01-02,16:00:00\n")

	result, err := Run(path, runOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MapperName != MapperAttendance {
		t.Fatalf("expected attendance mapper, got %s", result.MapperName)
	}
	if len(result.Punches) != 1 || result.Punches[0].Hours.String() != "8" {
		t.Fatalf("unexpected punches: %+v", result.Punches)
	}
}

func TestRun_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	if _, err := Run(filepath.Join(t.TempDir(), "punches.pdf"), runOptions()); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestRun_UnknownMapper(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "punches.csv", "ID,Date,Hours\nE1,2024-01-01,8\n")
	options := runOptions()
	options.Mapper = "epm"
	if _, err := Run(path, options); err == nil {
		t.Fatalf("expected error for unknown mapper")
	}
}

func TestParse_StopsWhenConsumerStops(t *testing.T) {
	t.Parallel()

	records := []Record{
		testRecord(2, map[string]string{"ID": "E1", "Date": "2024-01-01", "Hours": "1"}),
		testRecord(3, map[string]string{"ID": "E1", "Date": "2024-01-02", "Hours": "1"}),
		testRecord(4, map[string]string{"ID": "E1", "Date": "2024-01-03", "Hours": "1"}),
	}

	seen := 0
	for range Parse(records, &HoursMapper{options: hoursOptions()}) {
		seen++
		if seen == 2 {
			break
		}
	}
	if seen != 2 {
		t.Fatalf("expected to stop after 2 punches, saw %d", seen)
	}
}

func TestDetectMapperName(t *testing.T) {
	t.Parallel()

	if got := DetectMapperName(nil); got != MapperHours {
		t.Fatalf("expected hours for empty input, got %s", got)
	}
	records := []Record{attendanceRecord(2, "1", "Ana", "2024-01-02", "08:00:00")}
	if got := DetectMapperName(records); got != MapperAttendance {
		t.Fatalf("expected attendance, got %s", got)
	}
}
