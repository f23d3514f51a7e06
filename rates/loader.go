package rates

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"punchsheet/internal/timeutil"
	"punchsheet/internal/xlsxutil"
)

// Columns lists the rates table header in file order.
var Columns = []string{"ID", "RATE", "START", "EXTRA", "DETAILS"}

type tableRow struct {
	ID      string `csv:"ID" validate:"required"`
	Rate    string `csv:"RATE" validate:"required"`
	Start   string `csv:"START"`
	Extra   string `csv:"EXTRA"`
	Details string `csv:"DETAILS"`
}

// RowError reports a rates table row that was skipped or only partly used.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("rates row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

var validate = validator.New()

// Load reads a CSV or Excel rates table. Row-level problems come back as
// warnings; the error is set only when the file as a whole is unusable.
func Load(path string) (*Table, []error, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "xlsx", "xlsm":
		rows, err = readExcelRows(path)
	default:
		rows, err = readCSVRows(path)
	}
	if err != nil {
		return nil, nil, err
	}

	records, warnings, err := Parse(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("rates table %s: %w", path, err)
	}
	table, duplicates := NewTable(records)
	return table, append(warnings, duplicates...), nil
}

// Parse converts raw rows, header first, into records.
func Parse(rows [][]string) ([]Record, []error, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("rates table is empty")
	}

	header := make([]string, len(rows[0]))
	present := make(map[string]bool, len(header))
	for i, column := range rows[0] {
		header[i] = strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(column, "\ufeff")))
		present[header[i]] = true
	}
	for _, required := range []string{"ID", "RATE"} {
		if !present[required] {
			return nil, nil, fmt.Errorf("missing %s column", required)
		}
	}

	body := make([][]string, 0, len(rows))
	body = append(body, header)
	lineNumbers := make([]int, 0, len(rows))
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		body = append(body, padRow(row, len(header)))
		lineNumbers = append(lineNumbers, i+2)
	}

	var parsed []tableRow
	if err := gocsv.UnmarshalCSV(&rowSource{rows: body}, &parsed); err != nil {
		return nil, nil, fmt.Errorf("decode rates rows: %w", err)
	}

	records := make([]Record, 0, len(parsed))
	var warnings []error
	for i, row := range parsed {
		line := lineNumbers[i]
		record, err := row.toRecord()
		if err != nil {
			warnings = append(warnings, &RowError{Row: line, Err: err})
			continue
		}
		if start := strings.TrimSpace(row.Start); start != "" {
			parsedStart, err := timeutil.ParseDate(start)
			if err != nil {
				warnings = append(warnings, &RowError{Row: line, Err: fmt.Errorf("employee %s: start date ignored: %w", record.EmployeeID, err)})
			} else {
				record.Start = parsedStart
			}
		}
		records = append(records, record)
	}
	return records, warnings, nil
}

func (r tableRow) toRecord() (Record, error) {
	r.ID = strings.TrimSpace(r.ID)
	r.Rate = strings.TrimSpace(r.Rate)
	if err := validate.Struct(r); err != nil {
		return Record{}, describeValidation(err)
	}

	rate, err := ParseAmount(r.Rate)
	if err != nil {
		return Record{}, err
	}
	if rate.IsNegative() {
		return Record{}, fmt.Errorf("rate must not be negative")
	}
	extra, err := ParseAmount(r.Extra)
	if err != nil {
		return Record{}, err
	}

	return Record{
		EmployeeID: r.ID,
		Rate:       rate,
		Extra:      extra,
		Details:    strings.TrimSpace(r.Details),
	}, nil
}

func describeValidation(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}
	missing := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		missing = append(missing, strings.ToUpper(fieldError.Field()))
	}
	return fmt.Errorf("missing %s", strings.Join(missing, ", "))
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rates file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rates file %s: %w", path, err)
	}
	return rows, nil
}

func readExcelRows(path string) ([][]string, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open rates workbook %s: %w", path, err)
	}
	defer file.Close()

	_, rows, err := xlsxutil.ReadSheet(file, "")
	if err != nil {
		return nil, fmt.Errorf("rates workbook %s: %w", path, err)
	}
	return rows, nil
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

func isBlank(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// rowSource feeds already-read rows to gocsv.
type rowSource struct {
	rows [][]string
	next int
}

func (s *rowSource) Read() ([]string, error) {
	if s.next >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.next]
	s.next++
	return row, nil
}

func (s *rowSource) ReadAll() ([][]string, error) {
	rest := s.rows[s.next:]
	s.next = len(s.rows)
	return rest, nil
}
