package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVReader reads comma-separated punch exports. Timeclock terminals write
// UTF-8, UTF-8 with BOM or UTF-16 with BOM; all three decode to UTF-8.
type CSVReader struct{}

func (r *CSVReader) Read(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file %s: %w", path, err)
	}
	defer file.Close()

	return r.read(file)
}

func (r *CSVReader) read(input io.Reader) ([]Record, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := csv.NewReader(transform.NewReader(input, decoder))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	normalizedHeaders := normalizeHeaders(headers)

	records := make([]Record, 0, 128)
	rowNumber := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNumber++

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			records = append(records, brokenRecord(rowNumber, normalizedHeaders, parseErr))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", rowNumber, err)
		}

		records = append(records, newRecord(rowNumber, normalizedHeaders, row))
	}

	return records, nil
}
