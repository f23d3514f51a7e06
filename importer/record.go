package importer

import (
	"strings"

	"punchsheet/timesheet"
)

// Record is one source row keyed by normalized header.
type Record struct {
	RowNumber int
	Values    map[string]string
	// Err is set when the row could not be decoded at all.
	Err error
}

// Get returns the trimmed value of the first key present in the row.
func (r Record) Get(keys ...string) string {
	for _, key := range keys {
		if value, ok := r.Values[normalizeHeader(key)]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// Has reports whether the source file has a column for any of the keys,
// even when this row leaves it empty.
func (r Record) Has(keys ...string) bool {
	for _, key := range keys {
		if _, ok := r.Values[normalizeHeader(key)]; ok {
			return true
		}
	}
	return false
}

func (r Record) blank() bool {
	for _, value := range r.Values {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

func normalizeHeader(input string) string {
	return timesheet.NormalizeKey(strings.TrimPrefix(input, "\ufeff"))
}

func newRecord(rowNumber int, headers, row []string) Record {
	values := make(map[string]string, len(headers))
	for i, header := range headers {
		if header == "" {
			continue
		}
		if i < len(row) {
			values[header] = row[i]
		} else {
			values[header] = ""
		}
	}
	return Record{RowNumber: rowNumber, Values: values}
}

// brokenRecord keeps the header keys so format detection still works when
// the first data row is the broken one.
func brokenRecord(rowNumber int, headers []string, err error) Record {
	record := newRecord(rowNumber, headers, nil)
	record.Err = err
	return record
}

func normalizeHeaders(headers []string) []string {
	normalized := make([]string, len(headers))
	for i, header := range headers {
		normalized[i] = normalizeHeader(header)
	}
	return normalized
}
