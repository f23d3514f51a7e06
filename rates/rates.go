package rates

import (
	"cmp"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record is the pay configuration of one employee.
type Record struct {
	EmployeeID string
	Rate       decimal.Decimal
	// Start is zero when the rates table gives no start date.
	Start   time.Time
	Extra   decimal.Decimal
	Details string
}

func (r Record) HasStart() bool {
	return !r.Start.IsZero()
}

// Table is the read-only employee ID → Record lookup used during a run.
type Table struct {
	byID map[string]Record
}

// DuplicateRateWarning reports an employee listed more than once; the
// later row replaces the earlier one.
type DuplicateRateWarning struct {
	EmployeeID string
}

func (w *DuplicateRateWarning) Error() string {
	return fmt.Sprintf("duplicate rate for employee %s; last row wins", w.EmployeeID)
}

// NewTable indexes records by employee ID. Duplicate IDs keep the last
// record and are reported.
func NewTable(records []Record) (*Table, []error) {
	table := &Table{byID: make(map[string]Record, len(records))}
	var warnings []error
	for _, record := range records {
		id := strings.TrimSpace(record.EmployeeID)
		record.EmployeeID = id
		if _, exists := table.byID[id]; exists {
			warnings = append(warnings, &DuplicateRateWarning{EmployeeID: id})
		}
		table.byID[id] = record
	}
	return table, warnings
}

func (t *Table) Lookup(employeeID string) (Record, bool) {
	if t == nil {
		return Record{}, false
	}
	record, ok := t.byID[strings.TrimSpace(employeeID)]
	return record, ok
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byID)
}

// Records returns all records ordered by employee ID.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	records := make([]Record, 0, len(t.byID))
	for _, record := range t.byID {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return CompareIDs(records[i].EmployeeID, records[j].EmployeeID) < 0
	})
	return records
}

// CompareIDs orders employee IDs numerically when both are integers and
// lexically otherwise.
func CompareIDs(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		if c := cmp.Compare(na, nb); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}

// ParseAmount parses a money or rate value such as "20", "$1,250.50" or "".
// Empty input is zero.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	return value, nil
}
