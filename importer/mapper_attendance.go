package importer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"punchsheet/internal/timeutil"
	"punchsheet/rates"
	"punchsheet/timesheet"
)

// AttendanceMapper consumes raw clock events (one row per terminal punch)
// and pairs them per employee, date and location: the earliest event is
// the check-in and the latest the check-out.
type AttendanceMapper struct {
	options MapperOptions
	days    map[attendanceKey]*attendanceDay
}

type attendanceKey struct {
	employeeID string
	date       time.Time
	location   timesheet.Location
}

type attendanceDay struct {
	name     string
	first    time.Time
	last     time.Time
	firstRow int
	events   int
}

// SinglePunchWarning reports a day with one clock event; it counts as zero hours.
type SinglePunchWarning struct {
	EmployeeID string
	Date       time.Time
	Row        int
}

func (w *SinglePunchWarning) Error() string {
	return fmt.Sprintf("row %d: employee %s has a single punch on %s; counted as 0 hours", w.Row, w.EmployeeID, w.Date.Format(timeutil.DateLayout))
}

func NewAttendanceMapper(options MapperOptions) *AttendanceMapper {
	return &AttendanceMapper{
		options: options,
		days:    make(map[attendanceKey]*attendanceDay),
	}
}

func (m *AttendanceMapper) Name() string {
	return MapperAttendance
}

// Map records the event and never emits a punch; see Flush.
func (m *AttendanceMapper) Map(record Record) (*timesheet.Punch, bool, error) {
	if record.blank() {
		return nil, false, nil
	}

	employeeID := record.Get(employeeIDKeys...)
	if employeeID == "" {
		return nil, false, fmt.Errorf("missing employee id")
	}

	date, err := timeutil.ParseDate(record.Get(dateKeys...))
	if err != nil {
		return nil, false, fmt.Errorf("parse punch date: %w", err)
	}

	at, err := timeutil.ParseClock(date, record.Get("attendancerecord", "attendance", "punchtime", "time"))
	if err != nil {
		return nil, false, fmt.Errorf("parse attendance record: %w", err)
	}

	key := attendanceKey{employeeID: employeeID, date: date, location: m.options.location(record)}
	day, ok := m.days[key]
	if !ok {
		day = &attendanceDay{first: at, last: at, firstRow: record.RowNumber}
		m.days[key] = day
	}
	if name := record.Get(employeeNameKeys...); name != "" && (day.name == "" || name < day.name) {
		day.name = name
	}
	if at.Before(day.first) {
		day.first = at
	}
	if at.After(day.last) {
		day.last = at
	}
	if record.RowNumber < day.firstRow {
		day.firstRow = record.RowNumber
	}
	day.events++

	return nil, false, nil
}

// Flush emits one punch per employee, date and location in a stable order.
func (m *AttendanceMapper) Flush() ([]timesheet.Punch, []error) {
	keys := make([]attendanceKey, 0, len(m.days))
	for key := range m.days {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if c := rates.CompareIDs(a.employeeID, b.employeeID); c != 0 {
			return c < 0
		}
		if !a.date.Equal(b.date) {
			return a.date.Before(b.date)
		}
		return a.location < b.location
	})

	punches := make([]timesheet.Punch, 0, len(keys))
	var warnings []error
	for _, key := range keys {
		day := m.days[key]
		if day.events == 1 {
			warnings = append(warnings, &SinglePunchWarning{EmployeeID: key.employeeID, Date: key.date, Row: day.firstRow})
		}
		punches = append(punches, timesheet.Punch{
			EmployeeID:   key.employeeID,
			EmployeeName: strings.TrimSpace(day.name),
			Date:         key.date,
			Location:     key.location,
			Hours:        durationHours(day.last.Sub(day.first)),
			In:           day.first,
			Out:          day.last,
			Row:          day.firstRow,
		})
	}
	return punches, warnings
}
