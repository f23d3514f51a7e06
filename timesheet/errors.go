package timesheet

import (
	"errors"
	"fmt"
	"time"

	"punchsheet/internal/timeutil"
)

// ErrNoEmployeeData means no employee survived parsing and rate lookup.
var ErrNoEmployeeData = errors.New("no employee data")

// FatalInputError aborts a run: an input file is missing, unreadable or
// structurally unusable.
type FatalInputError struct {
	Op   string
	Path string
	Err  error
}

func (e *FatalInputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FatalInputError) Unwrap() error { return e.Err }

// MalformedRowError reports an input row that was skipped.
type MalformedRowError struct {
	Row int
	Err error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }

// MissingRateError reports an employee with punches but no rate record.
// The employee is left out of the workbook.
type MissingRateError struct {
	EmployeeID string
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("employee %s has no rate record; sheet skipped", e.EmployeeID)
}

// OutOfRangeWarning reports a punch dated outside the displayed week.
type OutOfRangeWarning struct {
	EmployeeID string
	Date       time.Time
	Week       WeekRange
}

func (e *OutOfRangeWarning) Error() string {
	return fmt.Sprintf("employee %s: punch on %s is outside %s; skipped", e.EmployeeID, e.Date.Format(timeutil.DateLayout), e.Week)
}

// DateExtractionFailure reports an input name without a trailing date.
type DateExtractionFailure struct {
	Name     string
	Fallback WeekRange
}

func (e *DateExtractionFailure) Error() string {
	return fmt.Sprintf("no MM-DD-YYYY date in %q; using %s", e.Name, e.Fallback)
}
