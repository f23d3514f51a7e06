package importer

import (
	"fmt"
	"strings"

	"punchsheet/internal/timeutil"
	"punchsheet/timesheet"
)

// HoursMapper maps one row to one punch. A row carries either explicit
// hours or a check-in/check-out pair on the punch date; when both are
// present the explicit hours win and the times are kept for display.
type HoursMapper struct {
	options MapperOptions
}

func (m *HoursMapper) Name() string {
	return MapperHours
}

func (m *HoursMapper) Map(record Record) (*timesheet.Punch, bool, error) {
	if record.blank() {
		return nil, false, nil
	}

	employeeID := record.Get(employeeIDKeys...)
	if employeeID == "" {
		return nil, false, fmt.Errorf("missing employee id")
	}

	date, err := timeutil.ParseDate(record.Get(dateKeys...))
	if err != nil {
		return nil, false, fmt.Errorf("parse date: %w", err)
	}

	punch := &timesheet.Punch{
		EmployeeID:   employeeID,
		EmployeeName: record.Get(employeeNameKeys...),
		Date:         date,
		Location:     m.options.location(record),
		Row:          record.RowNumber,
	}

	inRaw := record.Get("in", "checkin", "timein", "start", "clockin")
	outRaw := record.Get("out", "checkout", "timeout", "end", "clockout")
	if inRaw != "" || outRaw != "" {
		punch.In, err = timeutil.ParseClock(date, inRaw)
		if err != nil {
			return nil, false, fmt.Errorf("parse check-in: %w", err)
		}
		punch.Out, err = timeutil.ParseClock(date, outRaw)
		if err != nil {
			return nil, false, fmt.Errorf("parse check-out: %w", err)
		}
		if punch.Out.Before(punch.In) {
			return nil, false, fmt.Errorf("check-out %s is before check-in %s", punch.Out.Format("15:04"), punch.In.Format("15:04"))
		}
	}

	if hoursRaw := record.Get("hours", "duration", "hoursworked", "workedhours"); strings.TrimSpace(hoursRaw) != "" {
		punch.Hours, err = parseHours(hoursRaw)
		if err != nil {
			return nil, false, err
		}
		return punch, true, nil
	}

	if punch.In.IsZero() {
		return nil, false, fmt.Errorf("missing hours or check-in/check-out")
	}
	punch.Hours = durationHours(punch.Out.Sub(punch.In))
	return punch, true, nil
}
