package timesheet

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"punchsheet/internal/timeutil"
)

// WeekDays is the length of every WeekRange.
const WeekDays = 7

// WeekRange is an inclusive 7-day display window.
type WeekRange struct {
	Start time.Time
	End   time.Time
}

var trailingDatePattern = regexp.MustCompile(`(\d{2})-(\d{2})-(\d{4})`)

// WeekEnding returns the window of seven days that ends on end.
func WeekEnding(end time.Time) WeekRange {
	end = timeutil.StartOfDay(end)
	return WeekRange{Start: timeutil.AddDays(end, -(WeekDays - 1)), End: end}
}

// WeekRangeFromFilename reads the last MM-DD-YYYY token of the file's base
// name as the week's end date. The second value is false when the name
// carries no valid date.
func WeekRangeFromFilename(name string) (WeekRange, bool) {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	matches := trailingDatePattern.FindAllStringSubmatch(base, -1)
	if len(matches) == 0 {
		return WeekRange{}, false
	}
	last := matches[len(matches)-1]
	month, _ := strconv.Atoi(last[1])
	day, _ := strconv.Atoi(last[2])
	year, _ := strconv.Atoi(last[3])

	end := timeutil.Date(year, time.Month(month), day)
	// time.Date normalizes overflow (02-30 becomes 03-01); treat that as no date.
	if end.Year() != year || int(end.Month()) != month || end.Day() != day {
		return WeekRange{}, false
	}
	return WeekEnding(end), true
}

// Days lists every date in the range, oldest first.
func (w WeekRange) Days() []time.Time {
	days := make([]time.Time, 0, WeekDays)
	for d := w.Start; !d.After(w.End); d = timeutil.AddDays(d, 1) {
		days = append(days, d)
	}
	return days
}

func (w WeekRange) Contains(date time.Time) bool {
	date = timeutil.StartOfDay(date)
	return !date.Before(w.Start) && !date.After(w.End)
}

// Index returns the position of date within the range, or -1.
func (w WeekRange) Index(date time.Time) int {
	if !w.Contains(date) {
		return -1
	}
	return timeutil.DaysBetween(w.Start, date)
}

func (w WeekRange) String() string {
	return w.Start.Format(timeutil.DateLayout) + " to " + w.End.Format(timeutil.DateLayout)
}
