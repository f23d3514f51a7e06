package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"02.01.2006",
}

var clockLayouts = []string{
	"15:04:05",
	"15:04",
	"03:04 PM",
	"3:04 PM",
	"03:04:05 PM",
}

// Date returns the calendar date as UTC midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// StartOfDay drops the clock part and moves the date to UTC midnight so
// dates compare and key consistently regardless of the source zone.
func StartOfDay(value time.Time) time.Time {
	return Date(value.Year(), value.Month(), value.Day())
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func AddDays(value time.Time, days int) time.Time {
	return value.AddDate(0, 0, days)
}

// DaysBetween counts whole calendar days from a to b (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)).Hours() / 24)
}

func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	// Timestamps exported with a clock part.
	for _, layout := range dateLayouts {
		for _, clock := range clockLayouts {
			if parsed, err := time.Parse(layout+" "+clock, value); err == nil {
				return StartOfDay(parsed), nil
			}
		}
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return StartOfDay(parsed), nil
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %q", value)
}

// ParseClock parses a wall-clock time and places it on day.
// A value that already carries a date must fall on that day.
func ParseClock(day time.Time, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time")
	}
	for _, layout := range clockLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), parsed.Second(), 0, time.UTC), nil
		}
	}
	for _, layout := range dateLayouts {
		for _, clock := range clockLayouts {
			parsed, err := time.Parse(layout+" "+clock, value)
			if err != nil {
				continue
			}
			if !SameDay(parsed, day) {
				return time.Time{}, fmt.Errorf("time %q is not on %s", value, day.Format(DateLayout))
			}
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format: %q", value)
}
