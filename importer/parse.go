package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	secondsPerHour = decimal.NewFromInt(3600)
	minutesPerHour = decimal.NewFromInt(60)
)

// parseHours accepts decimal hours ("8", "7.5", "7,5") and clock
// durations ("7:30").
func parseHours(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty hours")
	}

	if strings.HasPrefix(cleaned, "-") {
		return decimal.Zero, fmt.Errorf("hours must not be negative")
	}

	if hoursPart, minutesPart, ok := strings.Cut(cleaned, ":"); ok {
		hours, err := strconv.ParseUint(strings.TrimSpace(hoursPart), 10, 32)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse hours %q: %w", raw, err)
		}
		minutes, err := strconv.Atoi(strings.TrimSpace(minutesPart))
		if err != nil || minutes < 0 || minutes > 59 {
			return decimal.Zero, fmt.Errorf("parse hours %q: invalid minutes", raw)
		}
		total := decimal.NewFromInt(int64(hours)).Add(decimal.NewFromInt(int64(minutes)).Div(minutesPerHour))
		return total.Round(2), nil
	}

	if strings.Contains(cleaned, ",") {
		if strings.Contains(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	hours, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse hours %q: %w", raw, err)
	}
	if hours.IsNegative() {
		return decimal.Zero, fmt.Errorf("hours must not be negative")
	}
	return hours, nil
}

// durationHours converts a worked interval to hours rounded to 2 decimals.
func durationHours(d time.Duration) decimal.Decimal {
	seconds := decimal.NewFromInt(int64(d / time.Second))
	return seconds.Div(secondsPerHour).Round(2)
}
