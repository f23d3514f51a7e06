package timesheet

import (
	"time"

	"github.com/shopspring/decimal"

	"punchsheet/internal/timeutil"
)

var hundred = decimal.NewFromInt(100)

// PayPolicy turns hours into pay. The base is always hours × rate; the
// rate table's EXTRA is a fixed bonus paid once an employee is past the
// new-hire window, and withholding takes a percentage of the subtotal
// under the same condition. The week end stands in for "today" so the
// same inputs always produce the same pay.
type PayPolicy struct {
	NewHireDays         int
	SkipExtrasInJanuary bool
	WithholdingPercent  decimal.Decimal
}

func DefaultPayPolicy() PayPolicy {
	return PayPolicy{
		NewHireDays:         28,
		SkipExtrasInJanuary: true,
		WithholdingPercent:  decimal.Zero,
	}
}

func (p PayPolicy) eligible(start time.Time, week WeekRange) bool {
	if p.SkipExtrasInJanuary && week.End.Month() == time.January {
		return false
	}
	if !start.IsZero() && timeutil.DaysBetween(start, week.End) < p.NewHireDays {
		return false
	}
	return true
}

func (p PayPolicy) apply(summary *EmployeeSummary, week WeekRange) {
	summary.BasePay = summary.TotalHours.Mul(summary.Rate.Rate)
	summary.Extras = decimal.Zero
	summary.Withheld = decimal.Zero

	summary.ExtrasEligible = p.eligible(summary.Rate.Start, week)
	if summary.ExtrasEligible {
		summary.Extras = summary.Rate.Extra
		if p.WithholdingPercent.IsPositive() {
			subtotal := summary.BasePay.Add(summary.Extras)
			summary.Withheld = subtotal.Mul(p.WithholdingPercent).Div(hundred).RoundFloor(2)
		}
	}

	summary.TotalPay = summary.BasePay.Add(summary.Extras).Sub(summary.Withheld)
}
