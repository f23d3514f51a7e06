package timesheet

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"punchsheet/rates"
)

// DayTotals is one row of the fixed (date × location) grid.
type DayTotals struct {
	Date  time.Time
	Hours [LocationCount]decimal.Decimal
	// First check-in and last check-out per bucket; zero when unknown.
	In  [LocationCount]time.Time
	Out [LocationCount]time.Time
}

func (d DayTotals) Total() decimal.Decimal {
	total := decimal.Zero
	for _, hours := range d.Hours {
		total = total.Add(hours)
	}
	return total
}

// EmployeeSummary holds one employee's grid and pay for the run.
type EmployeeSummary struct {
	EmployeeID string
	Name       string
	Rate       rates.Record
	Days       [WeekDays]DayTotals

	TotalHours     decimal.Decimal
	BasePay        decimal.Decimal
	ExtrasEligible bool
	Extras         decimal.Decimal
	Withheld       decimal.Decimal
	TotalPay       decimal.Decimal
}

// LocationHours sums one bucket across the week.
func (s EmployeeSummary) LocationHours(location Location) decimal.Decimal {
	total := decimal.Zero
	for _, day := range s.Days {
		total = total.Add(day.Hours[location])
	}
	return total
}

// Aggregation is the Aggregator's output for one run.
type Aggregation struct {
	Week      WeekRange
	Employees []EmployeeSummary
	Warnings  []error
}

func (a *Aggregation) GrandTotals() (hours, pay decimal.Decimal) {
	hours, pay = decimal.Zero, decimal.Zero
	for _, employee := range a.Employees {
		hours = hours.Add(employee.TotalHours)
		pay = pay.Add(employee.TotalPay)
	}
	return hours, pay
}

type employeeGrid struct {
	id   string
	name string
	days [WeekDays]DayTotals
}

// Aggregate groups punches by employee, date and location bucket over the
// week. Employees come back ordered by ID; those without a rate record are
// reported and left out.
func Aggregate(punches []Punch, table *rates.Table, week WeekRange, policy PayPolicy) *Aggregation {
	result := &Aggregation{Week: week}
	grids := make(map[string]*employeeGrid)

	for _, punch := range punches {
		index := week.Index(punch.Date)
		if index < 0 {
			result.Warnings = append(result.Warnings, &OutOfRangeWarning{EmployeeID: punch.EmployeeID, Date: punch.Date, Week: week})
			continue
		}

		grid, ok := grids[punch.EmployeeID]
		if !ok {
			grid = newEmployeeGrid(punch.EmployeeID, week)
			grids[punch.EmployeeID] = grid
		}
		grid.add(index, punch)
	}

	ids := make([]string, 0, len(grids))
	for id := range grids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return rates.CompareIDs(ids[i], ids[j]) < 0
	})

	result.Employees = make([]EmployeeSummary, 0, len(ids))
	for _, id := range ids {
		rate, ok := table.Lookup(id)
		if !ok {
			result.Warnings = append(result.Warnings, &MissingRateError{EmployeeID: id})
			continue
		}
		result.Employees = append(result.Employees, grids[id].summarize(rate, week, policy))
	}

	return result
}

func newEmployeeGrid(id string, week WeekRange) *employeeGrid {
	grid := &employeeGrid{id: id}
	for i, day := range week.Days() {
		grid.days[i].Date = day
		for _, location := range Locations() {
			grid.days[i].Hours[location] = decimal.Zero
		}
	}
	return grid
}

func (g *employeeGrid) add(index int, punch Punch) {
	// The smallest non-empty name keeps the sheet title independent of row order.
	if punch.EmployeeName != "" && (g.name == "" || punch.EmployeeName < g.name) {
		g.name = punch.EmployeeName
	}

	day := &g.days[index]
	day.Hours[punch.Location] = day.Hours[punch.Location].Add(punch.Hours)
	if !punch.In.IsZero() && (day.In[punch.Location].IsZero() || punch.In.Before(day.In[punch.Location])) {
		day.In[punch.Location] = punch.In
	}
	if !punch.Out.IsZero() && punch.Out.After(day.Out[punch.Location]) {
		day.Out[punch.Location] = punch.Out
	}
}

func (g *employeeGrid) summarize(rate rates.Record, week WeekRange, policy PayPolicy) EmployeeSummary {
	summary := EmployeeSummary{
		EmployeeID: g.id,
		Name:       g.name,
		Rate:       rate,
		Days:       g.days,
		TotalHours: decimal.Zero,
	}
	for _, day := range g.days {
		summary.TotalHours = summary.TotalHours.Add(day.Total())
	}
	policy.apply(&summary, week)
	return summary
}
