package output

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"punchsheet/internal/timeutil"
	"punchsheet/timesheet"
)

// Employee sheet geometry. Each location section is a header row, one row
// per week day and a total row, followed by a blank spacer.
const (
	sectionStartRow = 6
	sectionHeight   = timesheet.WeekDays + 3

	colLabel    = 1
	colDate     = 2
	colCheckIn  = 3
	colCheckOut = 4
	colHours    = 5
)

// SectionRows returns the header row and total row of a location's section.
func SectionRows(location timesheet.Location) (header, total int) {
	header = sectionStartRow + int(location)*sectionHeight
	return header, header + timesheet.WeekDays + 1
}

// PayRows returns the first row of the pay block.
func PayRows() int {
	return sectionStartRow + timesheet.LocationCount*sectionHeight
}

var payLabels = []string{"Total hours", "Rate $", "Base $", "Extras $", "Withheld $", "Total $"}

func writeEmployeeSheet(file *excelize.File, sheet string, employee timesheet.EmployeeSummary, week timesheet.WeekRange, options WorkbookOptions, st styles) error {
	title := fmt.Sprintf("Person ID: %s, Name: %s", employee.EmployeeID, employee.Name)
	if err := setCell(file, sheet, 1, 1, title); err != nil {
		return err
	}
	if err := file.MergeCell(sheet, "A1", "F1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	if err := setStyle(file, sheet, 1, 1, 6, 1, st.bold); err != nil {
		return err
	}
	if err := setCell(file, sheet, 1, 2, "Period: "+week.String()); err != nil {
		return err
	}

	header := []any{"Rate $", money(employee.Rate.Rate), "Details", employee.Rate.Details}
	for i, value := range header {
		if err := setCell(file, sheet, i+1, 3, value); err != nil {
			return err
		}
	}
	if err := setStyle(file, sheet, 2, 3, 2, 3, st.currency); err != nil {
		return err
	}
	start := ""
	if employee.Rate.HasStart() {
		start = employee.Rate.Start.Format(timeutil.DateLayout)
	}
	if err := setCell(file, sheet, 1, 4, "Start date"); err != nil {
		return err
	}
	if err := setCell(file, sheet, 2, 4, start); err != nil {
		return err
	}

	for _, location := range timesheet.Locations() {
		if err := writeSection(file, sheet, employee, location, options, st); err != nil {
			return err
		}
	}

	if err := writePayBlock(file, sheet, employee, st); err != nil {
		return err
	}

	widths := []struct {
		col   string
		width float64
	}{
		{"A", 16}, {"B", 14}, {"C", 12}, {"D", 12}, {"E", 10}, {"F", 12},
	}
	for _, w := range widths {
		if err := file.SetColWidth(sheet, w.col, w.col, w.width); err != nil {
			return fmt.Errorf("set column width %s: %w", w.col, err)
		}
	}
	return nil
}

func writeSection(file *excelize.File, sheet string, employee timesheet.EmployeeSummary, location timesheet.Location, options WorkbookOptions, st styles) error {
	headerRow, totalRow := SectionRows(location)

	headers := []any{options.Sites.Label(location), "Date", "Check-in", "Check-out", "Hours"}
	for i, value := range headers {
		if err := setCell(file, sheet, i+1, headerRow, value); err != nil {
			return err
		}
	}
	if err := setStyle(file, sheet, colLabel, headerRow, colHours, headerRow, st.bold); err != nil {
		return err
	}

	for i, day := range employee.Days {
		row := headerRow + 1 + i
		if err := setCell(file, sheet, colLabel, row, day.Date.Weekday().String()[:3]); err != nil {
			return err
		}
		if err := setCell(file, sheet, colDate, row, day.Date.Format(timeutil.DateLayout)); err != nil {
			return err
		}

		hours := day.Hours[location]
		if hours.IsZero() {
			if err := setCell(file, sheet, colHours, row, options.Placeholder); err != nil {
				return err
			}
			continue
		}
		if in := day.In[location]; !in.IsZero() {
			if err := setCell(file, sheet, colCheckIn, row, in.Format("15:04")); err != nil {
				return err
			}
		}
		if out := day.Out[location]; !out.IsZero() {
			if err := setCell(file, sheet, colCheckOut, row, out.Format("15:04")); err != nil {
				return err
			}
		}
		if err := setCell(file, sheet, colHours, row, hours.InexactFloat64()); err != nil {
			return err
		}
	}
	if err := setStyle(file, sheet, colHours, headerRow+1, colHours, totalRow, st.hours); err != nil {
		return err
	}

	if err := setCell(file, sheet, colLabel, totalRow, "Total hours"); err != nil {
		return err
	}
	if err := setFormula(file, sheet, colHours, totalRow, "SUM("+columnRange(colHours, headerRow+1, totalRow-1)+")"); err != nil {
		return err
	}
	return setStyle(file, sheet, colLabel, totalRow, colLabel, totalRow, st.bold)
}

func writePayBlock(file *excelize.File, sheet string, employee timesheet.EmployeeSummary, st styles) error {
	first := PayRows()
	values := []decimal.Decimal{
		employee.TotalHours,
		employee.Rate.Rate,
		employee.BasePay,
		employee.Extras,
		employee.Withheld,
		employee.TotalPay,
	}
	for i, label := range payLabels {
		row := first + i
		if err := setCell(file, sheet, colLabel, row, label); err != nil {
			return err
		}
		if err := setCell(file, sheet, colDate, row, money(values[i])); err != nil {
			return err
		}
	}

	if err := setStyle(file, sheet, colDate, first, colDate, first, st.hours); err != nil {
		return err
	}
	if err := setStyle(file, sheet, colDate, first+1, colDate, first+len(payLabels)-2, st.currency); err != nil {
		return err
	}
	last := first + len(payLabels) - 1
	if err := setStyle(file, sheet, colLabel, last, colLabel, last, st.bold); err != nil {
		return err
	}
	return setStyle(file, sheet, colDate, last, colDate, last, st.total)
}

// money renders a decimal as a cell number rounded to cents.
func money(value decimal.Decimal) float64 {
	return value.Round(2).InexactFloat64()
}
