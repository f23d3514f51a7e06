package output

import (
	"github.com/xuri/excelize/v2"

	"punchsheet/timesheet"
)

var summaryHeaders = []string{"Person", "Employee ID", "Total Hours", "Total $"}

func writeSummarySheet(file *excelize.File, sheet string, employees []timesheet.EmployeeSummary, st styles) error {
	for i, header := range summaryHeaders {
		if err := setCell(file, sheet, i+1, 1, header); err != nil {
			return err
		}
	}
	if err := setStyle(file, sheet, 1, 1, len(summaryHeaders), 1, st.bold); err != nil {
		return err
	}

	for i, employee := range employees {
		row := i + 2
		person := employee.Name
		if person == "" {
			person = employee.EmployeeID
		}
		values := []any{person, employee.EmployeeID, money(employee.TotalHours), money(employee.TotalPay)}
		for col, value := range values {
			if err := setCell(file, sheet, col+1, row, value); err != nil {
				return err
			}
		}
	}

	lastRow := len(employees) + 1
	totalRow := lastRow + 1
	if err := setCell(file, sheet, 1, totalRow, "All sheets total"); err != nil {
		return err
	}
	if err := setFormula(file, sheet, 3, totalRow, "SUM("+columnRange(3, 2, lastRow)+")"); err != nil {
		return err
	}
	if err := setFormula(file, sheet, 4, totalRow, "SUM("+columnRange(4, 2, lastRow)+")"); err != nil {
		return err
	}

	if err := setStyle(file, sheet, 3, 2, 3, totalRow, st.hours); err != nil {
		return err
	}
	if err := setStyle(file, sheet, 4, 2, 4, lastRow, st.currency); err != nil {
		return err
	}
	if err := setStyle(file, sheet, 1, totalRow, 1, totalRow, st.bold); err != nil {
		return err
	}
	if err := setStyle(file, sheet, 4, totalRow, 4, totalRow, st.total); err != nil {
		return err
	}

	if err := file.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	return file.SetColWidth(sheet, "B", "D", 14)
}
