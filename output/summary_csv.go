package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"punchsheet/timesheet"
)

var summaryCSVHeaders = []string{"EmployeeID", "Name", "SiteAHours", "SiteBHours", "OtherHours", "TotalHours", "Rate", "BasePay", "Extras", "Withheld", "TotalPay"}

// WriteSummaryCSV writes one line per employee with hours per bucket and
// pay, for payroll tools that do not read workbooks.
func WriteSummaryCSV(path string, aggregation *timesheet.Aggregation) error {
	staged, err := StageSummaryCSV(path, aggregation)
	if err != nil {
		return err
	}
	return staged.Commit()
}

// StageSummaryCSV writes the summary to a temporary file next to path.
func StageSummaryCSV(path string, aggregation *timesheet.Aggregation) (*Staged, error) {
	return stage(path, ".punchsheet-*.csv", func(w io.Writer) error {
		return writeSummaryCSV(w, aggregation)
	})
}

func writeSummaryCSV(w io.Writer, aggregation *timesheet.Aggregation) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(summaryCSVHeaders); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, employee := range aggregation.Employees {
		row := []string{
			employee.EmployeeID,
			employee.Name,
			employee.LocationHours(timesheet.SiteA).StringFixed(2),
			employee.LocationHours(timesheet.SiteB).StringFixed(2),
			employee.LocationHours(timesheet.Other).StringFixed(2),
			employee.TotalHours.StringFixed(2),
			employee.Rate.Rate.StringFixed(2),
			employee.BasePay.StringFixed(2),
			employee.Extras.StringFixed(2),
			employee.Withheld.StringFixed(2),
			employee.TotalPay.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
