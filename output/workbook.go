package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"punchsheet/timesheet"
)

const SummarySheet = "Summary"

type WorkbookOptions struct {
	Sites timesheet.Sites
	// Placeholder is written into grid cells without hours.
	Placeholder    string
	CurrencyFormat string
	// RunID and Source end up in the workbook's document properties.
	RunID  string
	Source string
}

func DefaultWorkbookOptions() WorkbookOptions {
	return WorkbookOptions{
		Sites:          timesheet.DefaultSites(),
		Placeholder:    "-",
		CurrencyFormat: "$#,##0.00",
	}
}

type styles struct {
	bold     int
	hours    int
	currency int
	total    int
}

// WriteWorkbook renders the aggregation and saves it to path. The file is
// written next to path first and renamed into place, so a failed run never
// leaves a partial workbook behind.
func WriteWorkbook(path string, aggregation *timesheet.Aggregation, options WorkbookOptions) error {
	staged, err := StageWorkbook(path, aggregation, options)
	if err != nil {
		return err
	}
	return staged.Commit()
}

// StageWorkbook builds and writes the workbook to a temporary file in the
// target directory. Nothing appears under path until Commit.
func StageWorkbook(path string, aggregation *timesheet.Aggregation, options WorkbookOptions) (*Staged, error) {
	file, err := BuildWorkbook(aggregation, options)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return stage(path, ".punchsheet-*.xlsx", func(w io.Writer) error {
		return file.Write(w)
	})
}

// BuildWorkbook lays out the Summary sheet first and one sheet per
// employee in aggregation order.
func BuildWorkbook(aggregation *timesheet.Aggregation, options WorkbookOptions) (*excelize.File, error) {
	if aggregation == nil || len(aggregation.Employees) == 0 {
		return nil, timesheet.ErrNoEmployeeData
	}

	file := excelize.NewFile()
	if err := file.SetSheetName(file.GetSheetName(0), SummarySheet); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("rename default sheet: %w", err)
	}

	st, err := newStyles(file, options)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	names := newSheetNamer(SummarySheet)
	for _, employee := range aggregation.Employees {
		sheet := names.next(employee.EmployeeID, employee.Name)
		if _, err := file.NewSheet(sheet); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("create sheet %s: %w", sheet, err)
		}
		if err := writeEmployeeSheet(file, sheet, employee, aggregation.Week, options, st); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("write sheet %s: %w", sheet, err)
		}
	}

	if err := writeSummarySheet(file, SummarySheet, aggregation.Employees, st); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("write summary sheet: %w", err)
	}
	file.SetActiveSheet(0)

	if err := file.SetDocProps(&excelize.DocProperties{
		Title:       "Timesheets " + aggregation.Week.String(),
		Subject:     "Weekly timesheets",
		Creator:     "punchsheet",
		Identifier:  options.RunID,
		Description: options.Source,
	}); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("set document properties: %w", err)
	}

	return file, nil
}

func newStyles(file *excelize.File, options WorkbookOptions) (styles, error) {
	var (
		st  styles
		err error
	)
	hoursFormat := "0.00"
	currencyFormat := options.CurrencyFormat
	if currencyFormat == "" {
		currencyFormat = DefaultWorkbookOptions().CurrencyFormat
	}

	if st.bold, err = file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return st, fmt.Errorf("create bold style: %w", err)
	}
	if st.hours, err = file.NewStyle(&excelize.Style{
		CustomNumFmt: &hoursFormat,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return st, fmt.Errorf("create hours style: %w", err)
	}
	if st.currency, err = file.NewStyle(&excelize.Style{CustomNumFmt: &currencyFormat}); err != nil {
		return st, fmt.Errorf("create currency style: %w", err)
	}
	if st.total, err = file.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &currencyFormat,
	}); err != nil {
		return st, fmt.Errorf("create total style: %w", err)
	}
	return st, nil
}

func setCell(file *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := file.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set value %s: %w", cell, err)
	}
	return nil
}

func setStyle(file *excelize.File, sheet string, fromCol, fromRow, toCol, toRow, style int) error {
	from, err := excelize.CoordinatesToCellName(fromCol, fromRow)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(toCol, toRow)
	if err != nil {
		return err
	}
	if err := file.SetCellStyle(sheet, from, to, style); err != nil {
		return fmt.Errorf("set style %s:%s: %w", from, to, err)
	}
	return nil
}

func setFormula(file *excelize.File, sheet string, col, row int, formula string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := file.SetCellFormula(sheet, cell, formula); err != nil {
		return fmt.Errorf("set formula %s: %w", cell, err)
	}
	return nil
}

func columnRange(col, fromRow, toRow int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return fmt.Sprintf("%s%d:%s%d", name, fromRow, name, toRow)
}
