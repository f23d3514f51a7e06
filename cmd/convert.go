package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"punchsheet/config"
	"punchsheet/convert"
	"punchsheet/importer"
	"punchsheet/internal/timeutil"
)

var (
	convertRatesPath  string
	convertFormat     string
	convertMapper     string
	convertWeekEnding string
	convertSummaryCSV string
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a punch export into a timesheet workbook",
	Long: `Read one punch export, aggregate hours per employee, date and site, and write an Excel workbook.

The week shown in the workbook ends on the last MM-DD-YYYY date in the input file name
(shift-01-07-2024.csv covers 2024-01-01 to 2024-01-07). Without such a date the week
ends on the latest punch date; --week-ending overrides both.

Rates are read from --rates, else rates.path in the config, else timesheet-rates.csv
in the parent folder of the input's folder. A .db/.sqlite path reads a table written
by "punchsheet rates import".

Rows that cannot be parsed, punches outside the week and employees without a rate are
reported as warnings; the workbook is still written. A missing input or rates file
stops the run without writing anything.`,
	Example: `
  # Convert with the default rates lookup
  punchsheet convert punches/shift-01-07-2024.csv timesheets.xlsx

  # Raw attendance export from the terminal, explicit rates and week
  punchsheet convert attendance.xlsx timesheets.xlsx --mapper attendance --rates ./rates.csv --week-ending 2024-01-07

  # Also write a CSV summary for payroll
  punchsheet convert shift-01-07-2024.csv timesheets.xlsx --summary-csv ./summary.csv
`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd.Context(), args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	addConvertFlags(convertCmd)
}

func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&convertRatesPath, "rates", "r", "", "Rates table (.csv, .xlsx or .db); default ../timesheet-rates.csv relative to the input folder")
	cmd.Flags().StringVarP(&convertFormat, "format", "f", "", "Input format: csv|excel (optional, inferred from extension when omitted)")
	cmd.Flags().StringVarP(&convertMapper, "mapper", "m", "", "Punch layout: "+strings.Join(importer.SupportedMapperNames(), "|")+" (default from config, auto)")
	cmd.Flags().StringVar(&convertWeekEnding, "week-ending", "", "Last day of the week to render (YYYY-MM-DD or MM/DD/YYYY)")
	cmd.Flags().StringVar(&convertSummaryCSV, "summary-csv", "", "Also write a per-employee CSV summary to this path")
}

func runConvert(ctx context.Context, input, outputPath string) error {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return err
	}

	weekEnding, err := parseWeekEnding(convertWeekEnding)
	if err != nil {
		return err
	}

	result, err := convert.Run(ctx, convert.Options{
		InputPath:  input,
		OutputPath: outputPath,
		RatesPath:  convertRatesPath,
		Format:     convertFormat,
		Mapper:     convertMapper,
		WeekEnding: weekEnding,
		SummaryCSV: convertSummaryCSV,
		Config:     cfg,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Conversion completed. Week: %s (from %s), Rows read: %d, Rows skipped: %d, Employees: %d, Total hours: %s, Total pay: %s, Warnings: %d\n",
		result.Week,
		result.WeekSource,
		result.RowsRead,
		result.RowsSkipped,
		result.Employees,
		result.TotalHours.StringFixed(2),
		result.TotalPay.StringFixed(2),
		len(result.Warnings),
	)
	fmt.Printf("Workbook written: %s\n", result.OutputPath)
	return nil
}

func parseWeekEnding(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	date, err := timeutil.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --week-ending %q: %w", value, err)
	}
	return date, nil
}
