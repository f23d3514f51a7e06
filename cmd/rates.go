package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"punchsheet/convert"
	"punchsheet/log"
	"punchsheet/rates"
	"punchsheet/storage"
)

var (
	ratesImportInput string
	ratesImportDB    string
	ratesShowPath    string
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Inspect and store employee rate tables",
	Long: `Work with the rates table (columns ID, RATE, START, EXTRA, DETAILS).

"rates import" copies a CSV or Excel table into a SQLite database that "convert --rates" can read.
"rates show" prints a table as convert would see it, including row warnings.`,
}

var ratesImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a CSV/Excel rates table into a SQLite database",
	Long: `Read a rates table, validate every row and replace the contents of the SQLite rates database.

Rows without an ID or with an invalid RATE are skipped and reported. When an ID appears
more than once, the last row wins.`,
	Example: `
  # Import rates into the default database
  punchsheet rates import -i ./timesheet-rates.csv

  # Import into a custom database
  punchsheet rates import -i ./rates.xlsx --db ./payroll/rates.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.FromContext(cmd.Context())

		stored, warnings, err := importRates(ratesImportInput, ratesImportDB)
		for _, warning := range warnings {
			logger.Warn(warning.Error())
		}
		if err != nil {
			return err
		}

		fmt.Printf("Rates import completed. Source: %s, Rows stored: %d, Warnings: %d, Database: %s\n",
			filepath.Base(ratesImportInput),
			stored,
			len(warnings),
			ratesImportDB,
		)
		return nil
	},
}

var ratesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a rates table",
	Example: `
  # Show rates from a CSV file
  punchsheet rates show --rates ./timesheet-rates.csv

  # Show rates stored in SQLite
  punchsheet rates show --rates ./rates.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.FromContext(cmd.Context())

		table, warnings, err := convert.LoadRates(ratesShowPath)
		if err != nil {
			return err
		}
		for _, warning := range warnings {
			logger.Warn(warning.Error())
		}

		fmt.Printf("%-12s %10s %-10s %10s  %s\n", "ID", "RATE", "START", "EXTRA", "DETAILS")
		for _, record := range table.Records() {
			start := ""
			if record.HasStart() {
				start = record.Start.Format("2006-01-02")
			}
			fmt.Printf("%-12s %10s %-10s %10s  %s\n",
				record.EmployeeID,
				record.Rate.StringFixed(2),
				start,
				record.Extra.StringFixed(2),
				record.Details,
			)
		}
		fmt.Printf("Employees: %d\n", table.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ratesCmd)
	ratesCmd.AddCommand(ratesImportCmd)
	ratesCmd.AddCommand(ratesShowCmd)

	ratesImportCmd.Flags().StringVarP(&ratesImportInput, "input", "i", "", "Rates table to import (.csv or .xlsx)")
	ratesImportCmd.Flags().StringVar(&ratesImportDB, "db", "./punchsheet-rates.db", "Path to the SQLite rates database")
	_ = ratesImportCmd.MarkFlagRequired("input")

	ratesShowCmd.Flags().StringVarP(&ratesShowPath, "rates", "r", convert.DefaultRatesFile, "Rates table (.csv, .xlsx or .db)")
}

// importRates loads input and replaces the database contents with it.
func importRates(input, dbPath string) (int, []error, error) {
	table, warnings, err := rates.Load(input)
	if err != nil {
		return 0, nil, err
	}

	store, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return 0, warnings, err
	}
	defer store.Close()

	stored, err := store.ReplaceRates(table.Records(), filepath.Base(input))
	if err != nil {
		return 0, warnings, err
	}
	return stored, warnings, nil
}
