/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"punchsheet/config"
	"punchsheet/log"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "punchsheet [input output]",
	Short: "Turn a week of timeclock punches into per-employee timesheet workbooks.",
	Long: `
**********************************************
*               PUNCHSHEET                   *
**********************************************

This CLI reads a timeclock punch export (CSV or Excel), looks up each employee's
hourly rate, and writes one Excel workbook with a Summary sheet plus one timesheet
sheet per employee for the week named in the input file (MM-DD-YYYY = week end).

Supported input formats:
- Excel: .xlsx, .xlsm
- CSV: .csv (UTF-8, UTF-8 with BOM, UTF-16 with BOM)
`,
	Example: `
  # Create configuration file
  punchsheet config create

  # Convert a week of punches (rates from ../timesheet-rates.csv)
  punchsheet punches/shift-01-07-2024.csv timesheets.xlsx

  # Same, with an explicit rates file
  punchsheet convert punches/shift-01-07-2024.csv timesheets.xlsx --rates ./rates.csv

  # Store a rates table in SQLite and convert against it
  punchsheet rates import -i ./timesheet-rates.csv --db ./rates.db
  punchsheet convert shift.csv timesheets.xlsx --rates ./rates.db --week-ending 2024-01-07
`,
	Args: validateRootArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger := log.New("punchsheet")
		if verbose {
			logger = log.NewVerbose("punchsheet")
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(log.IntoContext(ctx, logger))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runConvert(cmd.Context(), args[0], args[1])
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.punchsheet.yaml, then ./.punchsheet.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	addConvertFlags(rootCmd)
}

// validateRootArgs accepts no arguments (help) or an input and output path.
func validateRootArgs(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0, 2:
		return nil
	default:
		return fmt.Errorf("expected <input> <output>, got %d argument(s)", len(args))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".punchsheet" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".punchsheet")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil && verbose {
		fmt.Fprintln(os.Stderr, "No config file found, using defaults. Create one with: punchsheet config create")
	}
}
