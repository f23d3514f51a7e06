package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage punchsheet configuration file values.",
	Long: `Create, edit, display, and delete the punchsheet configuration file.

The configuration stores application-wide values:
- rates.path
- sites.a / sites.b (name + aliases) and sites.other
- punch.mapper / punch.default_location
- pay.new_hire_days / pay.skip_extras_in_january / pay.withholding_percent
- workbook.placeholder / workbook.currency_format`,
	Example: `
  # Create default config in $HOME/.punchsheet.yaml
  punchsheet config create

  # Show active config and source file
  punchsheet config show

  # Open active config in editor (creates example if missing)
  punchsheet config edit

  # Delete active config file
  punchsheet config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
