package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"punchsheet/config"
)

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by punchsheet.

If no configuration file is active, the command returns an error. After deletion the
built-in defaults apply; the command prints the rates location and site mapping they use.`,
	Example: `
  # Delete active config
  punchsheet config delete

  # Delete config at a custom path
  punchsheet --configFile ./custom-punchsheet.yaml config delete
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := viper.ConfigFileUsed()
		if configPath == "" {
			return fmt.Errorf("no configuration file found")
		}

		if err := os.Remove(configPath); err != nil {
			return fmt.Errorf("error deleting configuration file: %w", err)
		}

		fmt.Printf("Configuration file successfully deleted: %s\n", configPath)
		fmt.Println("Defaults now apply:")
		describeConfig(os.Stdout, config.Default())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}
