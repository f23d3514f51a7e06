package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Create a new configuration file from the same example template used by "config edit".

If a configuration file is already in use, no new file is written. In both cases the
command prints where convert will look for the rates table and how location tags map
to the Site A, Site B and Other sections.`,
	Example: `
  # Create default config at $HOME/.punchsheet.yaml
  punchsheet config create
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveDefaultConfig(os.Stdout)
	},
}

func saveDefaultConfig(out io.Writer) error {
	configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	created, err := ensureConfigFileWithTemplate(configPath)
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(out, "New config file created at: %s\n", configPath)
	} else {
		fmt.Fprintf(out, "Config file already exists at: %s\n", configPath)
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return err
	}
	describeConfig(out, cfg)
	return nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)
}
