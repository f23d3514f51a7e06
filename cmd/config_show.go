package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"punchsheet/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. Without a config
file the built-in defaults are shown.`,
	Example: `
  # Show active configuration
  punchsheet config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file loaded; showing defaults.")
		}
		fmt.Println("Configuration:")
		fmt.Printf("rates.path: %s\n", cfg.Rates.Path)
		fmt.Printf("sites.a.name: %s\n", cfg.Sites.A.Name)
		fmt.Printf("sites.a.aliases: %s\n", strings.Join(cfg.Sites.A.Aliases, ", "))
		fmt.Printf("sites.b.name: %s\n", cfg.Sites.B.Name)
		fmt.Printf("sites.b.aliases: %s\n", strings.Join(cfg.Sites.B.Aliases, ", "))
		fmt.Printf("sites.other: %s\n", cfg.Sites.Other)
		fmt.Printf("punch.mapper: %s\n", cfg.Punch.Mapper)
		fmt.Printf("punch.default_location: %s\n", cfg.Punch.DefaultLocation)
		fmt.Printf("pay.new_hire_days: %d\n", cfg.Pay.NewHireDays)
		fmt.Printf("pay.skip_extras_in_january: %t\n", cfg.Pay.SkipExtrasInJanuary)
		fmt.Printf("pay.withholding_percent: %g\n", cfg.Pay.WithholdingPercent)
		fmt.Printf("workbook.placeholder: %q\n", cfg.Workbook.Placeholder)
		fmt.Printf("workbook.currency_format: %s\n", cfg.Workbook.CurrencyFormat)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
