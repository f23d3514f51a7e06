package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"punchsheet/config"
	"punchsheet/convert"
	"punchsheet/timesheet"
)

// examplePunchFile is only used to show where the default rates lookup lands.
var examplePunchFile = filepath.Join("week-01", "shift-01-07-2024.csv")

// loadConfigFile validates the YAML at path and returns the resulting config.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config failed: %w", err)
	}
	cfg, err := config.ValidateYAMLContent(content)
	if err != nil {
		return nil, fmt.Errorf("config validation failed in %s: %w", path, err)
	}
	return cfg, nil
}

// describeConfig prints how convert will use cfg: where rates come from and
// which location tags land in which section.
func describeConfig(w io.Writer, cfg *config.Config) {
	if strings.TrimSpace(cfg.Rates.Path) != "" {
		fmt.Fprintf(w, "Rates table: %s\n", convert.ResolveRatesPath("", cfg, examplePunchFile))
	} else {
		fmt.Fprintf(w, "Rates table: %s in the parent of each punch folder (for %s: %s)\n",
			convert.DefaultRatesFile,
			examplePunchFile,
			convert.ResolveRatesPath("", cfg, examplePunchFile),
		)
	}

	sites := cfg.SiteSet()
	fmt.Fprintln(w, "Location tags:")
	for _, site := range []timesheet.Site{sites.A, sites.B} {
		tags := append([]string{site.Name}, site.Aliases...)
		fmt.Fprintf(w, "  %s <- %s\n", site.Name, strings.Join(tags, ", "))
	}
	fmt.Fprintf(w, "  %s <- any other tag\n", sites.Label(timesheet.Other))
	fmt.Fprintf(w, "Untagged punches go to: %s\n", sites.Label(cfg.DefaultLocation()))
}
