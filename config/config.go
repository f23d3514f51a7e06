package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"punchsheet/importer"
	"punchsheet/timesheet"
)

const (
	KeyRatesPath              = "rates.path"
	KeySiteAName              = "sites.a.name"
	KeySiteAAliases           = "sites.a.aliases"
	KeySiteBName              = "sites.b.name"
	KeySiteBAliases           = "sites.b.aliases"
	KeySitesOther             = "sites.other"
	KeyPunchMapper            = "punch.mapper"
	KeyPunchDefaultLocation   = "punch.default_location"
	KeyPayNewHireDays         = "pay.new_hire_days"
	KeyPaySkipExtrasInJanuary = "pay.skip_extras_in_january"
	KeyPayWithholdingPercent  = "pay.withholding_percent"
	KeyWorkbookPlaceholder    = "workbook.placeholder"
	KeyWorkbookCurrencyFormat = "workbook.currency_format"
)

type Config struct {
	Rates    RatesConfig    `mapstructure:"rates"`
	Sites    SitesConfig    `mapstructure:"sites" validate:"required"`
	Punch    PunchConfig    `mapstructure:"punch"`
	Pay      PayConfig      `mapstructure:"pay"`
	Workbook WorkbookConfig `mapstructure:"workbook"`
}

type RatesConfig struct {
	// Path overrides the timesheet-rates.csv lookup next to the input folder.
	Path string `mapstructure:"path"`
}

type SitesConfig struct {
	A     SiteConfig `mapstructure:"a" validate:"required"`
	B     SiteConfig `mapstructure:"b" validate:"required"`
	Other string     `mapstructure:"other" validate:"required"`
}

type SiteConfig struct {
	Name    string   `mapstructure:"name" validate:"required"`
	Aliases []string `mapstructure:"aliases"`
}

type PunchConfig struct {
	Mapper          string `mapstructure:"mapper"`
	DefaultLocation string `mapstructure:"default_location"`
}

type PayConfig struct {
	NewHireDays         int     `mapstructure:"new_hire_days" validate:"gte=0"`
	SkipExtrasInJanuary bool    `mapstructure:"skip_extras_in_january"`
	WithholdingPercent  float64 `mapstructure:"withholding_percent" validate:"gte=0,lte=100"`
}

type WorkbookConfig struct {
	Placeholder    string `mapstructure:"placeholder" validate:"required"`
	CurrencyFormat string `mapstructure:"currency_format" validate:"required"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	local := viper.New()
	setDefaults(local)
	cfg, err := loadAndValidateFromViper(local)
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return cfg
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# punchsheet configuration
rates:
  # Empty means timesheet-rates.csv in the parent folder of the punch file.
  path: ""

sites:
  a:
    name: "Site A"
    aliases: ["a"]
  b:
    name: "Site B"
    aliases: ["b"]
  other: "Other"

punch:
  mapper: "auto"
  default_location: "other"

pay:
  new_hire_days: 28
  skip_extras_in_january: true
  withholding_percent: 0

workbook:
  placeholder: "-"
  currency_format: "$#,##0.00"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateSites(cfg.Sites); err != nil {
		return nil, err
	}
	if err := validatePunch(cfg.Punch, cfg.SiteSet()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Workbook.Placeholder) == "" {
		return nil, fmt.Errorf("validation failed: workbook.placeholder must be visible text")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyRatesPath, "")
	v.SetDefault(KeySiteAName, "Site A")
	v.SetDefault(KeySiteAAliases, []string{"a"})
	v.SetDefault(KeySiteBName, "Site B")
	v.SetDefault(KeySiteBAliases, []string{"b"})
	v.SetDefault(KeySitesOther, "Other")
	v.SetDefault(KeyPunchMapper, importer.MapperAuto)
	v.SetDefault(KeyPunchDefaultLocation, "other")
	v.SetDefault(KeyPayNewHireDays, 28)
	v.SetDefault(KeyPaySkipExtrasInJanuary, true)
	v.SetDefault(KeyPayWithholdingPercent, 0)
	v.SetDefault(KeyWorkbookPlaceholder, "-")
	v.SetDefault(KeyWorkbookCurrencyFormat, "$#,##0.00")
}

func validateSites(sites SitesConfig) error {
	owner := make(map[string]string)
	claim := func(site, value string) error {
		key := timesheet.NormalizeKey(value)
		if key == "" {
			return nil
		}
		if previous, exists := owner[key]; exists && previous != site {
			return fmt.Errorf("validation failed: %q is used by both %s and %s", value, previous, site)
		}
		owner[key] = site
		return nil
	}

	for _, entry := range []struct {
		site string
		cfg  SiteConfig
	}{{"sites.a", sites.A}, {"sites.b", sites.B}} {
		if err := claim(entry.site, entry.cfg.Name); err != nil {
			return err
		}
		for _, alias := range entry.cfg.Aliases {
			if err := claim(entry.site, alias); err != nil {
				return err
			}
		}
	}
	if err := claim("sites.other", sites.Other); err != nil {
		return err
	}
	return nil
}

func validatePunch(punch PunchConfig, sites timesheet.Sites) error {
	mapper := strings.ToLower(strings.TrimSpace(punch.Mapper))
	if mapper != "" {
		supported := importer.SupportedMapperNames()
		valid := false
		for _, name := range supported {
			if name == mapper {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf(
				"validation failed: punch.mapper %q is not supported (valid: %s)",
				punch.Mapper,
				strings.Join(supported, ", "),
			)
		}
	}
	if _, ok := sites.ParseLocation(punch.DefaultLocation); !ok && strings.TrimSpace(punch.DefaultLocation) != "" {
		return fmt.Errorf("validation failed: punch.default_location %q does not name a site", punch.DefaultLocation)
	}
	return nil
}

// SiteSet converts the sites section for the importer and workbook.
func (c *Config) SiteSet() timesheet.Sites {
	return timesheet.Sites{
		A:         timesheet.Site{Name: strings.TrimSpace(c.Sites.A.Name), Aliases: c.Sites.A.Aliases},
		B:         timesheet.Site{Name: strings.TrimSpace(c.Sites.B.Name), Aliases: c.Sites.B.Aliases},
		OtherName: strings.TrimSpace(c.Sites.Other),
	}
}

// DefaultLocation is the bucket for punch files without a location column.
func (c *Config) DefaultLocation() timesheet.Location {
	location, ok := c.SiteSet().ParseLocation(c.Punch.DefaultLocation)
	if !ok {
		return timesheet.Other
	}
	return location
}

func (c *Config) PayPolicy() timesheet.PayPolicy {
	return timesheet.PayPolicy{
		NewHireDays:         c.Pay.NewHireDays,
		SkipExtrasInJanuary: c.Pay.SkipExtrasInJanuary,
		WithholdingPercent:  decimal.NewFromFloat(c.Pay.WithholdingPercent),
	}
}
