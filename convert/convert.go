// Package convert runs one punch file through rates lookup, aggregation and
// workbook output.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"punchsheet/config"
	"punchsheet/importer"
	"punchsheet/log"
	"punchsheet/output"
	"punchsheet/rates"
	"punchsheet/storage"
	"punchsheet/timesheet"
)

// DefaultRatesFile is looked up in the parent folder of the punch file's
// folder when no rates path is configured.
const DefaultRatesFile = "timesheet-rates.csv"

// Week sources reported in Result.WeekSource.
const (
	WeekFromFlag     = "flag"
	WeekFromFilename = "filename"
	WeekFromPunches  = "punches"
)

type Options struct {
	InputPath  string
	OutputPath string
	// RatesPath overrides Config.Rates.Path and the default lookup.
	RatesPath string
	Format    string
	Mapper    string
	// WeekEnding overrides the date taken from the input file name.
	WeekEnding time.Time
	// SummaryCSV, when set, also writes a per-employee CSV summary.
	SummaryCSV string
	Config     *config.Config
}

type Result struct {
	RunID      string
	RatesPath  string
	MapperName string
	Week       timesheet.WeekRange
	WeekSource string

	RowsRead    int
	RowsSkipped int
	Punches     int
	Employees   int
	TotalHours  decimal.Decimal
	TotalPay    decimal.Decimal

	OutputPath string
	OutputSize int64
	Warnings   []error
}

// DefaultRatesPath returns timesheet-rates.csv in the parent directory of
// the input's directory.
func DefaultRatesPath(inputPath string) string {
	absolute, err := filepath.Abs(inputPath)
	if err != nil {
		absolute = inputPath
	}
	return filepath.Join(filepath.Dir(filepath.Dir(absolute)), DefaultRatesFile)
}

// ResolveRatesPath applies flag, then config, then the default lookup.
func ResolveRatesPath(flagValue string, cfg *config.Config, inputPath string) string {
	if path := strings.TrimSpace(flagValue); path != "" {
		return path
	}
	if cfg != nil {
		if path := strings.TrimSpace(cfg.Rates.Path); path != "" {
			return path
		}
	}
	return DefaultRatesPath(inputPath)
}

// LoadRates reads a rates table from CSV, Excel or a SQLite database
// written by "rates import".
func LoadRates(path string) (*rates.Table, []error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		if _, err := os.Stat(path); err != nil {
			return nil, nil, fmt.Errorf("open rates database %s: %w", path, err)
		}
		store, err := storage.OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		defer store.Close()

		records, err := store.ListRates()
		if err != nil {
			return nil, nil, err
		}
		table, warnings := rates.NewTable(records)
		return table, warnings, nil
	default:
		return rates.Load(path)
	}
}

// Run converts one punch file. Returned errors are fatal and leave no
// output behind; everything else is reported in Result.Warnings.
func Run(ctx context.Context, options Options) (*Result, error) {
	cfg := options.Config
	if cfg == nil {
		cfg = config.Default()
	}

	result := &Result{
		RunID:      uuid.NewString(),
		OutputPath: options.OutputPath,
	}
	logger := log.SubLogger(log.FromContext(ctx), "convert").With("run", result.RunID)

	result.RatesPath = ResolveRatesPath(options.RatesPath, cfg, options.InputPath)
	table, rateWarnings, err := LoadRates(result.RatesPath)
	if err != nil {
		return nil, &timesheet.FatalInputError{Op: "load rates", Path: result.RatesPath, Err: err}
	}
	result.Warnings = append(result.Warnings, rateWarnings...)
	logger.Debug("rates loaded", "path", result.RatesPath, "employees", table.Len())

	mapperName := options.Mapper
	if strings.TrimSpace(mapperName) == "" {
		mapperName = cfg.Punch.Mapper
	}
	imported, err := importer.Run(options.InputPath, importer.Options{
		Format: options.Format,
		Mapper: mapperName,
		Mapping: importer.MapperOptions{
			Sites:           cfg.SiteSet(),
			DefaultLocation: cfg.DefaultLocation(),
		},
	})
	if err != nil {
		return nil, &timesheet.FatalInputError{Op: "read punches", Path: options.InputPath, Err: err}
	}
	result.MapperName = imported.MapperName
	result.RowsRead = imported.RowsRead
	result.RowsSkipped = imported.RowsSkipped
	result.Punches = len(imported.Punches)
	result.Warnings = append(result.Warnings, imported.Warnings...)
	logger.Debug("punches parsed", "path", options.InputPath, "mapper", imported.MapperName, "rows", imported.RowsRead, "punches", len(imported.Punches))

	week, source, weekWarning, err := resolveWeek(options, imported.Punches)
	if err != nil {
		return nil, err
	}
	result.Week = week
	result.WeekSource = source
	if weekWarning != nil {
		result.Warnings = append(result.Warnings, weekWarning)
	}

	aggregation := timesheet.Aggregate(imported.Punches, table, week, cfg.PayPolicy())
	result.Warnings = append(result.Warnings, aggregation.Warnings...)
	for _, warning := range result.Warnings {
		logger.Warn(warning.Error())
	}
	if len(aggregation.Employees) == 0 {
		return nil, fmt.Errorf("%s: %w", options.InputPath, timesheet.ErrNoEmployeeData)
	}
	result.Employees = len(aggregation.Employees)
	result.TotalHours, result.TotalPay = aggregation.GrandTotals()

	workbook := output.WorkbookOptions{
		Sites:          cfg.SiteSet(),
		Placeholder:    cfg.Workbook.Placeholder,
		CurrencyFormat: cfg.Workbook.CurrencyFormat,
		RunID:          result.RunID,
		Source:         filepath.Base(options.InputPath),
	}
	if err := writeOutputs(options, aggregation, workbook); err != nil {
		return nil, err
	}
	if info, err := os.Stat(options.OutputPath); err == nil {
		result.OutputSize = info.Size()
	}

	logger.Info("workbook written",
		"path", options.OutputPath,
		"size", humanize.Bytes(uint64(result.OutputSize)),
		"week", week.String(),
		"employees", result.Employees,
		"warnings", len(result.Warnings),
	)
	return result, nil
}

// writeOutputs stages every requested file before any of them replaces its
// target, so a failed run leaves no partial output.
func writeOutputs(options Options, aggregation *timesheet.Aggregation, workbook output.WorkbookOptions) error {
	stagedWorkbook, err := output.StageWorkbook(options.OutputPath, aggregation, workbook)
	if err != nil {
		return err
	}
	defer stagedWorkbook.Discard()

	var stagedCSV *output.Staged
	if options.SummaryCSV != "" {
		stagedCSV, err = output.StageSummaryCSV(options.SummaryCSV, aggregation)
		if err != nil {
			return err
		}
		defer stagedCSV.Discard()
	}

	if err := stagedWorkbook.Commit(); err != nil {
		return err
	}
	if stagedCSV != nil {
		if err := stagedCSV.Commit(); err != nil {
			_ = os.Remove(options.OutputPath)
			return err
		}
	}
	return nil
}

func resolveWeek(options Options, punches []timesheet.Punch) (timesheet.WeekRange, string, *timesheet.DateExtractionFailure, error) {
	if !options.WeekEnding.IsZero() {
		return timesheet.WeekEnding(options.WeekEnding), WeekFromFlag, nil, nil
	}
	if week, ok := timesheet.WeekRangeFromFilename(options.InputPath); ok {
		return week, WeekFromFilename, nil, nil
	}

	var latest time.Time
	for _, punch := range punches {
		if punch.Date.After(latest) {
			latest = punch.Date
		}
	}
	if latest.IsZero() {
		return timesheet.WeekRange{}, "", nil, fmt.Errorf("%s: %w", options.InputPath, timesheet.ErrNoEmployeeData)
	}
	week := timesheet.WeekEnding(latest)
	return week, WeekFromPunches, &timesheet.DateExtractionFailure{Name: filepath.Base(options.InputPath), Fallback: week}, nil
}

// IsFatal reports whether err stopped a run before any output was written.
func IsFatal(err error) bool {
	var fatal *timesheet.FatalInputError
	return errors.As(err, &fatal) || errors.Is(err, timesheet.ErrNoEmployeeData)
}
