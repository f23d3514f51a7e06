package importer

import (
	"errors"
	"fmt"
	"iter"
	"path/filepath"
	"strings"

	"punchsheet/timesheet"
)

type Result struct {
	MapperName  string
	RowsRead    int
	RowsMapped  int
	RowsSkipped int
	Punches     []timesheet.Punch
	// Warnings holds skipped rows (*timesheet.MalformedRowError) and
	// data-quality notes; none of them stop a run.
	Warnings []error
}

type Options struct {
	// Format is csv or excel; empty infers it from the file extension.
	Format string
	// Mapper is auto, hours or attendance; empty means auto.
	Mapper  string
	Mapping MapperOptions
}

// Run reads one punch file. Only file-level failures are returned as
// errors; row problems end up in Result.Warnings.
func Run(path string, options Options) (*Result, error) {
	sourceFormat, err := inferFormat(path, options.Format)
	if err != nil {
		return nil, err
	}
	reader, err := ReaderForFormat(sourceFormat)
	if err != nil {
		return nil, err
	}

	records, err := reader.Read(path)
	if err != nil {
		return nil, err
	}

	mapperName := strings.TrimSpace(options.Mapper)
	if mapperName == "" || normalizeHeader(mapperName) == MapperAuto {
		mapperName = DetectMapperName(records)
	}
	mapper, err := MapperByName(mapperName, options.Mapping)
	if err != nil {
		return nil, err
	}

	result := &Result{
		MapperName: mapper.Name(),
		RowsRead:   len(records),
		Punches:    make([]timesheet.Punch, 0, len(records)),
	}
	for punch, err := range Parse(records, mapper) {
		if err != nil {
			var malformed *timesheet.MalformedRowError
			if errors.As(err, &malformed) {
				result.RowsSkipped++
			}
			result.Warnings = append(result.Warnings, err)
			continue
		}
		result.RowsMapped++
		result.Punches = append(result.Punches, punch)
	}

	return result, nil
}

// Parse lazily maps records to punches. A row that cannot be mapped yields
// a *timesheet.MalformedRowError in place of a punch and parsing goes on.
func Parse(records []Record, mapper Mapper) iter.Seq2[timesheet.Punch, error] {
	return func(yield func(timesheet.Punch, error) bool) {
		for _, record := range records {
			if record.Err != nil {
				if !yield(timesheet.Punch{}, &timesheet.MalformedRowError{Row: record.RowNumber, Err: record.Err}) {
					return
				}
				continue
			}
			punch, ok, err := mapper.Map(record)
			if err != nil {
				if !yield(timesheet.Punch{}, &timesheet.MalformedRowError{Row: record.RowNumber, Err: err}) {
					return
				}
				continue
			}
			if !ok || punch == nil {
				continue
			}
			if !yield(*punch, nil) {
				return
			}
		}

		flusher, ok := mapper.(Flusher)
		if !ok {
			return
		}
		punches, warnings := flusher.Flush()
		for _, warning := range warnings {
			if !yield(timesheet.Punch{}, warning) {
				return
			}
		}
		for _, punch := range punches {
			if !yield(punch, nil) {
				return
			}
		}
	}
}

func inferFormat(path string, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return format, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "csv", "txt":
		return "csv", nil
	case "xlsx", "xlsm":
		return "excel", nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s", path)
	}
}
