package importer

import (
	"fmt"

	"punchsheet/timesheet"
)

type Mapper interface {
	Name() string
	Map(record Record) (*timesheet.Punch, bool, error)
}

// Flusher is implemented by mappers that pair rows and only emit punches
// once every row has been seen.
type Flusher interface {
	Flush() ([]timesheet.Punch, []error)
}

// MapperOptions is shared by all mappers.
type MapperOptions struct {
	Sites timesheet.Sites
	// DefaultLocation is used when the file has no location column.
	DefaultLocation timesheet.Location
}

const (
	MapperAuto       = "auto"
	MapperHours      = "hours"
	MapperAttendance = "attendance"
)

func SupportedMapperNames() []string {
	return []string{MapperAuto, MapperHours, MapperAttendance}
}

func MapperByName(name string, options MapperOptions) (Mapper, error) {
	switch normalizeHeader(name) {
	case MapperHours:
		return &HoursMapper{options: options}, nil
	case MapperAttendance:
		return NewAttendanceMapper(options), nil
	default:
		return nil, fmt.Errorf("unsupported mapper: %s", name)
	}
}

// DetectMapperName picks the attendance mapper for raw clock-event exports
// and the hours mapper for everything else.
func DetectMapperName(records []Record) string {
	if len(records) > 0 && records[0].Has("attendancerecord", "attendance", "punchtime") {
		return MapperAttendance
	}
	return MapperHours
}

var (
	employeeIDKeys   = []string{"id", "employeeid", "personid", "employee", "empid"}
	employeeNameKeys = []string{"name", "personname", "employeename"}
	dateKeys         = []string{"date", "punchdate", "workdate", "day"}
	locationKeys     = []string{"location", "site", "locationtag"}
)

func (o MapperOptions) location(record Record) timesheet.Location {
	if !record.Has(locationKeys...) {
		return o.DefaultLocation
	}
	return o.Sites.Normalize(record.Get(locationKeys...))
}
