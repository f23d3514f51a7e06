package timesheet

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Location is the bucket a punch's location tag is normalized into.
type Location int

const (
	SiteA Location = iota
	SiteB
	Other
)

// LocationCount is the number of buckets in every day of the grid.
const LocationCount = 3

// Locations lists the buckets in rendering order.
func Locations() []Location {
	return []Location{SiteA, SiteB, Other}
}

func (l Location) String() string {
	switch l {
	case SiteA:
		return "SiteA"
	case SiteB:
		return "SiteB"
	default:
		return "Other"
	}
}

// Punch is one worked interval, or pre-computed daily hours, for one
// employee on one date at one location.
type Punch struct {
	EmployeeID   string
	EmployeeName string
	Date         time.Time
	Location     Location
	Hours        decimal.Decimal
	// In and Out are zero when the source row carried explicit hours.
	In  time.Time
	Out time.Time
	Row int
}

type Site struct {
	Name    string
	Aliases []string
}

// Sites names the two fixed sites and the catch-all bucket.
type Sites struct {
	A         Site
	B         Site
	OtherName string
}

func DefaultSites() Sites {
	return Sites{
		A:         Site{Name: "Site A", Aliases: []string{"a"}},
		B:         Site{Name: "Site B", Aliases: []string{"b"}},
		OtherName: "Other",
	}
}

// Normalize maps a raw location tag to its bucket. Unknown and empty
// tags land in Other.
func (s Sites) Normalize(tag string) Location {
	key := NormalizeKey(tag)
	if key == "" {
		return Other
	}
	if s.A.matches(key) {
		return SiteA
	}
	if s.B.matches(key) {
		return SiteB
	}
	return Other
}

// ParseLocation resolves a configured default location, accepting the
// bucket identifiers as well as site names and aliases.
func (s Sites) ParseLocation(value string) (Location, bool) {
	key := NormalizeKey(value)
	switch {
	case key == "":
		return Other, false
	case key == "sitea" || s.A.matches(key):
		return SiteA, true
	case key == "siteb" || s.B.matches(key):
		return SiteB, true
	case key == "other" || key == NormalizeKey(s.OtherName):
		return Other, true
	}
	return Other, false
}

func (s Sites) Label(l Location) string {
	switch l {
	case SiteA:
		return s.A.Name
	case SiteB:
		return s.B.Name
	default:
		if strings.TrimSpace(s.OtherName) == "" {
			return "Other"
		}
		return s.OtherName
	}
}

func (s Site) matches(key string) bool {
	if NormalizeKey(s.Name) == key {
		return true
	}
	for _, alias := range s.Aliases {
		if NormalizeKey(alias) == key {
			return true
		}
	}
	return false
}

// NormalizeKey lowercases and drops spaces, dashes and underscores so
// "Site A", "site_a" and "SITE-A" compare equal.
func NormalizeKey(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}
