package output

import (
	"fmt"
	"strings"
)

// maxSheetName is Excel's limit on worksheet names, in characters.
const maxSheetName = 31

var sheetNameReplacer = strings.NewReplacer(
	":", "", "\\", "", "/", "", "?", "", "*", "", "[", "", "]", "",
)

// SheetName renders "<id> - <name>" (or just the id) as a valid Excel
// worksheet name.
func SheetName(employeeID, name string) string {
	title := strings.TrimSpace(employeeID)
	if name = strings.TrimSpace(name); name != "" {
		title = title + " - " + name
	}
	title = strings.Trim(sheetNameReplacer.Replace(title), "' ")
	if title == "" {
		title = "Employee"
	}
	return truncateRunes(title, maxSheetName)
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimRight(string(runes[:limit]), " ")
}

// sheetNamer hands out unique sheet names. Excel compares names without
// regard to case.
type sheetNamer struct {
	used map[string]bool
}

func newSheetNamer(reserved ...string) *sheetNamer {
	namer := &sheetNamer{used: make(map[string]bool)}
	for _, name := range reserved {
		namer.used[strings.ToLower(name)] = true
	}
	return namer
}

func (n *sheetNamer) next(employeeID, name string) string {
	base := SheetName(employeeID, name)
	candidate := base
	for i := 2; n.used[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate = truncateRunes(base, maxSheetName-len(suffix)) + suffix
	}
	n.used[strings.ToLower(candidate)] = true
	return candidate
}
