// Package xlsxutil reads worksheet cells as text without losing dates to
// the workbook's display format.
package xlsxutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"punchsheet/internal/timeutil"
)

const (
	clockLayout    = "15:04:05"
	dateTimeLayout = timeutil.DateLayout + " " + clockLayout
)

type cellKind int

const (
	kindText cellKind = iota
	kindDate
)

// ReadSheet returns the rows of sheet, or of the first sheet when sheet is
// empty, together with the resolved sheet name. Numeric cells carrying a
// date or time number format are rendered as "2006-01-02",
// "15:04:05" or "2006-01-02 15:04:05"; every other cell keeps its
// displayed text.
func ReadSheet(file *excelize.File, sheet string) (string, [][]string, error) {
	if sheet == "" {
		sheet = file.GetSheetName(0)
	}
	if sheet == "" {
		return "", nil, fmt.Errorf("workbook has no sheets")
	}

	raw, err := file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return sheet, nil, fmt.Errorf("read rows from sheet %s: %w", sheet, err)
	}
	formatted, err := file.GetRows(sheet)
	if err != nil {
		return sheet, nil, fmt.Errorf("read rows from sheet %s: %w", sheet, err)
	}

	date1904 := false
	if props, err := file.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	kinds := make(map[int]cellKind)
	rows := make([][]string, len(raw))
	for r, rawRow := range raw {
		row := make([]string, len(rawRow))
		for c, value := range rawRow {
			row[c] = value
			if r < len(formatted) && c < len(formatted[r]) {
				row[c] = formatted[r][c]
			}

			serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil || serial < 0 {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return sheet, nil, err
			}
			kind, err := styleKind(file, sheet, cell, kinds)
			if err != nil {
				return sheet, nil, err
			}
			if kind != kindDate {
				continue
			}
			if rendered, ok := renderSerial(serial, date1904); ok {
				row[c] = rendered
			}
		}
		rows[r] = row
	}
	return sheet, rows, nil
}

func styleKind(file *excelize.File, sheet, cell string, cache map[int]cellKind) (cellKind, error) {
	styleID, err := file.GetCellStyle(sheet, cell)
	if err != nil {
		return kindText, fmt.Errorf("read style of %s: %w", cell, err)
	}
	if kind, ok := cache[styleID]; ok {
		return kind, nil
	}

	kind := kindText
	style, err := file.GetStyle(styleID)
	if err == nil && style != nil {
		if style.CustomNumFmt != nil {
			if isDateFormat(*style.CustomNumFmt) {
				kind = kindDate
			}
		} else if isBuiltInDateFormat(style.NumFmt) {
			kind = kindDate
		}
	}
	cache[styleID] = kind
	return kind, nil
}

// isBuiltInDateFormat covers the built-in date and clock formats. The
// elapsed-time formats 45-47 keep their displayed text.
func isBuiltInDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

func isDateFormat(format string) bool {
	format = strings.ToLower(format)
	if strings.Contains(format, "[h") || strings.Contains(format, "[m") || strings.Contains(format, "[s") {
		return false
	}

	var b strings.Builder
	quoted, bracket := false, false
	for i := 0; i < len(format); i++ {
		ch := format[i]
		switch {
		case ch == '"':
			quoted = !quoted
		case quoted:
		case ch == '[':
			bracket = true
		case ch == ']':
			bracket = false
		case bracket:
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		default:
			b.WriteByte(ch)
		}
	}
	return strings.ContainsAny(b.String(), "ydhs")
}

func renderSerial(serial float64, date1904 bool) (string, bool) {
	at, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return "", false
	}
	if serial < 1 {
		return at.Format(clockLayout), true
	}
	if at.Hour() == 0 && at.Minute() == 0 && at.Second() == 0 {
		return at.Format(timeutil.DateLayout), true
	}
	return at.Format(dateTimeLayout), true
}
