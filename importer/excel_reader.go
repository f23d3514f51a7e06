package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"punchsheet/internal/xlsxutil"
)

// ExcelReader reads punches from a workbook. Sheet selects the worksheet;
// empty means the first one. Date and time cells arrive in ISO layout.
type ExcelReader struct {
	Sheet string
}

func (r *ExcelReader) Read(path string) ([]Record, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open excel file %s: %w", path, err)
	}
	defer file.Close()

	sheetName, rows, err := xlsxutil.ReadSheet(file, r.Sheet)
	if err != nil {
		return nil, fmt.Errorf("excel file %s: %w", path, err)
	}

	var (
		headers []string
		records = make([]Record, 0, len(rows))
	)
	for i, columns := range rows {
		if len(columns) == 0 {
			continue
		}
		if headers == nil {
			headers = normalizeHeaders(columns)
			continue
		}
		records = append(records, newRecord(i+1, headers, columns))
	}
	if headers == nil {
		return nil, fmt.Errorf("sheet %s is empty", sheetName)
	}

	return records, nil
}
