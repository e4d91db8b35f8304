package spreadsheet

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadCell reads the raw string at an A1-style address on one tab. A missing
// tab, missing address, or empty cell all yield nil: template minor-versions
// legitimately omit optional fields, so an absent cell is a recoverable
// condition rather than an error.
func ReadCell(wb *excelize.File, tab, address string) *string {
	value, err := wb.GetCellValue(tab, address)
	if err != nil {
		return nil
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

// HasTab reports whether the workbook contains a sheet with the given name.
func HasTab(wb *excelize.File, tab string) bool {
	for _, name := range wb.GetSheetList() {
		if name == tab {
			return true
		}
	}
	return false
}
