package spreadsheet

/*
 * keywords contains the cell values that are treated as if the cell was
 * empty. Sample logs are often written by tools that export missing numbers
 * as nan and missing timestamps as NaT, so a cell holding either of these is
 * the same as a blank cell.
 */

import (
	"strings"
)

// Default set of cell values that are treated as a blank cell
var BlankCellKeywords = map[string]bool{
	"nan": true,
	"nat": true,
}

// IsBlank returns true if the cell should be treated as blank by checking
// if the trimmed cell is equal to "", or if the lower case value of the
// cell is in the list of "blank" keywords.
func IsBlank(cell string) bool {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return true
	}

	_, ok := BlankCellKeywords[strings.ToLower(trimmed)]
	return ok
}
