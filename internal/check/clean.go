package check

import (
	"strings"

	"github.com/umeldt/darwinsheet/internal/spreadsheet/model"
)

// Clean fixes up a dataset before it is checked, in place. Identifier
// columns get the barcode reader characters repaired. In every other column
// text that reads as a number after normalization becomes a number cell, so
// "2,5" typed on a machine with a comma locale counts as 2.5.
func Clean(ds *model.Dataset) *model.Dataset {
	for col, name := range ds.Header {
		identifier := IsIdentifierField(name)
		for _, row := range ds.Rows {
			if col >= len(row) {
				continue
			}
			c := row[col]
			if c.Kind != model.Text || IsEmpty(c) {
				continue
			}

			if identifier {
				row[col] = model.TextCell(RepairIdentifier(strings.TrimSpace(c.Raw)))
				continue
			}
			if n, err := parseNumber(c.Raw); err == nil {
				row[col] = model.NumberCell(c.Raw, n.Value, n.IsInt)
			}
		}
	}
	return ds
}
