package spreadsheet

import "github.com/umeldt/darwinsheet/internal/spreadsheet/model"

// Prune removes the columns that have no field name in the header row.
// People add such columns for their own notes and they are not checked. The
// dataset is modified in place and returned.
func Prune(ds *model.Dataset) *model.Dataset {
	var keep []int
	for i, name := range ds.Header {
		if !IsBlank(name) {
			keep = append(keep, i)
		}
	}
	if len(keep) == len(ds.Header) {
		return ds
	}

	header := make([]string, len(keep))
	for j, i := range keep {
		header[j] = ds.Header[i]
	}

	for r, row := range ds.Rows {
		cells := make([]model.Cell, len(keep))
		for j, i := range keep {
			if i < len(row) {
				cells[j] = row[i]
			}
		}
		ds.Rows[r] = cells
	}
	ds.Header = header

	return ds
}
