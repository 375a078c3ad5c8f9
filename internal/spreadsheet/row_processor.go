package spreadsheet

import (
	"strings"

	"github.com/umeldt/darwinsheet/internal/spreadsheet/model"
)

// rowProcessor handles processing of each row of a worksheet
type rowProcessor struct {
	// dataset is the dataset the Data worksheet is loaded into
	dataset *model.Dataset

	// converter is used to convert cells that aren't blank into their
	// relevant kind (number, date, time or text)
	converter *cellConverter
}

func newRowProcessor(worksheetName string, headerRow int) *rowProcessor {
	return &rowProcessor{
		dataset: &model.Dataset{
			Sheet:     worksheetName,
			HeaderRow: headerRow,
		},
		converter: newCellConverter(),
	}
}

// processHeaderRow processes the header row of the Data worksheet. This row
// contains the field names. Cells that are blank, or hold one of the blank
// keywords, are kept as an empty name so that column positions line up with
// the data rows. Prune removes them afterwards.
func (r *rowProcessor) processHeaderRow(row []string) {
	r.dataset.Header = make([]string, len(row))
	for column, colCell := range row {
		if IsBlank(colCell) {
			continue
		}
		r.dataset.Header[column] = strings.TrimSpace(colCell)
	}
}

// processDataRow processes a row below the header. Every row is kept, even
// one that is entirely blank, so that data row i is always spreadsheet row
// HeaderRow+1+i. The row is padded or cut to the width of the header.
func (r *rowProcessor) processDataRow(row []string) {
	cells := make([]model.Cell, len(r.dataset.Header))
	for column := range cells {
		if column >= len(row) {
			cells[column] = model.EmptyCell()
			continue
		}
		cells[column] = r.converter.cellToValue(row[column])
	}
	r.dataset.Rows = append(r.dataset.Rows, cells)
}

// trimTrailingBlankRows drops the blank rows the worksheet reader returns
// after the last row holding data.
func (r *rowProcessor) trimTrailingBlankRows() {
	rows := r.dataset.Rows
	for len(rows) > 0 && isBlankRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	r.dataset.Rows = rows
}

func isBlankRow(row []model.Cell) bool {
	for _, c := range row {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
