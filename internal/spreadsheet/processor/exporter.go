// Exporter writes the cleaned sample log back into a workbook laid out the
// way the loader reads it:
//
//	row 1   title
//	row 2   display names of the columns
//	row 3   field names
//	row 4-  one row per event
//
// When the checked file had a Metadata sheet it is written too, with the
// display name in column A, the field name in column B and the value in
// column C. Identifiers come out repaired and numbers as numbers, so the
// exported file checks the same way as the one it came from.

package processor

import (
	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/umeldt/darwinsheet/internal/check"
	"github.com/umeldt/darwinsheet/internal/fields"
	"github.com/umeldt/darwinsheet/internal/spreadsheet"
	"github.com/umeldt/darwinsheet/internal/spreadsheet/model"
)

type Exporter struct {
	// Path of the workbook to write.
	Path string

	// Title goes in the first cell of the Data sheet.
	Title string

	// catalogue supplies the display names for row 2. Columns the
	// catalogue doesn't know keep their field name there.
	catalogue *fields.Catalogue

	fs afero.Fs
}

func NewExporter(path string, cat *fields.Catalogue) *Exporter {
	return &Exporter{
		Path:      path,
		Title:     "Sample log",
		catalogue: cat,
		fs:        afero.NewOsFs(),
	}
}

// WithFs makes the exporter write to fs.
func (e *Exporter) WithFs(fs afero.Fs) *Exporter {
	e.fs = fs
	return e
}

// Apply writes the cleaned dataset of result.
func (e *Exporter) Apply(result *check.Result) error {
	if result.Cleaned == nil {
		return errors.New("nothing to export, the result has no cleaned data")
	}

	xlsx := e.Workbook(result.Cleaned, result.Metadata)
	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return errors.Wrapf(err, "unable to write %s", e.Path)
	}

	if err := afero.WriteFile(e.fs, e.Path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "unable to write %s", e.Path)
	}
	return nil
}

// Workbook builds the workbook for a dataset and its optional metadata.
func (e *Exporter) Workbook(ds *model.Dataset, meta *model.MetaTable) *excelize.File {
	xlsx := excelize.NewFile()
	xlsx.SetSheetName("Sheet1", spreadsheet.DataSheet)
	e.writeData(xlsx, ds)

	if meta != nil {
		xlsx.NewSheet(spreadsheet.MetadataSheet)
		e.writeMetadata(xlsx, meta)
	}

	xlsx.SetActiveSheet(xlsx.GetSheetIndex(spreadsheet.DataSheet))
	return xlsx
}

func (e *Exporter) writeData(xlsx *excelize.File, ds *model.Dataset) {
	sheet := spreadsheet.DataSheet
	xlsx.SetCellValue(sheet, "A1", e.Title)

	for col, name := range ds.Header {
		xlsx.SetCellValue(sheet, spreadsheet.CellName(col+1, spreadsheet.DefaultHeaderRow-1), e.displayName(name))
		xlsx.SetCellValue(sheet, spreadsheet.CellName(col+1, spreadsheet.DefaultHeaderRow), name)
	}

	for i, row := range ds.Rows {
		for col, cell := range row {
			if v, ok := cellValue(cell); ok {
				xlsx.SetCellValue(sheet, spreadsheet.CellName(col+1, spreadsheet.DefaultHeaderRow+1+i), v)
			}
		}
	}
}

func (e *Exporter) writeMetadata(xlsx *excelize.File, meta *model.MetaTable) {
	sheet := spreadsheet.MetadataSheet
	for i, row := range meta.Rows {
		r := i + 1
		xlsx.SetCellValue(sheet, spreadsheet.CellName(1, r), e.displayName(row.Key))
		xlsx.SetCellValue(sheet, spreadsheet.CellName(2, r), row.Key)
		if v, ok := cellValue(row.Value); ok {
			xlsx.SetCellValue(sheet, spreadsheet.CellName(3, r), v)
		}
	}
}

func (e *Exporter) displayName(name string) string {
	if e.catalogue != nil {
		if f, ok := e.catalogue.Lookup(name); ok && f.DisplayName != "" {
			return f.DisplayName
		}
	}
	return name
}

// cellValue returns what to store for a cell. Dates and times are written
// as text in the layouts the loader reads back.
func cellValue(c model.Cell) (interface{}, bool) {
	switch c.Kind {
	case model.Empty:
		return nil, false
	case model.Number:
		if c.Int {
			return int64(c.Number), true
		}
		return c.Number, true
	case model.Date:
		return model.DateCell(c.Time).Raw, true
	}
	return c.String(), true
}
