package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/umeldt/darwinsheet/internal/spreadsheet/model"
)

const (
	// DefaultHeaderRow is the row holding the field names. Row 1 is a title
	// and row 2 the display names.
	DefaultHeaderRow = 3

	DataSheet     = "Data"
	MetadataSheet = "Metadata"
)

// MissingSheetError is returned when the workbook does not have a worksheet
// that has to be there. Its message is meant for the person who uploaded
// the file.
type MissingSheetError struct {
	Sheet string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("Does not contain the '%s' sheet. Is this the correct file?", e.Sheet)
}

// AsMissingSheet returns the MissingSheetError behind err, if there is one.
func AsMissingSheet(err error) (*MissingSheetError, bool) {
	e, ok := errors.Cause(err).(*MissingSheetError)
	return e, ok
}

// Loader reads sample log workbooks.
type Loader struct {
	// HeaderRow is the 1-based row holding the field names on the Data sheet.
	HeaderRow int

	DataSheet     string
	MetadataSheet string

	fs afero.Fs
}

func NewLoader(headerRow int) *Loader {
	if headerRow < 1 {
		headerRow = DefaultHeaderRow
	}
	return &Loader{
		HeaderRow:     headerRow,
		DataSheet:     DataSheet,
		MetadataSheet: MetadataSheet,
		fs:            afero.NewOsFs(),
	}
}

// WithFs makes the loader open files on fs instead of the operating system
// file system.
func (l *Loader) WithFs(fs afero.Fs) *Loader {
	l.fs = fs
	return l
}

// Load will load the given excel file. See LoadReader.
func (l *Loader) Load(path string) (*model.Workbook, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer f.Close()

	wb, err := l.LoadReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load %s", path)
	}
	return wb, nil
}

// LoadReader reads a workbook. The Data worksheet has to be there and is
// turned into a model.Dataset, see model.Dataset for the layout. The Metadata
// worksheet is optional: when present its key/value pairs are read from
// columns B and C. Whether a missing Metadata worksheet is a problem is up
// to the caller.
func (l *Loader) LoadReader(r io.Reader) (*model.Workbook, error) {
	xlsx, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "not a readable xlsx workbook")
	}

	if !hasSheet(xlsx, l.DataSheet) {
		return nil, &MissingSheetError{Sheet: l.DataSheet}
	}

	wb := &model.Workbook{Data: l.loadDataset(xlsx)}
	if hasSheet(xlsx, l.MetadataSheet) {
		wb.Metadata = l.loadMetadata(xlsx)
	}

	return wb, nil
}

// loadDataset skips the rows above the header, reads the header and then
// every row below it.
func (l *Loader) loadDataset(xlsx *excelize.File) *model.Dataset {
	rows := xlsx.GetRows(l.DataSheet)
	rowProcessor := newRowProcessor(l.DataSheet, l.HeaderRow)

	headerIndex := l.HeaderRow - 1
	if headerIndex >= len(rows) {
		rowProcessor.processHeaderRow(nil)
		return rowProcessor.dataset
	}

	rowProcessor.processHeaderRow(rows[headerIndex])
	for _, row := range rows[headerIndex+1:] {
		rowProcessor.processDataRow(row)
	}
	rowProcessor.trimTrailingBlankRows()

	return rowProcessor.dataset
}

// loadMetadata reads the Metadata worksheet. Column A holds descriptions for
// people, column B the field name and column C its value.
func (l *Loader) loadMetadata(xlsx *excelize.File) *model.MetaTable {
	converter := newCellConverter()
	meta := &model.MetaTable{Sheet: l.MetadataSheet}

	for i, row := range xlsx.GetRows(l.MetadataSheet) {
		if len(row) < 2 || IsBlank(row[1]) {
			continue
		}
		value := model.EmptyCell()
		if len(row) > 2 {
			value = converter.cellToValue(row[2])
		}
		meta.Rows = append(meta.Rows, model.MetaRow{
			Row:   i + 1,
			Key:   strings.TrimSpace(row[1]),
			Value: value,
		})
	}

	return meta
}

func hasSheet(xlsx *excelize.File, name string) bool {
	for _, sheet := range xlsx.GetSheetMap() {
		if sheet == name {
			return true
		}
	}
	return false
}
