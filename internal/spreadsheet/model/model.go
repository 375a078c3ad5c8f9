package model

// Dataset represents the Data worksheet of a sample log. The worksheet
// has a few rows on top meant for people (a title and the display names
// of the columns), then the header row that holds the field names the
// checker understands, and after that one row per sample or event.
//
// For example, with HeaderRow set to 3:
//
//	      A             B                    C            D
//	1 |Sample log   |                    |            |
//	2 |Event ID     |Parent event UUID   |Date        |Bottom Depth (m)|
//	3 |eventID      |parentEventID       |eventDate   |bottomDepthInMeters|
//	4 |8c1e...-...  |                    |2019-02-10  |312             |
//	5 |41b3...-...  |8c1e...-...         |            |                |
//
// Header holds the field names from row 3 and Rows holds the cells from
// row 4 onwards. Row 5 is a child of row 4: it leaves the date and depth
// empty because it inherits them from its parent event.
//
// Row numbers used in reports are spreadsheet row numbers so users can find
// the cell. RowNumber converts a data row index into one.
type Dataset struct {
	Sheet     string
	HeaderRow int
	Header    []string
	Rows      [][]Cell
}

// RowNumber returns the 1-based spreadsheet row for data row i.
func (d *Dataset) RowNumber(i int) int {
	return d.HeaderRow + 1 + i
}

// Column returns the index of the header named name, or -1.
func (d *Dataset) Column(name string) int {
	for i, h := range d.Header {
		if h == name {
			return i
		}
	}
	return -1
}

func (d *Dataset) HasColumn(name string) bool {
	return d.Column(name) != -1
}

// Cell returns the cell at (row, col). Rows shorter than the header are
// padded with empty cells.
func (d *Dataset) Cell(row, col int) Cell {
	if row < 0 || row >= len(d.Rows) || col < 0 || col >= len(d.Rows[row]) {
		return EmptyCell()
	}
	return d.Rows[row][col]
}

// Copy returns a deep copy so callers can modify cells without touching
// the original.
func (d *Dataset) Copy() *Dataset {
	cp := &Dataset{
		Sheet:     d.Sheet,
		HeaderRow: d.HeaderRow,
		Header:    append([]string(nil), d.Header...),
		Rows:      make([][]Cell, len(d.Rows)),
	}
	for i, row := range d.Rows {
		cp.Rows[i] = append([]Cell(nil), row...)
	}
	return cp
}

// MetaRow is a single key/value pair from the Metadata worksheet. Row is the
// spreadsheet row it came from.
type MetaRow struct {
	Row   int
	Key   string
	Value Cell
}

// MetaTable is the optional Metadata worksheet, one field per row.
type MetaTable struct {
	Sheet string
	Rows  []MetaRow
}

// Workbook is everything the loader reads from a sample log file. Metadata
// is nil when the file has no Metadata worksheet.
type Workbook struct {
	Data     *Dataset
	Metadata *MetaTable
}
