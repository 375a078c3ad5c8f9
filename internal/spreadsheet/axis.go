package spreadsheet

import "strconv"

// ColumnName returns the letters of the 1-based column col: 1 is A, 27 is AA.
func ColumnName(col int) string {
	var name []byte
	for col > 0 {
		col--
		name = append([]byte{byte('A' + col%26)}, name...)
		col /= 26
	}
	return string(name)
}

// CellName returns the axis of the cell in the 1-based column and row, such
// as C4.
func CellName(col, row int) string {
	return ColumnName(col) + strconv.Itoa(row)
}
