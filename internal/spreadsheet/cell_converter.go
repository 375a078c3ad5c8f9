package spreadsheet

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/umeldt/darwinsheet/internal/spreadsheet/model"
)

// dateLayouts are the layouts a date cell may be read back as. The short
// US layouts are what the worksheet reader produces for cells using the
// built in date formats.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.999999999Z07:00",
	"01-02-06",
	"1/2/06 15:04",
	"01-02-06 15:04",
}

type cellConverter struct {
	// intVal stores the value that isNumeric received from ParseInt. This
	// allows using that value without having to call ParseInt a second time
	// to access it.
	intVal int64

	// floatVal, timeVal and clockVal do the same for isFloat, isDate and
	// isClock.
	floatVal float64
	timeVal  time.Time
	clockVal time.Duration
}

func newCellConverter() *cellConverter {
	// explicitly initialize so we know what default values are
	return &cellConverter{intVal: 0, floatVal: 0}
}

// cellToValue takes the text of a cell, as the worksheet reader returns it,
// and decides what kind of value it holds. The order of the checks matters.
// Blank keywords come first so "nan" is never read as a float. Dates come
// before numbers so that 2019-02-10 is not mistaken for arithmetic, and
// times before numbers for the same reason. Anything that isn't recognized
// is kept as text. Numbers written with a decimal comma (2,5) stay text here,
// the checker normalizes them when a numeric rule asks for it.
func (c *cellConverter) cellToValue(cell string) model.Cell {
	trimmed := strings.TrimSpace(cell)

	switch {
	case IsBlank(trimmed):
		return model.EmptyCell()
	case c.isDate(trimmed):
		return model.Cell{Kind: model.Date, Raw: trimmed, Time: c.timeVal}
	case c.isClock(trimmed):
		return model.Cell{Kind: model.Time, Raw: trimmed, Clock: c.clockVal}
	case c.isNumeric(trimmed):
		return model.NumberCell(trimmed, float64(c.intVal), true)
	case c.isFloat(trimmed):
		return model.NumberCell(trimmed, c.floatVal, false)
	default:
		return model.TextCell(trimmed)
	}
}

// isNumeric will check if the cell is an integer. If it is it stores the converted
// value in c.intVal and returns true.
func (c *cellConverter) isNumeric(str string) bool {
	var err error
	c.intVal, err = strconv.ParseInt(str, 10, 64)
	return err == nil
}

// isFloat will check if the cell is a finite floating point number. If it
// is it stores the converted value in c.floatVal and returns true.
func (c *cellConverter) isFloat(str string) bool {
	f, err := strconv.ParseFloat(str, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return false
	}
	c.floatVal = f
	return true
}

// isDate checks the cell against the known date layouts.
func (c *cellConverter) isDate(str string) bool {
	// Every layout has a separator in its first ten characters, plain
	// numbers can be skipped without trying them all.
	if !strings.ContainsAny(str, "-/") {
		return false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			c.timeVal = t
			return true
		}
	}
	return false
}

func (c *cellConverter) isClock(str string) bool {
	d, ok := model.ParseClock(str)
	if ok {
		c.clockVal = d
	}
	return ok
}
