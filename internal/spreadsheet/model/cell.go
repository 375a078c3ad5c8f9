package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CellKind identifies which value a Cell carries.
type CellKind int

const (
	Empty CellKind = iota
	Number
	Text
	Date
	Time
)

func (k CellKind) String() string {
	switch k {
	case Number:
		return "number"
	case Text:
		return "text"
	case Date:
		return "date"
	case Time:
		return "time"
	default:
		return "empty"
	}
}

// Cell is a single spreadsheet value. The loader decides the kind once, when
// the cell is read, so everything downstream works on this closed set instead
// of guessing from strings again. Raw keeps the text as it was stored in the
// worksheet, which is what list and length rules look at.
type Cell struct {
	Kind CellKind
	Raw  string

	// Number is set for Number cells. Int is true when Raw was written as an
	// integer literal.
	Number float64
	Int    bool

	// Time is set for Date cells. A Date cell may carry a time of day when the
	// worksheet held a full timestamp.
	Time time.Time

	// Clock is set for Time cells, the offset from midnight.
	Clock time.Duration
}

func EmptyCell() Cell {
	return Cell{Kind: Empty}
}

func TextCell(s string) Cell {
	return Cell{Kind: Text, Raw: s}
}

// NumberCell creates a Number cell keeping the text it was parsed from.
func NumberCell(raw string, n float64, isInt bool) Cell {
	return Cell{Kind: Number, Raw: raw, Number: n, Int: isInt}
}

func IntCell(n int64) Cell {
	return Cell{Kind: Number, Raw: strconv.FormatInt(n, 10), Number: float64(n), Int: true}
}

func FloatCell(f float64) Cell {
	return Cell{Kind: Number, Raw: strconv.FormatFloat(f, 'f', -1, 64), Number: f}
}

func DateCell(t time.Time) Cell {
	c := Cell{Kind: Date, Time: t}
	c.Raw = c.formatDate()
	return c
}

func TimeCell(clock time.Duration) Cell {
	return Cell{Kind: Time, Clock: clock, Raw: FormatClock(clock)}
}

func (c Cell) IsEmpty() bool {
	return c.Kind == Empty
}

// String returns the text form of the cell.
func (c Cell) String() string {
	switch c.Kind {
	case Empty:
		return ""
	case Number:
		if c.Raw != "" {
			return c.Raw
		}
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case Date:
		if c.Raw != "" {
			return c.Raw
		}
		return c.formatDate()
	case Time:
		if c.Raw != "" {
			return c.Raw
		}
		return FormatClock(c.Clock)
	default:
		return c.Raw
	}
}

func (c Cell) formatDate() string {
	if c.Time.Hour() == 0 && c.Time.Minute() == 0 && c.Time.Second() == 0 {
		return c.Time.Format("2006-01-02")
	}
	return c.Time.Format("2006-01-02 15:04:05")
}

// FormatClock formats a time of day as HH:MM, adding seconds only when they
// are not zero.
func FormatClock(clock time.Duration) string {
	h := int(clock / time.Hour)
	m := int(clock % time.Hour / time.Minute)
	s := int(clock % time.Minute / time.Second)
	if s == 0 {
		return fmt.Sprintf("%02d:%02d", h, m)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

var clockRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2})(?:\.(\d{1,6}))?)?$`)

// ParseClock parses HH:MM[:SS[.ffffff]] into the offset from midnight.
func ParseClock(s string) (time.Duration, bool) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	sec := 0
	if m[3] != "" {
		sec, _ = strconv.Atoi(m[3])
	}
	if h > 23 || mins > 59 || sec > 59 {
		return 0, false
	}
	d := time.Duration(h)*time.Hour + time.Duration(mins)*time.Minute + time.Duration(sec)*time.Second
	if m[4] != "" {
		frac := m[4] + strings.Repeat("0", 6-len(m[4]))
		us, _ := strconv.Atoi(frac)
		d += time.Duration(us) * time.Microsecond
	}
	return d, true
}
