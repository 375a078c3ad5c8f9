package check

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-uuid"
	"github.com/pkg/errors"

	"github.com/umeldt/darwinsheet/internal/fields"
	"github.com/umeldt/darwinsheet/internal/spreadsheet"
	"github.com/umeldt/darwinsheet/internal/spreadsheet/model"
)

var (
	ErrNotNumeric = errors.New("not a number")
	ErrNotDate    = errors.New("not a date")
	ErrNotTime    = errors.New("not a time of day")
)

// excelEpoch is day zero of the 1900 date system as it is used in practice,
// which accounts for the leap day spreadsheets wrongly put in 1900.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Number is a cell value after numeric normalization.
type Number struct {
	Value float64
	Int   int64
	IsInt bool
}

// IsEmpty reports whether a cell counts as having no value.
func IsEmpty(c model.Cell) bool {
	return c.Kind == model.Empty || (c.Kind == model.Text && spreadsheet.IsBlank(c.Raw))
}

// ToNumber normalizes a cell into a number. Number cells pass through. Text
// has decimal commas turned into periods and stray quotes removed before it
// is parsed, first as an integer and then as a float.
func ToNumber(c model.Cell) (Number, error) {
	switch c.Kind {
	case model.Number:
		n := Number{Value: c.Number, IsInt: c.Int}
		if c.Int {
			n.Int = int64(c.Number)
		}
		return n, nil
	case model.Text:
		return parseNumber(c.Raw)
	}
	return Number{}, errors.Wrapf(ErrNotNumeric, "%s cell '%s'", c.Kind, c.String())
}

func parseNumber(raw string) (Number, error) {
	s := strings.NewReplacer(",", ".", "'", "", `"`, "").Replace(strings.TrimSpace(raw))
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Number{Value: float64(i), Int: i, IsInt: true}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return Number{}, errors.Wrapf(ErrNotNumeric, "'%s'", raw)
	}
	return Number{Value: f}, nil
}

// IsIdentifierField reports whether the column holds event identifiers.
func IsIdentifierField(name string) bool {
	return strings.Contains(strings.ToLower(name), "eventid")
}

// RepairIdentifier replaces the + and / characters some barcode readers
// produce instead of -.
func RepairIdentifier(s string) string {
	return strings.NewReplacer("+", "-", "/", "-").Replace(s)
}

// NormalizeIdentifier repairs the cell text and checks it is a UUID in its
// 36 character form.
func NormalizeIdentifier(c model.Cell) (string, bool) {
	s := RepairIdentifier(strings.TrimSpace(c.String()))
	if _, err := uuid.ParseUUID(s); err != nil {
		return s, false
	}
	return s, true
}

// ToDate reduces a cell to a calendar date. Timestamps lose their time of
// day, numbers are read as spreadsheet date serials.
func ToDate(c model.Cell) (time.Time, error) {
	switch c.Kind {
	case model.Date:
		return fields.TruncateDate(c.Time), nil
	case model.Number:
		if c.Number < 1 || c.Number >= 2958466 {
			break
		}
		days := math.Floor(c.Number)
		return excelEpoch.AddDate(0, 0, int(days)), nil
	case model.Text:
		for _, layout := range []string{"2006-01-02", "2006/01/02", "02.01.2006", "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, strings.TrimSpace(c.Raw)); err == nil {
				return fields.TruncateDate(t), nil
			}
		}
	}
	return time.Time{}, errors.Wrapf(ErrNotDate, "%s cell '%s'", c.Kind, c.String())
}

// ToTimeOfDay reduces a cell to the offset from midnight. Timestamps keep
// only their time. Numbers below one are fractions of a day, larger numbers
// are date time serials and keep their fraction.
func ToTimeOfDay(c model.Cell) (time.Duration, error) {
	switch c.Kind {
	case model.Time:
		return c.Clock, nil
	case model.Date:
		t := c.Time
		return t.Sub(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())), nil
	case model.Number:
		if c.Number >= 0 && c.Number < 2958466 {
			return fields.TimeOfDayFromDays(c.Number).Duration(), nil
		}
	case model.Text:
		if d, ok := model.ParseClock(c.Raw); ok {
			return d, nil
		}
	}
	return 0, errors.Wrapf(ErrNotTime, "%s cell '%s'", c.Kind, c.String())
}
