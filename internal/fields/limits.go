package fields

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/umeldt/darwinsheet/internal/spreadsheet/model"
)

const day = 24 * time.Hour

// TimeLimit is a time of day stored as the offset from midnight.
type TimeLimit time.Duration

// TimeOfDayFromDays converts a fraction of a day, the way spreadsheets store
// times, into a TimeLimit. 0.5 is noon.
func TimeOfDayFromDays(days float64) TimeLimit {
	frac := days - math.Floor(days)
	return TimeLimit(time.Duration(math.Round(frac*float64(day/time.Microsecond))) * time.Microsecond)
}

// ParseTimeLimit parses a literal time of day in the form HH:MM or HH:MM:SS.
func ParseTimeLimit(s string) (TimeLimit, error) {
	d, ok := model.ParseClock(s)
	if !ok {
		return 0, errors.Errorf("'%s' is not a time of day", s)
	}
	return TimeLimit(d), nil
}

func (t TimeLimit) Duration() time.Duration {
	return time.Duration(t)
}

func (t TimeLimit) String() string {
	d := time.Duration(t)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// DateLimit is a date bound. It is either a fixed calendar date or an offset
// in days from the day the validator is built.
type DateLimit struct {
	Fixed    time.Time
	Relative bool
	Days     int
}

// FixedDate returns a DateLimit for the given calendar day.
func FixedDate(year int, month time.Month, d int) DateLimit {
	return DateLimit{Fixed: time.Date(year, month, d, 0, 0, 0, 0, time.UTC)}
}

// Today returns a DateLimit offset days from the current date.
func Today(offset int) DateLimit {
	return DateLimit{Relative: true, Days: offset}
}

var (
	formulaRe = regexp.MustCompile(`^=?\s*today\(\)\s*(?:([+-])\s*(\d+))?$`)
	phraseRe  = regexp.MustCompile(`^today(?:\s*([+-])\s*(\d+)\s*(?:days?)?)?$`)
)

// ParseDateLimit accepts a literal date (YYYY-MM-DD) or a relative expression.
// Relative expressions are either the spreadsheet formula form, =TODAY()+2,
// or the phrase form, today + 2 days. Matching is case insensitive.
func ParseDateLimit(s string) (DateLimit, error) {
	trimmed := strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", trimmed); err == nil {
		return DateLimit{Fixed: t}, nil
	}

	lower := strings.ToLower(trimmed)
	m := formulaRe.FindStringSubmatch(lower)
	if m == nil {
		m = phraseRe.FindStringSubmatch(lower)
	}
	if m == nil {
		return DateLimit{}, errors.Errorf("'%s' is not a date or a relative date", s)
	}

	offset := 0
	if m[2] != "" {
		offset, _ = strconv.Atoi(m[2])
		if m[1] == "-" {
			offset = -offset
		}
	}
	return Today(offset), nil
}

// Resolve returns the calendar date the limit stands for, at midnight UTC.
func (l DateLimit) Resolve(now time.Time) time.Time {
	if !l.Relative {
		return TruncateDate(l.Fixed)
	}
	return TruncateDate(now).AddDate(0, 0, l.Days)
}

func (l DateLimit) String() string {
	switch {
	case !l.Relative:
		return l.Fixed.Format("2006-01-02")
	case l.Days > 0:
		return fmt.Sprintf("today + %d days", l.Days)
	case l.Days < 0:
		return fmt.Sprintf("today - %d days", -l.Days)
	default:
		return "today"
	}
}

// TruncateDate drops the time of day, keeping the calendar date the value
// shows.
func TruncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
