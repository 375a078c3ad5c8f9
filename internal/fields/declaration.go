package fields

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// ErrInvalidDeclaration is returned when a field declaration read from
// configuration cannot be turned into a Field.
var ErrInvalidDeclaration = errors.New("invalid field declaration")

// Declaration is the loosely typed form of a field used in configuration
// files. Limits are left untyped because YAML gives numbers, strings or
// dates depending on how the value was written.
type Declaration struct {
	Name        string      `mapstructure:"name"`
	DisplayName string      `mapstructure:"disp_name"`
	Validate    string      `mapstructure:"validate"`
	Criteria    string      `mapstructure:"criteria"`
	Value       interface{} `mapstructure:"value"`
	Minimum     interface{} `mapstructure:"minimum"`
	Maximum     interface{} `mapstructure:"maximum"`
	Source      []string    `mapstructure:"source"`
	Inherit     bool        `mapstructure:"inherit"`
	InheritWeak bool        `mapstructure:"inherit_weak"`
	Units       string      `mapstructure:"units"`
	DwcID       string      `mapstructure:"dwcid"`
}

// Field converts the declaration.
func (d Declaration) Field() (Field, error) {
	if d.Name == "" {
		return Field{}, errors.Wrap(ErrInvalidDeclaration, "missing name")
	}

	rule, err := d.rule()
	if err != nil {
		return Field{}, errors.Wrapf(err, "field '%s'", d.Name)
	}

	return Field{
		Name:        d.Name,
		DisplayName: d.DisplayName,
		Rule:        rule,
		Inherit:     d.Inherit || d.InheritWeak,
		InheritWeak: d.InheritWeak,
		Units:       d.Units,
		DwcID:       d.DwcID,
	}, nil
}

func (d Declaration) rule() (Rule, error) {
	kind := RuleKind(strings.ToLower(strings.TrimSpace(d.Validate)))
	switch kind {
	case "", AnyKind:
		return Any{}, nil
	case ListKind:
		return List{Source: append([]string(nil), d.Source...)}, nil
	}

	c, err := ParseComparator(d.Criteria)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidDeclaration, err.Error())
	}

	switch kind {
	case LengthKind:
		b, err := bound(c, d, cast.ToIntE)
		return Length{b}, err
	case IntegerKind:
		b, err := bound(c, d, cast.ToInt64E)
		return Integer{b}, err
	case DecimalKind:
		b, err := bound(c, d, cast.ToFloat64E)
		return Decimal{b}, err
	case TimeKind:
		b, err := bound(c, d, toTimeLimit)
		return Time{b}, err
	case DateKind:
		b, err := bound(c, d, toDateLimit)
		return Date{b}, err
	}

	return nil, errors.Wrapf(ErrInvalidDeclaration, "unknown validation '%s'", d.Validate)
}

func bound[T any](c Comparator, d Declaration, conv func(interface{}) (T, error)) (Bound[T], error) {
	if c == Between {
		lo, err := conv(d.Minimum)
		if err != nil {
			return Bound[T]{}, errors.Wrapf(ErrInvalidDeclaration, "minimum: %s", err)
		}
		hi, err := conv(d.Maximum)
		if err != nil {
			return Bound[T]{}, errors.Wrapf(ErrInvalidDeclaration, "maximum: %s", err)
		}
		return Bounded(lo, hi), nil
	}

	v, err := conv(d.Value)
	if err != nil {
		return Bound[T]{}, errors.Wrapf(ErrInvalidDeclaration, "value: %s", err)
	}
	return Compared(c, v), nil
}

// toTimeLimit accepts fractional days (0.5) or a literal time ("12:00").
func toTimeLimit(v interface{}) (TimeLimit, error) {
	if s, ok := v.(string); ok && strings.Contains(s, ":") {
		return ParseTimeLimit(s)
	}
	days, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, errors.Errorf("'%v' is not a time of day", v)
	}
	return TimeOfDayFromDays(days), nil
}

// toDateLimit accepts a date value or any of the forms ParseDateLimit does.
func toDateLimit(v interface{}) (DateLimit, error) {
	if t, ok := v.(time.Time); ok {
		return DateLimit{Fixed: TruncateDate(t)}, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return DateLimit{}, err
	}
	return ParseDateLimit(s)
}
