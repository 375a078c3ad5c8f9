package check

import (
	"cmp"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/umeldt/darwinsheet/internal/fields"
	"github.com/umeldt/darwinsheet/internal/spreadsheet/model"
)

// ErrUnimplementedRule is returned when a rule, or the comparator it uses,
// has no validator.
var ErrUnimplementedRule = errors.New("unimplemented validation rule")

// Validator tells whether a cell satisfies a rule. Empty cells always pass,
// whether a value has to be there is checked separately.
type Validator func(model.Cell) bool

// Factory compiles rules into validators. Relative date limits are resolved
// against now when a validator is built.
type Factory struct {
	now func() time.Time
}

func NewFactory(now func() time.Time) *Factory {
	if now == nil {
		now = time.Now
	}
	return &Factory{now: now}
}

// Validator compiles rule.
func (f *Factory) Validator(rule fields.Rule) (Validator, error) {
	v, err := f.compile(rule)
	if err != nil {
		return nil, err
	}
	return func(c model.Cell) bool {
		if IsEmpty(c) {
			return true
		}
		return v(c)
	}, nil
}

// FieldValidator compiles the rule of field. Identifier fields additionally
// require a UUID, and their rule is applied to the repaired identifier.
func (f *Factory) FieldValidator(field fields.Field) (Validator, error) {
	v, err := f.Validator(field.Rule)
	if err != nil {
		return nil, errors.Wrapf(err, "field '%s'", field.Name)
	}
	if !IsIdentifierField(field.Name) {
		return v, nil
	}
	return func(c model.Cell) bool {
		if IsEmpty(c) {
			return true
		}
		id, ok := NormalizeIdentifier(c)
		return ok && v(model.TextCell(id))
	}, nil
}

func (f *Factory) compile(rule fields.Rule) (Validator, error) {
	switch r := rule.(type) {
	case fields.Any:
		return func(model.Cell) bool { return true }, nil

	case fields.List:
		allowed := make(map[string]bool, len(r.Source))
		for _, s := range r.Source {
			allowed[s] = true
		}
		return func(c model.Cell) bool { return allowed[c.String()] }, nil

	case fields.Length:
		in, err := ordered(r.Bound)
		if err != nil {
			return nil, err
		}
		return func(c model.Cell) bool { return in(utf8.RuneCountInString(c.String())) }, nil

	case fields.Integer:
		in, err := ordered(r.Bound)
		if err != nil {
			return nil, err
		}
		return func(c model.Cell) bool {
			n, err := ToNumber(c)
			return err == nil && n.IsInt && in(n.Int)
		}, nil

	case fields.Decimal:
		in, err := ordered(r.Bound)
		if err != nil {
			return nil, err
		}
		return func(c model.Cell) bool {
			n, err := ToNumber(c)
			return err == nil && in(n.Value)
		}, nil

	case fields.Time:
		in, err := ordered(r.Bound)
		if err != nil {
			return nil, err
		}
		return func(c model.Cell) bool {
			d, err := ToTimeOfDay(c)
			return err == nil && in(fields.TimeLimit(d))
		}, nil

	case fields.Date:
		in, err := ordered(f.resolveDates(r.Bound))
		if err != nil {
			return nil, err
		}
		return func(c model.Cell) bool {
			t, err := ToDate(c)
			return err == nil && in(t.Unix())
		}, nil
	}

	return nil, errors.Wrapf(ErrUnimplementedRule, "%T", rule)
}

// resolveDates turns date limits into seconds since the epoch of the day
// they stand for.
func (f *Factory) resolveDates(b fields.Bound[fields.DateLimit]) fields.Bound[int64] {
	now := f.now()
	return fields.Bound[int64]{
		Criteria: b.Criteria,
		Value:    b.Value.Resolve(now).Unix(),
		Minimum:  b.Minimum.Resolve(now).Unix(),
		Maximum:  b.Maximum.Resolve(now).Unix(),
	}
}

// ordered returns the predicate for a bound over an ordered type. Between is
// inclusive at both ends.
func ordered[T cmp.Ordered](b fields.Bound[T]) (func(T) bool, error) {
	switch {
	case b.Criteria == fields.Between:
		lo, hi := b.Minimum, b.Maximum
		return func(v T) bool { return cmp.Compare(lo, v) <= 0 && cmp.Compare(v, hi) <= 0 }, nil
	case b.Criteria.Valid():
		c, limit := b.Criteria, b.Value
		return func(v T) bool { return c.Holds(cmp.Compare(v, limit)) }, nil
	}
	return nil, errors.Wrapf(ErrUnimplementedRule, "comparator %s", b.Criteria)
}
