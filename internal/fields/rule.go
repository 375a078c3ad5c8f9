package fields

import (
	"fmt"
	"strings"
)

// RuleKind names the variant of a Rule.
type RuleKind string

const (
	AnyKind     RuleKind = "any"
	ListKind    RuleKind = "list"
	LengthKind  RuleKind = "length"
	IntegerKind RuleKind = "integer"
	DecimalKind RuleKind = "decimal"
	TimeKind    RuleKind = "time"
	DateKind    RuleKind = "date"
)

// Rule is the validation declared for a field. The set of rules is closed:
// Any, List, Length, Integer, Decimal, Time and Date are the only
// implementations.
type Rule interface {
	Kind() RuleKind
	String() string
	rule()
}

// Bound is a comparison against one value, or for Between against an
// inclusive minimum and maximum.
type Bound[T any] struct {
	Criteria Comparator
	Value    T
	Minimum  T
	Maximum  T
}

// Compared builds a single value bound such as >= 0.
func Compared[T any](c Comparator, v T) Bound[T] {
	return Bound[T]{Criteria: c, Value: v}
}

// Bounded builds an inclusive between bound.
func Bounded[T any](lo, hi T) Bound[T] {
	return Bound[T]{Criteria: Between, Minimum: lo, Maximum: hi}
}

func (b Bound[T]) String() string {
	if b.Criteria == Between {
		return fmt.Sprintf("between %v and %v", b.Minimum, b.Maximum)
	}
	return fmt.Sprintf("%s %v", b.Criteria, b.Value)
}

// Any accepts every value.
type Any struct{}

// List accepts values found in Source. Matching is exact.
type List struct {
	Source []string
}

// Length bounds the number of characters in a value.
type Length struct {
	Bound[int]
}

// Integer accepts whole numbers within the bound.
type Integer struct {
	Bound[int64]
}

// Decimal accepts any number within the bound.
type Decimal struct {
	Bound[float64]
}

// Time accepts a time of day within the bound.
type Time struct {
	Bound[TimeLimit]
}

// Date accepts a calendar date within the bound. Relative limits are
// resolved when the validator is built.
type Date struct {
	Bound[DateLimit]
}

func (Any) rule()     {}
func (List) rule()    {}
func (Length) rule()  {}
func (Integer) rule() {}
func (Decimal) rule() {}
func (Time) rule()    {}
func (Date) rule()    {}

func (Any) Kind() RuleKind     { return AnyKind }
func (List) Kind() RuleKind    { return ListKind }
func (Length) Kind() RuleKind  { return LengthKind }
func (Integer) Kind() RuleKind { return IntegerKind }
func (Decimal) Kind() RuleKind { return DecimalKind }
func (Time) Kind() RuleKind    { return TimeKind }
func (Date) Kind() RuleKind    { return DateKind }

func (Any) String() string { return "any" }

func (l List) String() string {
	return fmt.Sprintf("list [%s]", strings.Join(l.Source, ", "))
}

func (l Length) String() string  { return "length " + l.Bound.String() }
func (i Integer) String() string { return "integer " + i.Bound.String() }
func (d Decimal) String() string { return "decimal " + d.Bound.String() }
func (t Time) String() string    { return "time " + t.Bound.String() }
func (d Date) String() string    { return "date " + d.Bound.String() }
