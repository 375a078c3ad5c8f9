package fields

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Comparator is the comparison a bounded rule applies to a value.
type Comparator int

const (
	Eq Comparator = iota + 1
	Gt
	Ge
	Lt
	Le
	Between
)

var comparatorNames = map[Comparator]string{
	Eq:      "==",
	Gt:      ">",
	Ge:      ">=",
	Lt:      "<",
	Le:      "<=",
	Between: "between",
}

// ParseComparator turns the textual criteria used in field declarations
// into a Comparator.
func ParseComparator(s string) (Comparator, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range comparatorNames {
		if name == s {
			return c, nil
		}
	}
	if s == "=" {
		return Eq, nil
	}
	return 0, errors.Errorf("unknown comparator '%s'", s)
}

func (c Comparator) String() string {
	if name, ok := comparatorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Comparator(%d)", int(c))
}

// Holds reports whether an ordering result (negative, zero or positive, as
// returned by cmp.Compare(value, limit)) satisfies a single value comparator.
// Between is not a single value comparator and never holds here.
func (c Comparator) Holds(order int) bool {
	switch c {
	case Eq:
		return order == 0
	case Gt:
		return order > 0
	case Ge:
		return order >= 0
	case Lt:
		return order < 0
	case Le:
		return order <= 0
	default:
		return false
	}
}

// Valid is false for the zero value and anything not declared above.
func (c Comparator) Valid() bool {
	_, ok := comparatorNames[c]
	return ok
}
