package fields

import (
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/umeldt/darwinsheet/internal/vocab"
)

// Catalogue is the set of known fields keyed by name. It is built once and
// never changes afterwards, so one Catalogue can be shared by any number of
// concurrent checks.
type Catalogue struct {
	fields map[string]Field
	names  []string
}

// NewCatalogue builds a catalogue from the declared fields and any number of
// vocabulary term lists. Declared fields win over vocabulary terms with the
// same name. A term that is not declared becomes a field that accepts any
// value and is labelled with the term label. Declarations with an empty name,
// no rule or a name used twice are errors, and all of them are reported.
func NewCatalogue(declared []Field, terms ...[]vocab.Term) (*Catalogue, error) {
	c := &Catalogue{fields: make(map[string]Field, len(declared))}
	var declErrs *multierror.Error

	for i, f := range declared {
		switch {
		case f.Name == "":
			declErrs = multierror.Append(declErrs, errors.Errorf("field %d has no name", i+1))
			continue
		case f.Rule == nil:
			declErrs = multierror.Append(declErrs, errors.Errorf("field '%s' has no validation rule", f.Name))
			continue
		}
		if _, ok := c.fields[f.Name]; ok {
			declErrs = multierror.Append(declErrs, errors.Errorf("field '%s' is declared more than once", f.Name))
			continue
		}
		if f.DisplayName == "" {
			f.DisplayName = f.Name
		}
		c.fields[f.Name] = f
	}

	for _, list := range terms {
		for _, t := range list {
			if t.Name == "" {
				continue
			}
			if _, ok := c.fields[t.Name]; ok {
				continue
			}
			label := t.Label
			if label == "" {
				label = t.Name
			}
			c.fields[t.Name] = Field{Name: t.Name, DisplayName: label, Rule: Any{}, DwcID: t.IRI}
		}
	}

	c.names = make([]string, 0, len(c.fields))
	for name := range c.fields {
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)

	if err := declErrs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return c, nil
}

// Lookup returns the field called name.
func (c *Catalogue) Lookup(name string) (Field, bool) {
	f, ok := c.fields[name]
	return f, ok
}

// Has reports whether name is a known field.
func (c *Catalogue) Has(name string) bool {
	_, ok := c.fields[name]
	return ok
}

// Names returns the field names in sorted order.
func (c *Catalogue) Names() []string {
	return append([]string(nil), c.names...)
}

func (c *Catalogue) Len() int {
	return len(c.fields)
}

// Fields returns every field sorted by name.
func (c *Catalogue) Fields() []Field {
	fields := make([]Field, 0, len(c.names))
	for _, name := range c.names {
		fields = append(fields, c.fields[name])
	}
	return fields
}

// Merge returns base with every field in overrides applied on top. An
// override replaces the base field of the same name in place, the rest are
// appended in order.
func Merge(base, overrides []Field) []Field {
	merged := append([]Field(nil), base...)
	index := make(map[string]int, len(merged))
	for i, f := range merged {
		index[f.Name] = i
	}
	for _, f := range overrides {
		if i, ok := index[f.Name]; ok {
			merged[i] = f
			continue
		}
		index[f.Name] = len(merged)
		merged = append(merged, f)
	}
	return merged
}
