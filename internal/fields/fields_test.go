package fields

import (
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umeldt/darwinsheet/internal/vocab"
)

func TestParseComparator(t *testing.T) {
	tests := []struct {
		in   string
		want Comparator
	}{
		{"==", Eq},
		{">", Gt},
		{">=", Ge},
		{"<", Lt},
		{"<=", Le},
		{"between", Between},
		{" Between ", Between},
	}

	for _, test := range tests {
		c, err := ParseComparator(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.want, c)
		assert.True(t, c.Valid())
	}

	_, err := ParseComparator("!=")
	assert.Error(t, err)
	assert.False(t, Comparator(0).Valid())
}

func TestComparatorHolds(t *testing.T) {
	assert.True(t, Ge.Holds(0))
	assert.True(t, Ge.Holds(1))
	assert.False(t, Ge.Holds(-1))
	assert.True(t, Lt.Holds(-1))
	assert.False(t, Eq.Holds(1))
	assert.False(t, Between.Holds(0))
}

func TestTimeLimits(t *testing.T) {
	assert.Equal(t, 12*time.Hour, TimeOfDayFromDays(0.5).Duration())
	assert.Equal(t, time.Duration(0), TimeOfDayFromDays(0).Duration())
	assert.True(t, TimeOfDayFromDays(0.9999999).Duration() > 23*time.Hour+59*time.Minute)

	tl, err := ParseTimeLimit("06:30")
	require.NoError(t, err)
	assert.Equal(t, 6*time.Hour+30*time.Minute, tl.Duration())

	tl, err = ParseTimeLimit("23:59:59")
	require.NoError(t, err)
	assert.Equal(t, "23:59:59", tl.String())

	_, err = ParseTimeLimit("25:00")
	assert.Error(t, err)
}

func TestParseDateLimit(t *testing.T) {
	now := time.Date(2021, time.March, 10, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2000-01-01", time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"=TODAY()+2", time.Date(2021, time.March, 12, 0, 0, 0, 0, time.UTC)},
		{"=today()-3", time.Date(2021, time.March, 7, 0, 0, 0, 0, time.UTC)},
		{"=TODAY()", time.Date(2021, time.March, 10, 0, 0, 0, 0, time.UTC)},
		{"today", time.Date(2021, time.March, 10, 0, 0, 0, 0, time.UTC)},
		{"Today + 2 days", time.Date(2021, time.March, 12, 0, 0, 0, 0, time.UTC)},
		{"today - 1 day", time.Date(2021, time.March, 9, 0, 0, 0, 0, time.UTC)},
	}

	for _, test := range tests {
		l, err := ParseDateLimit(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.want, l.Resolve(now), test.in)
	}

	_, err := ParseDateLimit("yesterday")
	assert.Error(t, err)
}

func TestDefaultsBuildCatalogue(t *testing.T) {
	cat, err := NewCatalogue(Defaults(DefaultLists()))
	require.NoError(t, err)

	f, ok := cat.Lookup("eventID")
	require.True(t, ok)
	assert.Equal(t, "Event ID", f.DisplayName)
	assert.Equal(t, Length{Compared(Eq, 36)}, f.Rule)
	assert.False(t, f.Inherit)

	f, ok = cat.Lookup("maximumDepthInMeters")
	require.True(t, ok)
	assert.True(t, f.Inherit)
	assert.True(t, f.InheritWeak)

	f, ok = cat.Lookup("gearType")
	require.True(t, ok)
	assert.Equal(t, ListKind, f.Rule.Kind())
	assert.True(t, f.Inherit)

	names := cat.Names()
	assert.Equal(t, cat.Len(), len(names))
	assert.IsIncreasing(t, names)
}

func TestCatalogueTerms(t *testing.T) {
	declared := []Field{field("eventID", "Event ID", Length{Compared(Eq, 36)})}
	terms := []vocab.Term{
		{Name: "eventID", Label: "Event Identifier", IRI: "http://rs.tdwg.org/dwc/terms/eventID"},
		{Name: "habitat", Label: "Habitat", IRI: "http://rs.tdwg.org/dwc/terms/habitat"},
	}
	dcterms := []vocab.Term{{Name: "habitat", Label: "Other habitat"}, {Name: "license", Label: "License"}}

	cat, err := NewCatalogue(declared, terms, dcterms)
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())

	f, _ := cat.Lookup("eventID")
	assert.Equal(t, "Event ID", f.DisplayName, "declared fields win over terms")

	f, _ = cat.Lookup("habitat")
	assert.Equal(t, "Habitat", f.DisplayName, "first vocabulary wins")
	assert.Equal(t, Any{}, f.Rule)

	assert.True(t, cat.Has("license"))
}

func TestCatalogueErrors(t *testing.T) {
	declared := []Field{
		field("a", "A", Any{}),
		field("a", "A again", Any{}),
		{Name: "b"},
		field("", "nameless", Any{}),
	}
	_, err := NewCatalogue(declared)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'a' is declared more than once")
	assert.Contains(t, err.Error(), "'b' has no validation rule")
	assert.Contains(t, err.Error(), "field 4 has no name")
}

func TestMerge(t *testing.T) {
	base := []Field{field("a", "A", Any{}), field("b", "B", Any{})}
	merged := Merge(base, []Field{field("b", "Bee", List{[]string{"x"}}), field("c", "C", Any{})})
	require.Len(t, merged, 3)
	assert.Equal(t, "Bee", merged[1].DisplayName)
	assert.Equal(t, "c", merged[2].Name)
	assert.Equal(t, "B", base[1].DisplayName)
}

func TestDeclaration(t *testing.T) {
	tests := []struct {
		name string
		decl Declaration
		want Rule
	}{
		{"any", Declaration{Name: "x"}, Any{}},
		{"list", Declaration{Name: "x", Validate: "list", Source: []string{"A", "B"}}, List{[]string{"A", "B"}}},
		{"length", Declaration{Name: "x", Validate: "length", Criteria: "==", Value: 36}, Length{Compared(Eq, 36)}},
		{"integer from string", Declaration{Name: "x", Validate: "integer", Criteria: ">", Value: "0"}, Integer{Compared[int64](Gt, 0)}},
		{"decimal", Declaration{Name: "x", Validate: "decimal", Criteria: "between", Minimum: -90, Maximum: 90.0}, Decimal{Bounded(-90.0, 90.0)}},
		{"time days", Declaration{Name: "x", Validate: "time", Criteria: "between", Minimum: 0, Maximum: 0.5}, Time{Bounded(TimeLimit(0), TimeLimit(12*time.Hour))}},
		{"time literal", Declaration{Name: "x", Validate: "time", Criteria: "<=", Value: "12:00"}, Time{Compared(Le, TimeLimit(12*time.Hour))}},
		{"date", Declaration{Name: "x", Validate: "date", Criteria: "between", Minimum: "2000-01-01", Maximum: "=TODAY()+2"}, Date{Bounded(FixedDate(2000, time.January, 1), Today(2))}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := test.decl.Field()
			require.NoError(t, err)
			assert.Equal(t, test.want, f.Rule)
		})
	}
}

func TestDeclarationErrors(t *testing.T) {
	bad := []Declaration{
		{},
		{Name: "x", Validate: "regex", Criteria: "=="},
		{Name: "x", Validate: "decimal", Criteria: "~", Value: 1},
		{Name: "x", Validate: "decimal", Criteria: ">", Value: "abc"},
		{Name: "x", Validate: "date", Criteria: "between", Minimum: "soon", Maximum: "today"},
	}
	for _, d := range bad {
		_, err := d.Field()
		assert.Error(t, err, "%+v", d)
	}
}

func TestLoadLists(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/gear.csv", []byte("Gear types\nName\nRosette\nMultinet\n"), 0644))

	lists, err := LoadLists(fs, "/gear.csv", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Rosette", "Multinet"}, lists.GearTypes)
	assert.Equal(t, DefaultLists().SampleTypes, lists.SampleTypes)

	_, err = LoadLists(fs, "", "/missing.csv")
	assert.Error(t, err)
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func TestParseErrorsCarryStack(t *testing.T) {
	_, err := ParseComparator("!=")
	require.Error(t, err)
	assert.Implements(t, (*stackTracer)(nil), err)
	assert.Contains(t, err.Error(), "unknown comparator '!='")

	_, err = ParseTimeLimit("noon")
	require.Error(t, err)
	assert.Implements(t, (*stackTracer)(nil), err)

	_, err = ParseDateLimit("soon")
	require.Error(t, err)
	assert.Implements(t, (*stackTracer)(nil), err)

	_, err = NewCatalogue([]Field{{Name: "b"}})
	require.Error(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 1)
	assert.Implements(t, (*stackTracer)(nil), merr.Errors[0])
}
