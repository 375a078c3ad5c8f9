package check

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umeldt/darwinsheet/internal/config"
	"github.com/umeldt/darwinsheet/internal/fields"
	"github.com/umeldt/darwinsheet/internal/spreadsheet/model"
)

const (
	idA = "8c1e5a4c-3b0a-4f7e-9a7e-2d1f0c9b8a01"
	idB = "8c1e5a4c-3b0a-4f7e-9a7e-2d1f0c9b8a02"
	idC = "8c1e5a4c-3b0a-4f7e-9a7e-2d1f0c9b8a03"
	idD = "8c1e5a4c-3b0a-4f7e-9a7e-2d1f0c9b8a04"
	idX = "8c1e5a4c-3b0a-4f7e-9a7e-2d1f0c9b8aff"
)

func testCatalogue(t *testing.T) *fields.Catalogue {
	t.Helper()
	uuid := fields.Length{Bound: fields.Compared(fields.Eq, 36)}
	cat, err := fields.NewCatalogue([]fields.Field{
		{Name: "eventID", DisplayName: "Event ID", Rule: uuid},
		{Name: "parentEventID", DisplayName: "Parent event ID", Rule: uuid},
		{Name: "eventDate", DisplayName: "Date", Inherit: true,
			Rule: fields.Date{Bound: fields.Bounded(fields.FixedDate(2000, time.January, 1), fields.Today(2))}},
		{Name: "bottomDepthInMeters", DisplayName: "Bottom depth", Inherit: true,
			Rule: fields.Decimal{Bound: fields.Bounded(0.0, 9999.0)}},
		{Name: "sampleType", DisplayName: "Sample type", Rule: fields.List{Source: []string{"water", "sediment"}}},
		{Name: "gearType", DisplayName: "Gear", Inherit: true, Rule: fields.List{Source: []string{"CTD", "Niskin"}}},
		{Name: "eventRemarks", DisplayName: "Remarks", Rule: fields.Any{}},
		{Name: "pi_name", DisplayName: "PI name", Rule: fields.Any{}},
	})
	require.NoError(t, err)
	return cat
}

func testSetup() config.Setup {
	return config.Setup{
		Name:        "test",
		Required:    []string{"eventID", "parentEventID", "eventDate", "bottomDepthInMeters", "sampleType", "eventRemarks"},
		ExtraSheets: []string{"metadata"},
		EventGraph:  true,
		GearColumn:  "gearType",
		GearExempt:  []string{"sampleType"},
	}
}

func testChecker(t *testing.T, setup config.Setup) *Checker {
	t.Helper()
	c, err := NewChecker(testCatalogue(t), setup, WithClock(fixedNow))
	require.NoError(t, err)
	return c
}

// dataset builds a cleaned dataset with the header on row 3. Blank strings
// become empty cells.
func dataset(header []string, rows ...[]string) *model.Dataset {
	ds := &model.Dataset{Sheet: "Data", HeaderRow: 3, Header: header}
	for _, r := range rows {
		cells := make([]model.Cell, len(r))
		for i, s := range r {
			if s == "" {
				cells[i] = model.EmptyCell()
			} else {
				cells[i] = model.TextCell(s)
			}
		}
		ds.Rows = append(ds.Rows, cells)
	}
	return Clean(ds)
}

var fullHeader = []string{"eventID", "parentEventID", "eventDate", "bottomDepthInMeters", "sampleType", "gearType", "eventRemarks"}

func TestCheckPasses(t *testing.T) {
	ds := dataset(fullHeader,
		[]string{idA, "", "2019-02-10", "312", "", "CTD", ""},
		[]string{idB, idA, "", "", "water", "", ""},
		[]string{idC, idB, "", "", "water", "", "filtered"},
	)

	report := testChecker(t, testSetup()).Check(ds)
	assert.True(t, report.Passed, "%v", report.Errors())
	assert.Empty(t, report.Findings)
}

func TestCheckContentAndRequiredness(t *testing.T) {
	ds := dataset(fullHeader,
		[]string{idA, "", "2019-02-10", "312", "", "CTD", ""},
		[]string{idB, idA, "", "", "water", "", ""},
		[]string{idC, idB, "", "-5", "", "", ""},
		[]string{idD, "", "2019-02-11", "10", "", "", ""},
	)

	report := testChecker(t, testSetup()).Check(ds)
	assert.False(t, report.Passed)
	assert.Equal(t, []string{
		"Bottom depth (bottomDepthInMeters), Rows: [6] Error: Content in wrong format",
		"Sample type (sampleType), Rows: [7] Error: Required value missing (parent UUID missing?)",
		"Sample type (sampleType), Rows: [6] Error: Required value missing",
	}, report.Errors())
	assert.Equal(t, 1, report.Count(Content))
	assert.Equal(t, 1, report.Count(RequiredMissingParent))
	assert.Equal(t, 1, report.Count(RequiredMissing))
}

func TestCheckUnknownColumn(t *testing.T) {
	header := append(append([]string(nil), fullHeader...), "colour")
	ds := dataset(header,
		[]string{idA, "", "2019-02-10", "312", "", "CTD", "", "blue"},
	)

	report := testChecker(t, testSetup()).Check(ds)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, UnknownColumn, report.Findings[0].Category)
	assert.Equal(t, "Column name not known, Row: 3, value: colour", report.Findings[0].Message)
}

func TestCheckMissingRequiredColumn(t *testing.T) {
	ds := dataset([]string{"eventID", "parentEventID", "eventDate", "bottomDepthInMeters", "eventRemarks", "colour"},
		[]string{idA, "", "2019-02-10", "-1", "", "blue"},
	)

	report := testChecker(t, testSetup()).Check(ds)
	assert.Equal(t, []string{
		"Column name not known, Row: 3, value: colour",
		"Missing required column (parent UUIDs missing?): sampleType",
		"Missing required column(s), not doing any more tests until fixed",
	}, report.Errors())
	assert.Equal(t, 0, report.Count(Content))
}

func TestCheckDuplicatesAndSelfReference(t *testing.T) {
	ds := dataset(fullHeader,
		[]string{idA, "", "2019-02-10", "312", "", "CTD", ""},
		[]string{idB, idA, "", "", "water", "", ""},
		[]string{idB, idA, "", "", "water", "", ""},
		[]string{idD, idD, "", "", "water", "", ""},
	)

	report := testChecker(t, testSetup()).Check(ds)
	assert.Equal(t, 1, report.Count(DuplicateID))
	assert.Equal(t, 1, report.Count(SelfReference))
	assert.Equal(t, []string{
		"[7] Error: eventID (sampleID) is the same as parent ID",
		"Duplicate uuids in eventID (sampleID)",
		"Rows: [5, 6], UUID: " + idB,
	}, report.Errors())

	for _, f := range report.Findings {
		if f.Category == DuplicateID {
			assert.Equal(t, []int{5, 6}, f.Rows)
			assert.Equal(t, idB, f.Value)
		}
	}
}

func TestCheckRepairedIdentifiersAreDuplicates(t *testing.T) {
	ds := dataset([]string{"eventID", "parentEventID", "eventDate", "bottomDepthInMeters", "sampleType", "eventRemarks"},
		[]string{idA, idX, "", "", "water", ""},
		[]string{"8c1e5a4c+3b0a/4f7e-9a7e-2d1f0c9b8a01", idX, "", "", "water", ""},
	)

	report := testChecker(t, testSetup()).Check(ds)
	assert.Equal(t, 1, report.Count(DuplicateID))
}

func TestInheritRelaxation(t *testing.T) {
	checker := testChecker(t, testSetup())
	header := []string{"eventID", "parentEventID", "eventDate", "bottomDepthInMeters", "sampleType", "eventRemarks"}

	// Every event has a parent, so the inheritable fields may be empty.
	children := [][]string{
		{idA, idX, "", "", "water", ""},
		{idB, idA, "", "", "water", ""},
	}
	report := checker.Check(dataset(header, children...))
	assert.True(t, report.Passed, "%v", report.Errors())

	// They may also be left out altogether.
	short := []string{"eventID", "parentEventID", "sampleType", "eventRemarks"}
	report = checker.Check(dataset(short,
		[]string{idA, idX, "water", ""},
		[]string{idB, idA, "water", ""},
	))
	assert.True(t, report.Passed, "%v", report.Errors())

	// One root switches the relaxation off.
	withRoot := append(children, []string{idC, "", "", "", "water", ""})
	report = checker.Check(dataset(header, withRoot...))
	assert.False(t, report.Passed)
	assert.Equal(t, []string{
		"Date (eventDate), Rows: [6] Error: Required value missing (parent UUID missing?)",
		"Bottom depth (bottomDepthInMeters), Rows: [6] Error: Required value missing (parent UUID missing?)",
	}, report.Errors())

	report = checker.Check(dataset(short,
		[]string{idA, idX, "water", ""},
		[]string{idC, "", "water", ""},
	))
	assert.Equal(t, []string{
		"Missing required column (parent UUIDs missing?): eventDate",
		"Missing required column (parent UUIDs missing?): bottomDepthInMeters",
		"Missing required column(s), not doing any more tests until fixed",
	}, report.Errors())
}

func TestCheckWithoutEventGraph(t *testing.T) {
	setup := config.Setup{Name: "flat", Required: []string{"eventID", "sampleType", "eventRemarks"}}
	ds := dataset([]string{"eventID", "sampleType", "eventRemarks"},
		[]string{idA, "water", ""},
		[]string{"", "", ""},
		[]string{idB, "", ""},
		[]string{idB, "mud", ""},
	)

	report := testChecker(t, setup).Check(ds)
	assert.Equal(t, []string{
		"Sample type (sampleType), Rows: [7] Error: Content in wrong format",
		"Sample type (sampleType), Rows: [6] Error: Required value missing",
		"Duplicate uuids in eventID (sampleID)",
		"Rows: [6, 7], UUID: " + idB,
	}, report.Errors())

	report = testChecker(t, setup).Check(dataset([]string{"eventID", "eventRemarks"}, []string{idA, ""}))
	assert.Equal(t, "Missing required column: sampleType", report.Findings[0].Message)
}

func TestCheckIsIdempotent(t *testing.T) {
	ds := dataset(fullHeader,
		[]string{idA, "", "2019-02-10", "312", "", "", ""},
		[]string{idB, idA, "1999-01-01", "abc", "water", "", ""},
		[]string{idB, idB, "", "", "soil", "", ""},
	)
	before := ds.Copy()

	checker := testChecker(t, testSetup())
	first := checker.Check(ds)
	second := checker.Check(ds)

	assert.Equal(t, first, second)
	assert.Equal(t, before, ds)
	assert.False(t, first.Passed)
}

func TestNewCheckerRejectsBadRules(t *testing.T) {
	cat, err := fields.NewCatalogue([]fields.Field{
		{Name: "a", Rule: fields.Decimal{Bound: fields.Compared(fields.Comparator(42), 1.0)}},
		{Name: "b", Rule: fields.Integer{Bound: fields.Compared(fields.Comparator(0), int64(1))}},
		{Name: "c", Rule: fields.Any{}},
	})
	require.NoError(t, err)

	_, err = NewChecker(cat, testSetup())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'a'")
	assert.Contains(t, err.Error(), "field 'b'")
}

func TestCheckMeta(t *testing.T) {
	meta := &model.MetaTable{Sheet: "Metadata", Rows: []model.MetaRow{
		{Row: 1, Key: "pi_name", Value: model.TextCell("Ann")},
		{Row: 2, Key: "bogus", Value: model.TextCell("x")},
		{Row: 3, Key: "eventRemarks", Value: model.EmptyCell()},
	}}

	findings := testChecker(t, testSetup()).CheckMeta(meta)
	require.Len(t, findings, 2)
	assert.Equal(t, "Metadata sheet: Column name not known, Row: 2, value: bogus", findings[0].Message)
	assert.Equal(t, "Metadata sheet: Content missing, Cell: C3", findings[1].Message)
}

func TestCheckWorkbook(t *testing.T) {
	checker := testChecker(t, testSetup())
	data := &model.Dataset{
		Sheet:     "Data",
		HeaderRow: 3,
		Header:    append(append([]string(nil), fullHeader...), ""),
		Rows: [][]model.Cell{{
			model.TextCell(idA), model.EmptyCell(), model.TextCell("2019-02-10"), model.TextCell("3,5"),
			model.EmptyCell(), model.TextCell("CTD"), model.EmptyCell(), model.TextCell("my notes"),
		}},
	}

	result := checker.CheckWorkbook(&model.Workbook{Data: data})
	assert.Equal(t, []string{"Does not contain the 'Metadata' sheet. Is this the correct file?"}, result.Report.Errors())

	meta := &model.MetaTable{Rows: []model.MetaRow{{Row: 1, Key: "pi_name", Value: model.EmptyCell()}}}
	result = checker.CheckWorkbook(&model.Workbook{Data: data, Metadata: meta})
	assert.Equal(t, "test", result.Setup)
	assert.Equal(t, []string{"Metadata sheet: Content missing, Cell: C1"}, result.Report.Errors())

	assert.Equal(t, fullHeader, result.Cleaned.Header)
	assert.Equal(t, model.Number, result.Cleaned.Rows[0][3].Kind)
	assert.Equal(t, 3.5, result.Cleaned.Rows[0][3].Number)
	assert.Len(t, data.Header, len(fullHeader)+1, "input is left alone")
}
