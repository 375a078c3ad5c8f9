package processor

import (
	"bytes"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/umeldt/darwinsheet/internal/check"
	"github.com/umeldt/darwinsheet/internal/fields"
	"github.com/umeldt/darwinsheet/internal/spreadsheet"
	"github.com/umeldt/darwinsheet/internal/spreadsheet/model"
)

const (
	idA = "8c1e5a4c-3b0a-4f7e-9a7e-2d1f0c9b8a01"
	idB = "8c1e5a4c-3b0a-4f7e-9a7e-2d1f0c9b8a02"
	idC = "8c1e5a4c-3b0a-4f7e-9a7e-2d1f0c9b8a03"
)

func failedResult() *check.Result {
	return &check.Result{
		File:  "log.xlsx",
		Setup: "aen",
		Report: &check.Report{Findings: []check.Finding{
			{Category: check.Content, Field: "bottomDepthInMeters", Rows: []int{6}, Message: "Bottom Depth (m) (bottomDepthInMeters), Rows: [6] Error: Content in wrong format"},
			{Category: check.DuplicateID, Field: "eventID", Rows: []int{5, 7}, Value: idB, Message: "Rows: [5, 7], UUID: " + idB},
		}},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": Text, "text": Text, "JSON": JSON, " yaml ": YAML} {
		f, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, f)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestDisplayerText(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewDisplayer(&out, Text).Apply(failedResult()))
	assert.Equal(t, "log.xlsx failed the checks for setup 'aen':\n"+
		"    1. Bottom Depth (m) (bottomDepthInMeters), Rows: [6] Error: Content in wrong format\n"+
		"  Duplicate uuids in eventID (sampleID)\n"+
		"    2. Rows: [5, 7], UUID: "+idB+"\n", out.String())

	out.Reset()
	passed := &check.Result{Setup: "darwin", Report: &check.Report{Passed: true}}
	require.NoError(t, NewDisplayer(&out, Text).Apply(passed))
	assert.Equal(t, "Sample log passed the checks for setup 'darwin'\n", out.String())
}

func TestDisplayerJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewDisplayer(&out, JSON).Apply(failedResult()))

	var decoded struct {
		File   string `json:"file"`
		Setup  string `json:"setup"`
		Report struct {
			Passed   bool `json:"passed"`
			Findings []struct {
				Category string `json:"category"`
				Rows     []int  `json:"rows"`
			} `json:"findings"`
		} `json:"report"`
	}
	require.NoError(t, sonic.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "log.xlsx", decoded.File)
	assert.False(t, decoded.Report.Passed)
	require.Len(t, decoded.Report.Findings, 2)
	assert.Equal(t, "duplicate-id", decoded.Report.Findings[1].Category)
	assert.Equal(t, []int{5, 7}, decoded.Report.Findings[1].Rows)
}

func TestDisplayerYAML(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewDisplayer(&out, YAML).Apply(failedResult()))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "aen", decoded["setup"])
}

func TestShowFields(t *testing.T) {
	fs := []fields.Field{
		{Name: "bottomDepthInMeters", DisplayName: "Bottom Depth (m)", Rule: fields.Decimal{Bound: fields.Compared(fields.Ge, 0.0)}, Inherit: true, Units: "m"},
		{Name: "eventRemarks", DisplayName: "Event Remarks", Rule: fields.Any{}},
	}

	var out bytes.Buffer
	require.NoError(t, NewDisplayer(&out, Text).ShowFields(fs))
	assert.Equal(t, "bottomDepthInMeters (Bottom Depth (m))\n"+
		"    Rule: decimal >= 0\n"+
		"    Inherited from parent events\n"+
		"    Units: m\n"+
		"eventRemarks (Event Remarks)\n"+
		"    Rule: any\n", out.String())

	out.Reset()
	require.NoError(t, NewDisplayer(&out, JSON).ShowFields(fs))
	var views []FieldView
	require.NoError(t, sonic.Unmarshal(out.Bytes(), &views))
	assert.Equal(t, ViewFields(fs), views)
}

func testCatalogue(t *testing.T) *fields.Catalogue {
	t.Helper()
	cat, err := fields.NewCatalogue([]fields.Field{
		{Name: "eventID", DisplayName: "Event ID", Rule: fields.Any{}},
		{Name: "parentEventID", DisplayName: "Parent event ID", Rule: fields.Any{}},
		{Name: "eventDate", DisplayName: "Date", Rule: fields.Any{}, Inherit: true},
		{Name: "minimumDepthInMeters", DisplayName: "Minimum depth (m)", Rule: fields.Any{}, Inherit: true, InheritWeak: true},
		{Name: "sampleType", DisplayName: "Sample type", Rule: fields.Any{}},
		{Name: "pi_name", DisplayName: "PI name", Rule: fields.Any{}},
	})
	require.NoError(t, err)
	return cat
}

func TestExporterRoundTrip(t *testing.T) {
	ds := &model.Dataset{
		Sheet:     "Data",
		HeaderRow: 3,
		Header:    []string{"eventID", "eventDate", "minimumDepthInMeters", "sampleType"},
		Rows: [][]model.Cell{
			{model.TextCell(idA), model.DateCell(time.Date(2019, 2, 10, 0, 0, 0, 0, time.UTC)), model.NumberCell("2,5", 2.5, false), model.TextCell("water")},
			{model.TextCell(idB), model.EmptyCell(), model.IntCell(40), model.EmptyCell()},
		},
	}
	meta := &model.MetaTable{Rows: []model.MetaRow{{Row: 1, Key: "pi_name", Value: model.TextCell("Ann")}}}

	fs := afero.NewMemMapFs()
	exporter := NewExporter("/out/log.xlsx", testCatalogue(t)).WithFs(fs)
	require.NoError(t, exporter.Apply(&check.Result{Cleaned: ds, Metadata: meta}))

	wb, err := spreadsheet.NewLoader(spreadsheet.DefaultHeaderRow).WithFs(fs).Load("/out/log.xlsx")
	require.NoError(t, err)

	assert.Equal(t, ds.Header, wb.Data.Header)
	require.Len(t, wb.Data.Rows, 2)
	assert.Equal(t, idA, wb.Data.Rows[0][0].String())
	assert.Equal(t, model.Date, wb.Data.Rows[0][1].Kind)
	assert.Equal(t, 2.5, wb.Data.Rows[0][2].Number)
	assert.Equal(t, "water", wb.Data.Rows[0][3].String())
	assert.Equal(t, model.Empty, wb.Data.Rows[1][1].Kind)
	assert.Equal(t, "40", wb.Data.Rows[1][2].String())

	require.NotNil(t, wb.Metadata)
	require.Len(t, wb.Metadata.Rows, 1)
	assert.Equal(t, "pi_name", wb.Metadata.Rows[0].Key)
	assert.Equal(t, "Ann", wb.Metadata.Rows[0].Value.String())
}

func TestExporterWithoutData(t *testing.T) {
	err := NewExporter("x.xlsx", nil).WithFs(afero.NewMemMapFs()).Apply(&check.Result{})
	assert.Error(t, err)
}

func TestInheritor(t *testing.T) {
	ds := &model.Dataset{
		HeaderRow: 3,
		Header:    []string{"eventID", "parentEventID", "eventDate", "minimumDepthInMeters", "sampleType"},
		Rows: [][]model.Cell{
			{model.TextCell(idC), model.TextCell(idA), model.EmptyCell(), model.EmptyCell(), model.TextCell("water")},
			{model.TextCell(idA), model.EmptyCell(), model.TextCell("2019-02-10"), model.IntCell(10), model.TextCell("cast")},
			{model.TextCell(idB), model.TextCell(idA), model.TextCell("2018-01-01"), model.IntCell(20)},
			{model.TextCell(idB + "x"), model.TextCell(idC), model.EmptyCell(), model.EmptyCell(), model.EmptyCell()},
		},
	}

	result := &check.Result{Cleaned: ds}
	require.NoError(t, Run(result, NewInheritor(testCatalogue(t))))

	// Strong inheritance replaces, weak only fills in.
	assert.Equal(t, "2019-02-10", ds.Cell(0, 2).String())
	assert.Equal(t, "10", ds.Cell(0, 3).String())
	assert.Equal(t, "2019-02-10", ds.Cell(2, 2).String())
	assert.Equal(t, "20", ds.Cell(2, 3).String())

	// Grandchildren get the values through their parent.
	assert.Equal(t, "2019-02-10", ds.Cell(3, 2).String())
	assert.Equal(t, "10", ds.Cell(3, 3).String())

	// Fields that aren't inherited are left alone.
	assert.Equal(t, "water", ds.Cell(0, 4).String())
	assert.Equal(t, model.Empty, ds.Cell(3, 4).Kind)
}

func TestInheritorCycle(t *testing.T) {
	ds := &model.Dataset{
		HeaderRow: 3,
		Header:    []string{"eventID", "parentEventID", "eventDate"},
		Rows: [][]model.Cell{
			{model.TextCell(idA), model.TextCell(idB), model.TextCell("2019-02-10")},
			{model.TextCell(idB), model.TextCell(idA), model.EmptyCell()},
		},
	}
	require.NoError(t, NewInheritor(testCatalogue(t)).Apply(&check.Result{Cleaned: ds}))
	assert.Equal(t, model.Empty, ds.Cell(1, 2).Kind)
}
