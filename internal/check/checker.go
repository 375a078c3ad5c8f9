package check

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/umeldt/darwinsheet/internal/config"
	"github.com/umeldt/darwinsheet/internal/fields"
	"github.com/umeldt/darwinsheet/internal/spreadsheet"
	"github.com/umeldt/darwinsheet/internal/spreadsheet/model"
)

const metadataSheet = "metadata"

// Checker checks sample logs against a catalogue using the policies of one
// setup. The validators are built once by NewChecker. A Checker keeps no
// state between runs, so it can check any number of datasets, also
// concurrently, and checking the same dataset twice gives the same report.
type Checker struct {
	catalogue  *fields.Catalogue
	setup      config.Setup
	validators map[string]Validator
	now        func() time.Time
}

// Option configures a Checker.
type Option func(*Checker)

// WithClock sets the clock relative date limits are resolved against.
func WithClock(now func() time.Time) Option {
	return func(c *Checker) {
		c.now = now
	}
}

// NewChecker builds a validator for every field in cat. Every field whose
// rule cannot be compiled is reported in the returned error.
func NewChecker(cat *fields.Catalogue, setup config.Setup, opts ...Option) (*Checker, error) {
	c := &Checker{
		catalogue:  cat,
		setup:      setup,
		validators: make(map[string]Validator, cat.Len()),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	factory := NewFactory(c.now)
	var ruleErrs *multierror.Error
	for _, f := range cat.Fields() {
		v, err := factory.FieldValidator(f)
		if err != nil {
			ruleErrs = multierror.Append(ruleErrs, err)
			continue
		}
		c.validators[f.Name] = v
	}

	if err := ruleErrs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return c, nil
}

// Setup returns the setup the checker applies.
func (c *Checker) Setup() config.Setup {
	return c.setup
}

// state is a step of a check run.
type state int

const (
	headerCheck state = iota
	requiredColumnsCheck
	perCellCheck
	crossRowInvariantCheck
	done
)

// run holds what one check of one dataset finds along the way.
type run struct {
	*Checker
	ds     *model.Dataset
	report *Report

	// columns maps a column index to its field for the columns that have a
	// known name.
	columns map[int]fields.Field
	graph   *eventGraph
}

// Check checks a dataset. The dataset should be pruned and cleaned, see
// CheckWorkbook. It moves through the states
//
//	header -> required columns -> cells -> cross row invariants -> done
//
// Every state adds its findings to the report and the run carries on, except
// that missing required columns end the run: without them the other checks
// can not say anything useful.
func (c *Checker) Check(ds *model.Dataset) *Report {
	r := &run{
		Checker: c,
		ds:      ds,
		report:  &Report{Passed: true},
		columns: make(map[int]fields.Field),
	}

	for s := headerCheck; s != done; {
		s = r.step(s)
	}

	return r.report
}

func (r *run) step(s state) state {
	switch s {
	case headerCheck:
		r.checkHeader()
		return requiredColumnsCheck
	case requiredColumnsCheck:
		if !r.checkRequiredColumns() {
			return done
		}
		return perCellCheck
	case perCellCheck:
		r.checkCells()
		return crossRowInvariantCheck
	case crossRowInvariantCheck:
		r.checkCrossRow()
		return done
	}
	return done
}

// checkHeader resolves every named column to its field. Unknown names are
// reported and the column is left out of the other checks.
func (r *run) checkHeader() {
	for i, name := range r.ds.Header {
		if spreadsheet.IsBlank(name) {
			continue
		}
		f, ok := r.catalogue.Lookup(name)
		if !ok {
			r.report.add(Finding{
				Category: UnknownColumn,
				Value:    name,
				Rows:     []int{r.ds.HeaderRow},
				Message:  fmt.Sprintf("Column name not known, Row: %d, value: %s", r.ds.HeaderRow, name),
			})
			continue
		}
		r.columns[i] = f
	}

	if r.setup.EventGraph {
		r.graph = newEventGraph(r.ds)
	}
}

// requiredColumns is the required list of the setup followed by the two
// identifier columns when the event graph is checked.
func (r *run) requiredColumns() []string {
	required := append([]string(nil), r.setup.Required...)
	if r.setup.EventGraph {
		for _, name := range []string{EventIDField, ParentEventIDField} {
			if !r.setup.IsRequired(name) {
				required = append(required, name)
			}
		}
	}
	return required
}

// checkRequiredColumns makes sure every required field has a column. With an
// event graph, inheritable fields may be missing altogether when every event
// has a parent (see eventGraph.canMiss).
func (r *run) checkRequiredColumns() bool {
	canMiss := r.graph != nil && r.graph.canMiss()

	prefix := "Missing required column: "
	if r.setup.EventGraph {
		prefix = "Missing required column (parent UUIDs missing?): "
	}

	ok := true
	for _, name := range r.requiredColumns() {
		if r.ds.HasColumn(name) {
			continue
		}
		f, known := r.catalogue.Lookup(name)
		if canMiss && known && f.Inherit {
			continue
		}
		ok = false
		r.report.add(Finding{Category: Structural, Field: name, Message: prefix + name})
	}

	if !ok {
		r.report.add(Finding{
			Category: Structural,
			Message:  "Missing required column(s), not doing any more tests until fixed",
		})
	}
	return ok
}

// checkCells validates every cell of every known column and applies the
// requiredness rules to the empty ones.
func (r *run) checkCells() {
	gearCol := -1
	if r.setup.GearColumn != "" {
		gearCol = r.ds.Column(r.setup.GearColumn)
	}

	for col := range r.ds.Header {
		f, ok := r.columns[col]
		if !ok {
			continue
		}
		validate := r.validators[f.Name]
		required := r.setup.IsRequired(f.Name)

		var wrong, missingParent, missing []int
		for i := range r.ds.Rows {
			cell := r.ds.Cell(i, col)
			row := r.ds.RowNumber(i)

			if !validate(cell) {
				wrong = append(wrong, row)
			}
			if !required || !IsEmpty(cell) {
				continue
			}

			switch r.requiredness(f, i, gearCol) {
			case needsParent:
				missingParent = append(missingParent, row)
			case needsValue:
				missing = append(missing, row)
			}
		}

		if len(wrong) > 0 {
			r.report.add(columnFinding(Content, f.Name, f.DisplayName, wrong, "Content in wrong format"))
		}
		if len(missingParent) > 0 {
			r.report.add(columnFinding(RequiredMissingParent, f.Name, f.DisplayName, missingParent, "Required value missing (parent UUID missing?)"))
		}
		if len(missing) > 0 {
			r.report.add(columnFinding(RequiredMissing, f.Name, f.DisplayName, missing, "Required value missing"))
		}
	}
}

type need int

const (
	satisfied need = iota
	needsParent
	needsValue
)

// requiredness decides what an empty cell of the required field f on data
// row i means.
//
// With an event graph only rows with an eventID are looked at. An
// inheritable field is fine on a child, since the value comes from an
// ancestor, but on a root there is nothing to inherit from and the row most
// likely lost its parent. A field that can't be inherited needs a value on
// every row, except for the gear exempt fields on a root that names its
// gear. parentEventID itself and remarks are never needed.
//
// Without an event graph every row is on its own and an empty required cell
// is missing, remarks excepted. Blank rows are skipped.
func (r *run) requiredness(f fields.Field, i, gearCol int) need {
	if exemptFromValue(f.Name) {
		return satisfied
	}

	if r.graph == nil {
		if r.setup.EventGraph || isBlankRow(r.ds.Rows[i]) {
			return satisfied
		}
		return needsValue
	}

	if !r.graph.hasEvent(i) {
		return satisfied
	}
	root := r.graph.isRoot(i)

	switch {
	case f.Inherit && root:
		return needsParent
	case f.Inherit:
		return satisfied
	case root && gearCol != -1 && r.setup.IsGearExempt(f.Name):
		if IsEmpty(r.ds.Cell(i, gearCol)) {
			return needsParent
		}
		return satisfied
	}
	return needsValue
}

func exemptFromValue(name string) bool {
	return name == ParentEventIDField || strings.Contains(strings.ToLower(name), "remarks")
}

func isBlankRow(row []model.Cell) bool {
	for _, c := range row {
		if !IsEmpty(c) {
			return false
		}
	}
	return true
}

// checkCrossRow looks for rows that are their own parent and for identifiers
// used more than once.
func (r *run) checkCrossRow() {
	if r.graph != nil && len(r.graph.selfRefs) > 0 {
		rows := r.rowNumbers(r.graph.selfRefs)
		r.report.add(Finding{
			Category: SelfReference,
			Field:    EventIDField,
			Rows:     rows,
			Message:  FormatRanges(rows) + " Error: eventID (sampleID) is the same as parent ID",
		})
	}

	col := r.ds.Column(EventIDField)
	if col == -1 {
		return
	}
	rowsByID, dupOrder := groupIdentifiers(r.ds, col)
	for _, id := range dupOrder {
		rows := r.rowNumbers(rowsByID[id])
		r.report.add(Finding{
			Category: DuplicateID,
			Field:    EventIDField,
			Rows:     rows,
			Value:    id,
			Message:  fmt.Sprintf("Rows: %s, UUID: %s", FormatRanges(rows), id),
		})
	}
}

func (r *run) rowNumbers(indexes []int) []int {
	rows := make([]int, len(indexes))
	for i, idx := range indexes {
		rows[i] = r.ds.RowNumber(idx)
	}
	return rows
}

// CheckMeta checks the Metadata sheet: every key has to be a known field
// and every known field needs a value.
func (c *Checker) CheckMeta(meta *model.MetaTable) []Finding {
	var findings []Finding
	for _, row := range meta.Rows {
		if spreadsheet.IsBlank(row.Key) {
			continue
		}
		if !c.catalogue.Has(row.Key) {
			findings = append(findings, Finding{
				Category: Metadata,
				Value:    row.Key,
				Rows:     []int{row.Row},
				Message:  fmt.Sprintf("Metadata sheet: Column name not known, Row: %d, value: %s", row.Row, row.Key),
			})
			continue
		}
		if IsEmpty(row.Value) {
			findings = append(findings, Finding{
				Category: Metadata,
				Field:    row.Key,
				Rows:     []int{row.Row},
				Message:  fmt.Sprintf("Metadata sheet: Content missing, Cell: %s", spreadsheet.CellName(3, row.Row)),
			})
		}
	}
	return findings
}

// CheckWorkbook prunes and cleans the Data sheet, checks it, and checks the
// Metadata sheet when the setup asks for it. A missing Metadata sheet gives
// a report holding only that problem.
func (c *Checker) CheckWorkbook(wb *model.Workbook) *Result {
	cleaned := Clean(spreadsheet.Prune(wb.Data.Copy()))
	result := &Result{
		Setup:    c.setup.Name,
		Cleaned:  cleaned,
		Metadata: wb.Metadata,
	}

	if c.setup.WantsSheet(metadataSheet) && wb.Metadata == nil {
		missing := &spreadsheet.MissingSheetError{Sheet: spreadsheet.MetadataSheet}
		result.Report = StructuralReport(missing.Error())
		return result
	}

	result.Report = c.Check(cleaned)
	if c.setup.WantsSheet(metadataSheet) {
		for _, f := range c.CheckMeta(wb.Metadata) {
			result.Report.add(f)
		}
	}

	return result
}
