package check

import (
	"fmt"

	"github.com/umeldt/darwinsheet/internal/spreadsheet/model"
)

// Category groups findings by what is wrong.
type Category string

const (
	Structural            Category = "structural"
	UnknownColumn         Category = "unknown-column"
	Content               Category = "content"
	RequiredMissing       Category = "required-missing"
	RequiredMissingParent Category = "required-missing-parent"
	DuplicateID           Category = "duplicate-id"
	SelfReference         Category = "self-reference"
	Metadata              Category = "metadata"
)

// DuplicateHeading is shown before the duplicate identifier findings.
const DuplicateHeading = "Duplicate uuids in eventID (sampleID)"

// Finding is one problem found in a sample log. Rows are spreadsheet row
// numbers. Message is the text shown to the user.
type Finding struct {
	Category    Category `json:"category" yaml:"category"`
	Field       string   `json:"field,omitempty" yaml:"field,omitempty"`
	DisplayName string   `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	Rows        []int    `json:"rows,omitempty" yaml:"rows,omitempty"`
	Value       string   `json:"value,omitempty" yaml:"value,omitempty"`
	Message     string   `json:"message" yaml:"message"`
}

// Report is the outcome of checking a sample log.
type Report struct {
	Passed   bool      `json:"passed" yaml:"passed"`
	Findings []Finding `json:"findings" yaml:"findings"`
}

// StructuralReport returns a failed report holding a single structural
// finding, used when a file cannot be checked at all.
func StructuralReport(message string) *Report {
	return &Report{Findings: []Finding{{Category: Structural, Message: message}}}
}

func (r *Report) add(f Finding) {
	r.Findings = append(r.Findings, f)
	r.Passed = false
}

// Errors returns the findings as the list of lines shown to users. A heading
// is put in front of the duplicate identifier findings.
func (r *Report) Errors() []string {
	var lines []string
	headed := false
	for _, f := range r.Findings {
		if f.Category == DuplicateID && !headed {
			lines = append(lines, DuplicateHeading)
			headed = true
		}
		lines = append(lines, f.Message)
	}
	return lines
}

// Count returns the number of findings in category c.
func (r *Report) Count(c Category) int {
	n := 0
	for _, f := range r.Findings {
		if f.Category == c {
			n++
		}
	}
	return n
}

// Result is a report together with the data that was checked.
type Result struct {
	File     string           `json:"file,omitempty" yaml:"file,omitempty"`
	Setup    string           `json:"setup" yaml:"setup"`
	Report   *Report          `json:"report" yaml:"report"`
	Cleaned  *model.Dataset   `json:"-" yaml:"-"`
	Metadata *model.MetaTable `json:"-" yaml:"-"`
}

func columnFinding(c Category, name, display string, rows []int, problem string) Finding {
	return Finding{
		Category:    c,
		Field:       name,
		DisplayName: display,
		Rows:        rows,
		Message:     fmt.Sprintf("%s (%s), Rows: %s Error: %s", display, name, FormatRanges(rows), problem),
	}
}
