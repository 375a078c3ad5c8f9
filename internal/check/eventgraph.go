package check

import (
	"github.com/umeldt/darwinsheet/internal/spreadsheet/model"
)

const (
	EventIDField       = "eventID"
	ParentEventIDField = "parentEventID"
)

// eventGraph links the rows of a dataset through their eventID and
// parentEventID columns. A row with an eventID and no parent is a root: a
// gear deployment, or a sample whose parent was not filled in. Every other
// row with an eventID points at its parent event.
//
// For example:
//
//	row 4: eventID A, parentEventID -      root (a CTD cast)
//	row 5: eventID B, parentEventID A      sample from the cast
//	row 6: eventID C, parentEventID B      subsample
//	row 7: eventID B, parentEventID A      duplicate of row 5
//	row 8: eventID D, parentEventID D      points at itself
//
// gives roots [4] and self references [8]. Duplicated identifiers, B on
// rows 5 and 7, are found by groupIdentifiers, which also works for sheets
// without a parent column.
type eventGraph struct {
	ds        *model.Dataset
	eventCol  int
	parentCol int

	// roots are data row indexes.
	roots []int

	selfRefs []int
}

// newEventGraph builds the graph, or returns nil when the dataset lacks one
// of the two identifier columns.
func newEventGraph(ds *model.Dataset) *eventGraph {
	g := &eventGraph{
		ds:        ds,
		eventCol:  ds.Column(EventIDField),
		parentCol: ds.Column(ParentEventIDField),
	}
	if g.eventCol == -1 || g.parentCol == -1 {
		return nil
	}

	for i := range ds.Rows {
		id, parent := g.eventID(i), g.parentID(i)
		if id == "" {
			continue
		}
		if parent == "" {
			g.roots = append(g.roots, i)
		} else if parent == id {
			g.selfRefs = append(g.selfRefs, i)
		}
	}

	return g
}

// groupIdentifiers maps every non-empty identifier in column col to its rows
// and lists the identifiers used more than once, in the order their second
// use was found.
func groupIdentifiers(ds *model.Dataset, col int) (map[string][]int, []string) {
	rowsByID := make(map[string][]int)
	var dupOrder []string
	for i := range ds.Rows {
		c := ds.Cell(i, col)
		if IsEmpty(c) {
			continue
		}
		id := c.String()
		rowsByID[id] = append(rowsByID[id], i)
		if len(rowsByID[id]) == 2 {
			dupOrder = append(dupOrder, id)
		}
	}
	return rowsByID, dupOrder
}

func (g *eventGraph) eventID(row int) string {
	return cellText(g.ds.Cell(row, g.eventCol))
}

func (g *eventGraph) parentID(row int) string {
	return cellText(g.ds.Cell(row, g.parentCol))
}

func (g *eventGraph) hasEvent(row int) bool {
	return g.eventID(row) != ""
}

func (g *eventGraph) isRoot(row int) bool {
	return g.hasEvent(row) && g.parentID(row) == ""
}

// canMiss is true when no row is a root. Every event then has a parent, and
// inheritable columns may be left out of the sheet because their values
// come from the parent events.
func (g *eventGraph) canMiss() bool {
	return len(g.roots) == 0
}

func cellText(c model.Cell) string {
	if IsEmpty(c) {
		return ""
	}
	return c.String()
}
