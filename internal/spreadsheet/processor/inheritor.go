package processor

import (
	"github.com/umeldt/darwinsheet/internal/check"
	"github.com/umeldt/darwinsheet/internal/fields"
	"github.com/umeldt/darwinsheet/internal/spreadsheet/model"
)

// Inheritor fills in the values child events inherit from their parents in
// the cleaned dataset of a result. Fields marked Inherit are copied down the
// event tree. A child's own value is replaced, unless the field is also
// InheritWeak, in which case only empty cells are filled. This is what
// multinet deployments need: the nets share the cast position but keep
// their own depth range.
type Inheritor struct {
	catalogue *fields.Catalogue
}

func NewInheritor(cat *fields.Catalogue) *Inheritor {
	return &Inheritor{catalogue: cat}
}

func (in *Inheritor) Apply(result *check.Result) error {
	if result.Cleaned == nil {
		return nil
	}
	in.inherit(result.Cleaned)
	return nil
}

type inheritedColumn struct {
	col  int
	weak bool
}

func (in *Inheritor) inherit(ds *model.Dataset) {
	var columns []inheritedColumn
	for col, name := range ds.Header {
		if f, ok := in.catalogue.Lookup(name); ok && f.Inherit {
			columns = append(columns, inheritedColumn{col: col, weak: f.InheritWeak})
		}
	}
	if len(columns) == 0 {
		return
	}

	tree := newEventTree(ds)
	if tree == nil {
		return
	}

	tree.walk(func(parent, child int) {
		for _, c := range columns {
			value := ds.Cell(parent, c.col)
			if check.IsEmpty(value) {
				continue
			}
			if c.weak && !check.IsEmpty(ds.Cell(child, c.col)) {
				continue
			}
			setCell(ds, child, c.col, value)
		}
	})
}

func setCell(ds *model.Dataset, row, col int, c model.Cell) {
	for len(ds.Rows[row]) <= col {
		ds.Rows[row] = append(ds.Rows[row], model.EmptyCell())
	}
	ds.Rows[row][col] = c
}

// eventTree links the rows of a dataset from parent to children. Rows whose
// parent is not in the sheet are roots, like rows without a parent.
type eventTree struct {
	root []*eventNode
	byID map[string]*eventNode
}

type eventNode struct {
	row int
	id  string
	to  []*eventNode
}

// newEventTree builds the tree, or returns nil when the sheet has no
// eventID or parentEventID column.
func newEventTree(ds *model.Dataset) *eventTree {
	eventCol := ds.Column(check.EventIDField)
	parentCol := ds.Column(check.ParentEventIDField)
	if eventCol == -1 || parentCol == -1 {
		return nil
	}

	t := &eventTree{byID: make(map[string]*eventNode)}
	nodes := make([]*eventNode, len(ds.Rows))
	for i := range ds.Rows {
		id := text(ds.Cell(i, eventCol))
		if id == "" {
			continue
		}
		nodes[i] = &eventNode{row: i, id: id}
		// A duplicated identifier stays with its first row.
		if _, ok := t.byID[id]; !ok {
			t.byID[id] = nodes[i]
		}
	}

	t.wireup(ds, nodes, parentCol)
	return t
}

func (t *eventTree) wireup(ds *model.Dataset, nodes []*eventNode, parentCol int) {
	for i, node := range nodes {
		if node == nil {
			continue
		}
		parentID := text(ds.Cell(i, parentCol))
		parent, ok := t.byID[parentID]
		if parentID == "" || !ok || parent == node {
			t.root = append(t.root, node)
			continue
		}
		parent.to = append(parent.to, node)
	}
}

// walk calls visit for every parent and child pair, parents before their
// children so values pass down several generations. Nodes only reachable
// through a cycle are never visited.
func (t *eventTree) walk(visit func(parent, child int)) {
	seen := make(map[*eventNode]bool)
	var step func(node *eventNode)
	step = func(node *eventNode) {
		seen[node] = true
		for _, next := range node.to {
			if seen[next] {
				continue
			}
			visit(node.row, next.row)
			step(next)
		}
	}

	for _, node := range t.root {
		step(node)
	}
}

func text(c model.Cell) string {
	if check.IsEmpty(c) {
		return ""
	}
	return c.String()
}
