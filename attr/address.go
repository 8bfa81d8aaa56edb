package attr

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Position is a mutable row index. Every address built under one cached row
// shares the same Position, so renumbering the row moves all of them.
type Position struct {
	index int
}

func NewPosition(i int) *Position { return &Position{index: i} }

func (p *Position) Index() int { return p.index }

// Set moves the position to row i.
func (p *Position) Set(i int) { p.index = i }

type stepKind uint8

const (
	stepField stepKind = iota
	stepRow
	stepColumn
)

// Step is one hop of an Address.
type Step struct {
	kind   stepKind
	name   string
	pos    *Position
	column int
}

func (s Step) String() string {
	switch s.kind {
	case stepRow:
		return strconv.Itoa(s.pos.Index())
	case stepColumn:
		return strconv.Itoa(s.column)
	}
	return s.name
}

// Address locates a node inside an attribute tree: a field of a complex,
// a row of a collection or table, or a column of a table row.
// Addresses are immutable; the builder methods return extended copies.
type Address struct {
	steps []Step
}

// Root addresses the top-level complex attribute.
var Root = Address{}

func (a Address) with(s Step) Address {
	steps := make([]Step, len(a.steps), len(a.steps)+1)
	copy(steps, a.steps)
	return Address{steps: append(steps, s)}
}

// Field addresses the named field of a complex attribute.
func (a Address) Field(name string) Address {
	return a.with(Step{kind: stepField, name: name})
}

// Row addresses a collection element or table row by a shared position.
func (a Address) Row(pos *Position) Address {
	return a.with(Step{kind: stepRow, pos: pos})
}

// Index is shorthand for Row(NewPosition(i)).
func (a Address) Index(i int) Address {
	return a.Row(NewPosition(i))
}

// Column addresses one cell of a table row.
func (a Address) Column(c int) Address {
	return a.with(Step{kind: stepColumn, column: c})
}

// Join appends rel to a.
func (a Address) Join(rel Address) Address {
	return Address{steps: append(slices.Clip(a.steps), rel.steps...)}
}

// Len returns the number of steps.
func (a Address) Len() int { return len(a.steps) }

// Parent drops the last step.
func (a Address) Parent() Address {
	if len(a.steps) == 0 {
		return a
	}
	return Address{steps: a.steps[:len(a.steps)-1:len(a.steps)-1]}
}

// Last returns the final step's label, or "" at the root.
func (a Address) Last() string {
	if len(a.steps) == 0 {
		return ""
	}
	return a.steps[len(a.steps)-1].String()
}

// String renders the address with the current row positions, e.g. "/items/2/0".
// It is the key used by the error bag.
func (a Address) String() string {
	if len(a.steps) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range a.steps {
		b.WriteByte('/')
		b.WriteString(s.String())
	}
	return b.String()
}

// Key identifies the addressed node across row renumbering. Row steps are
// keyed by their Position cell instead of its index, so addresses built
// through the same cached row keep one key when the row moves.
func (a Address) Key() string {
	if len(a.steps) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range a.steps {
		b.WriteByte('/')
		if s.kind == stepRow {
			fmt.Fprintf(&b, "@%p", s.pos)
			continue
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// HasPrefix reports whether p is an ancestor of, or equal to, a.
func (a Address) HasPrefix(p Address) bool {
	ps, as := p.String(), a.String()
	if ps == "/" {
		return true
	}
	return as == ps || strings.HasPrefix(as, ps+"/")
}
