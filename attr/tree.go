package attr

import (
	"maps"
	"slices"
)

// A node is either an Attribute or a table row ([]LineAttribute).
type node = any

func child(n node, s Step) (node, bool) {
	switch s.kind {
	case stepField:
		c, ok := n.(Complex)
		if !ok {
			return nil, false
		}
		v, ok := c.Values[s.name]
		return v, ok && v != nil
	case stepRow:
		i := s.pos.Index()
		switch v := n.(type) {
		case Collection:
			if i >= 0 && i < len(v.Values) {
				return v.Values[i], true
			}
		case Table:
			if i >= 0 && i < len(v.Rows) {
				return v.Rows[i], true
			}
		}
	case stepColumn:
		row, ok := n.([]LineAttribute)
		if ok && s.column >= 0 && s.column < len(row) {
			return row[s.column], true
		}
	}
	return nil, false
}

func withChild(n node, s Step, c node) (node, bool) {
	switch s.kind {
	case stepField:
		cx, ok := n.(Complex)
		a, isAttr := c.(Attribute)
		if !ok || !isAttr {
			return nil, false
		}
		values := maps.Clone(cx.Values)
		values[s.name] = a
		return Complex{Fields: cx.Fields, Values: values}, true
	case stepRow:
		i := s.pos.Index()
		switch v := n.(type) {
		case Collection:
			a, ok := c.(Attribute)
			if !ok {
				return nil, false
			}
			values := slices.Clone(v.Values)
			values[i] = a
			return Collection{Element: v.Element, Values: values}, true
		case Table:
			row, ok := c.([]LineAttribute)
			if !ok {
				return nil, false
			}
			rows := slices.Clone(v.Rows)
			rows[i] = row
			return Table{Columns: v.Columns, Rows: rows}, true
		}
	case stepColumn:
		row, ok := n.([]LineAttribute)
		cell, isLine := c.(LineAttribute)
		if !ok || !isLine {
			return nil, false
		}
		row = slices.Clone(row)
		row[s.column] = cell
		return row, true
	}
	return nil, false
}

func resolve(root node, steps []Step) (node, bool) {
	cur := root
	for _, s := range steps {
		next, ok := child(cur, s)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// update rebuilds the spine from root to the addressed node, replacing the
// node with fn's result. Untouched subtrees are shared.
func update(n node, steps []Step, fn func(node) (node, bool)) (node, bool) {
	if len(steps) == 0 {
		return fn(n)
	}
	c, ok := child(n, steps[0])
	if !ok {
		return nil, false
	}
	nc, ok := update(c, steps[1:], fn)
	if !ok {
		return nil, false
	}
	return withChild(n, steps[0], nc)
}

func updateAttribute(root Attribute, addr Address, fn func(node) (node, bool)) (Attribute, bool) {
	n, ok := update(root, addr.steps, fn)
	if !ok {
		return root, false
	}
	a, ok := n.(Attribute)
	if !ok {
		return root, false
	}
	return a, true
}

// Lookup returns the attribute at addr. A table row is not an attribute,
// so addresses ending at a row report false; use Resolves for those.
func Lookup(root Attribute, addr Address) (Attribute, bool) {
	n, ok := resolve(root, addr.steps)
	if !ok {
		return nil, false
	}
	a, ok := n.(Attribute)
	return a, ok
}

// LookupRow returns the table row at addr.
func LookupRow(root Attribute, addr Address) ([]LineAttribute, bool) {
	n, ok := resolve(root, addr.steps)
	if !ok {
		return nil, false
	}
	row, ok := n.([]LineAttribute)
	return row, ok
}

// Resolves reports whether addr still names a node of root.
func Resolves(root Attribute, addr Address) bool {
	_, ok := resolve(root, addr.steps)
	return ok
}

// Count returns the number of elements or rows of the collection or table at addr.
func Count(root Attribute, addr Address) (int, bool) {
	a, _ := Lookup(root, addr)
	switch v := a.(type) {
	case Collection:
		return len(v.Values), true
	case Table:
		return len(v.Rows), true
	}
	return 0, false
}

// Replace returns a copy of root with the node at addr set to v.
func Replace(root Attribute, addr Address, v Attribute) (Attribute, bool) {
	return updateAttribute(root, addr, func(node) (node, bool) { return v, true })
}

// ReplaceRow returns a copy of root with the table row at addr set to row.
func ReplaceRow(root Attribute, addr Address, row []LineAttribute) (Attribute, bool) {
	return updateAttribute(root, addr, func(n node) (node, bool) {
		_, ok := n.([]LineAttribute)
		return row, ok
	})
}

// Append adds item to the end of the collection at addr.
func Append(root Attribute, addr Address, item Attribute) (Attribute, bool) {
	return updateAttribute(root, addr, func(n node) (node, bool) {
		c, ok := n.(Collection)
		if !ok || item == nil {
			return nil, false
		}
		return Collection{Element: c.Element, Values: append(slices.Clip(c.Values), item)}, true
	})
}

// AppendRow adds row to the end of the table at addr.
func AppendRow(root Attribute, addr Address, row []LineAttribute) (Attribute, bool) {
	return updateAttribute(root, addr, func(n node) (node, bool) {
		t, ok := n.(Table)
		if !ok {
			return nil, false
		}
		return Table{Columns: t.Columns, Rows: append(slices.Clip(t.Rows), row)}, true
	})
}

// Delete removes the elements or rows at offsets. Every offset must be in range.
func Delete(root Attribute, addr Address, offsets []int) (Attribute, bool) {
	return updateAttribute(root, addr, func(n node) (node, bool) {
		switch v := n.(type) {
		case Collection:
			if !inRange(offsets, len(v.Values)) {
				return nil, false
			}
			return Collection{Element: v.Element, Values: Remove(v.Values, offsets)}, true
		case Table:
			if !inRange(offsets, len(v.Rows)) {
				return nil, false
			}
			return Table{Columns: v.Columns, Rows: Remove(v.Rows, offsets)}, true
		}
		return nil, false
	})
}

// MoveItems reorders the elements or rows at addr with Move semantics.
func MoveItems(root Attribute, addr Address, from []int, to int) (Attribute, bool) {
	return updateAttribute(root, addr, func(n node) (node, bool) {
		switch v := n.(type) {
		case Collection:
			if !inRange(from, len(v.Values)) || to < 0 || to > len(v.Values) {
				return nil, false
			}
			return Collection{Element: v.Element, Values: Move(v.Values, from, to)}, true
		case Table:
			if !inRange(from, len(v.Rows)) || to < 0 || to > len(v.Rows) {
				return nil, false
			}
			return Table{Columns: v.Columns, Rows: Move(v.Rows, from, to)}, true
		}
		return nil, false
	})
}

func inRange(offsets []int, n int) bool {
	for _, o := range offsets {
		if o < 0 || o >= n {
			return false
		}
	}
	return true
}

// Offsets returns the sorted, de-duplicated offsets.
func Offsets(offsets []int) []int {
	out := slices.Clone(offsets)
	slices.Sort(out)
	return slices.Compact(out)
}

// Remove returns s without the elements at offsets. Offsets outside s are ignored.
func Remove[T any](s []T, offsets []int) []T {
	drop := make(map[int]bool, len(offsets))
	for _, o := range offsets {
		drop[o] = true
	}
	out := make([]T, 0, len(s))
	for i, v := range s {
		if !drop[i] {
			out = append(out, v)
		}
	}
	return out
}

// Move returns a copy of s with the elements at from taken out and
// reinserted, in their original order, before the element that was at
// index to. to == len(s) moves them to the end.
func Move[T any](s []T, from []int, to int) []T {
	offsets := Offsets(from)
	moved := make([]T, 0, len(offsets))
	before := 0
	for _, o := range offsets {
		if o < 0 || o >= len(s) {
			continue
		}
		moved = append(moved, s[o])
		if o < to {
			before++
		}
	}
	rest := Remove(s, offsets)
	dest := min(max(to-before, 0), len(rest))
	out := make([]T, 0, len(s))
	out = append(out, rest[:dest]...)
	out = append(out, moved...)
	return append(out, rest[dest:]...)
}

// Reorders reports whether Move with from and to changes the order of n
// items. Equal values in different rows still count as distinct rows.
func Reorders(n int, from []int, to int) bool {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return !slices.Equal(Move(idx, from, to), idx)
}
