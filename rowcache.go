package attrview

import (
	"maps"
	"slices"

	"github.com/kungfusheep/attrview/attr"
)

type rowEntry[C any] struct {
	pos   *attr.Position
	child C
}

// RowCache lazily builds one child per row of a backing collection and keeps
// each child's identity across structural edits of that collection. Only the
// child's position changes when other rows are inserted, deleted or moved.
//
// Children are built with a shared *attr.Position; the cache rewrites it on
// renumbering, and evicted rows are moved to -1 so stale children stop
// resolving.
//
// Appending to the backing collection needs no cache update: the new index
// was never cached.
type RowCache[C any] struct {
	build    func(pos *attr.Position) C
	rows     map[int]*rowEntry[C]
	selected map[*rowEntry[C]]struct{}
}

func NewRowCache[C any](build func(pos *attr.Position) C) *RowCache[C] {
	return &RowCache[C]{
		build:    build,
		rows:     map[int]*rowEntry[C]{},
		selected: map[*rowEntry[C]]struct{}{},
	}
}

func (c *RowCache[C]) entry(i int) *rowEntry[C] {
	if e, ok := c.rows[i]; ok {
		return e
	}
	e := &rowEntry[C]{pos: attr.NewPosition(i)}
	e.child = c.build(e.pos)
	c.rows[i] = e
	return e
}

// Row returns the child for row i, building it on first use.
func (c *RowCache[C]) Row(i int) C {
	return c.entry(i).child
}

// Cached returns the child for row i without building one.
func (c *RowCache[C]) Cached(i int) (C, bool) {
	e, ok := c.rows[i]
	if !ok {
		var zero C
		return zero, false
	}
	return e.child, true
}

// Len returns the number of cached rows.
func (c *RowCache[C]) Len() int { return len(c.rows) }

// Indices returns the cached row indices in order.
func (c *RowCache[C]) Indices() []int {
	return slices.Sorted(maps.Keys(c.rows))
}

// Delete renumbers the cache after the rows at offsets were removed from the
// backing collection, which now holds n rows. A surviving row at index i
// moves to i minus the number of deleted offsets below i.
func (c *RowCache[C]) Delete(offsets []int, n int) {
	c.ClearSelection()
	deleted := attr.Offsets(offsets)
	next := make(map[int]*rowEntry[C], len(c.rows))
	for i, e := range c.rows {
		below, gone := slices.BinarySearch(deleted, i)
		ni := i - below
		if gone || ni < 0 || ni >= n {
			e.pos.Set(-1)
			continue
		}
		e.pos.Set(ni)
		next[ni] = e
	}
	c.rows = next
}

// Move reorders the cache after the backing collection of n rows moved the
// rows at from to before the row originally at to, using the same
// attr.Move the data model uses.
func (c *RowCache[C]) Move(from []int, to int, n int) {
	c.ClearSelection()
	slots := make([]*rowEntry[C], max(n, 0))
	for i, e := range c.rows {
		if i < 0 || i >= n {
			e.pos.Set(-1)
			continue
		}
		slots[i] = e
	}
	slots = attr.Move(slots, from, to)
	c.rows = make(map[int]*rowEntry[C], len(c.rows))
	for i, e := range slots {
		if e != nil {
			e.pos.Set(i)
			c.rows[i] = e
		}
	}
}

// Reset evicts every cached row. Children are rebuilt on the next read.
func (c *RowCache[C]) Reset() {
	c.rows = map[int]*rowEntry[C]{}
	c.ClearSelection()
}

// Select marks row i as selected, building it if needed.
func (c *RowCache[C]) Select(i int) {
	c.selected[c.entry(i)] = struct{}{}
}

func (c *RowCache[C]) Deselect(i int) {
	if e, ok := c.rows[i]; ok {
		delete(c.selected, e)
	}
}

func (c *RowCache[C]) IsSelected(i int) bool {
	e, ok := c.rows[i]
	if !ok {
		return false
	}
	_, ok = c.selected[e]
	return ok
}

// Selected returns the current indices of the selected rows in order.
func (c *RowCache[C]) Selected() []int {
	out := make([]int, 0, len(c.selected))
	for e := range c.selected {
		out = append(out, e.pos.Index())
	}
	slices.Sort(out)
	return out
}

func (c *RowCache[C]) ClearSelection() {
	clear(c.selected)
}
