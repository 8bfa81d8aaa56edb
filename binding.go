package attrview

import "github.com/kungfusheep/attrview/attr"

// Binding locates the attribute a view model renders. It either addresses
// into a root Modifiable (the document being edited), or into a detached
// draft held by a Ref, such as a new collection element before it is added.
//
// Bindings compose like addresses: Field, Row and Column return a binding
// one step deeper in the same root or draft.
type Binding struct {
	root  attr.Modifiable
	draft *Ref[attr.Attribute]
	addr  attr.Address
	pos   *attr.Position
	sink  Sink
}

// Bind addresses addr inside root. sink, if set, hears about every edit made
// through view models built on this binding.
func Bind(root attr.Modifiable, addr attr.Address, sink Sink) Binding {
	return Binding{root: root, addr: addr, sink: sink}
}

// BindRef addresses the root of a draft attribute.
func BindRef(draft Ref[attr.Attribute], sink Sink) Binding {
	return Binding{draft: &draft, addr: attr.Root, sink: sink}
}

func (b Binding) Field(name string) Binding {
	b.addr, b.pos = b.addr.Field(name), nil
	return b
}

// Row addresses a collection element or table row through a shared
// position, so the binding follows the row when it is renumbered.
func (b Binding) Row(pos *attr.Position) Binding {
	b.addr, b.pos = b.addr.Row(pos), pos
	return b
}

func (b Binding) Column(c int) Binding {
	b.addr, b.pos = b.addr.Column(c), nil
	return b
}

// WithSink returns b reporting to sink instead.
func (b Binding) WithSink(sink Sink) Binding {
	b.sink = sink
	return b
}

func (b Binding) Address() attr.Address { return b.addr }
func (b Binding) Sink() Sink            { return b.sink }
func (b Binding) IsDraft() bool         { return b.draft != nil }

// Index returns the current row index when the binding ends at a row.
func (b Binding) Index() (int, bool) {
	if b.pos == nil {
		return 0, false
	}
	return b.pos.Index(), true
}

// Label is the last address step: a field name or row index.
func (b Binding) Label() string {
	return b.addr.Last()
}

func (b Binding) current() attr.Attribute {
	return b.draft.Get()
}

// Attribute returns the live attribute at the binding.
func (b Binding) Attribute() (attr.Attribute, bool) {
	if b.draft != nil {
		return attr.Lookup(b.current(), b.addr)
	}
	return b.root.Lookup(b.addr)
}

// TableRow returns the live table row at the binding.
func (b Binding) TableRow() ([]attr.LineAttribute, bool) {
	if b.draft != nil {
		return attr.LookupRow(b.current(), b.addr)
	}
	if d, ok := b.root.(interface {
		LookupRow(attr.Address) ([]attr.LineAttribute, bool)
	}); ok {
		return d.LookupRow(b.addr)
	}
	var row []attr.LineAttribute
	for c := 0; ; c++ {
		cell, ok := b.root.Lookup(b.addr.Column(c))
		if !ok {
			break
		}
		l, ok := cell.(attr.LineAttribute)
		if !ok {
			break
		}
		row = append(row, l)
	}
	return row, b.root.Resolves(b.addr)
}

// IsValid reports whether the binding still resolves. It turns false when
// an ancestor collection shrank past this binding's row.
func (b Binding) IsValid() bool {
	if b.draft != nil {
		return attr.Resolves(b.current(), b.addr)
	}
	return b.root.Resolves(b.addr)
}

// Errors returns the validation messages for exactly this address.
func (b Binding) Errors() []string {
	if b.draft != nil {
		return attr.Validate(b.current()).Errors(b.addr)
	}
	return b.root.Errors(b.addr)
}

// Count returns the number of elements or rows, or 0 if the binding does not
// address a collection or table.
func (b Binding) Count() int {
	a, ok := b.Attribute()
	if !ok {
		return 0
	}
	switch v := a.(type) {
	case attr.Collection:
		return len(v.Values)
	case attr.Table:
		return len(v.Rows)
	}
	return 0
}

// Modify replaces the attribute at the binding.
func (b Binding) Modify(v attr.Attribute) attr.Result {
	if b.draft == nil {
		return b.root.Modify(b.addr, v)
	}
	cur, ok := attr.Lookup(b.current(), b.addr)
	if !ok {
		return attr.Failed
	}
	if attr.Equal(cur, v) {
		return attr.Unchanged
	}
	next, ok := attr.Replace(b.current(), b.addr, v)
	if !ok {
		return attr.Failed
	}
	b.draft.Set(next)
	if len(attr.Validate(next).Within(b.addr)) > 0 {
		return attr.Failed
	}
	return attr.Changed
}

func (b Binding) AddItem(item attr.Attribute) attr.Result {
	if b.draft == nil {
		return b.root.AddItem(b.addr, item)
	}
	return b.edit(func(root attr.Attribute) (attr.Attribute, bool) {
		return attr.Append(root, b.addr, item)
	})
}

func (b Binding) AddRow(row []attr.LineAttribute) attr.Result {
	if b.draft == nil {
		return b.root.AddRow(b.addr, row)
	}
	return b.edit(func(root attr.Attribute) (attr.Attribute, bool) {
		return attr.AppendRow(root, b.addr, row)
	})
}

func (b Binding) DeleteItems(offsets []int) attr.Result {
	if len(offsets) == 0 {
		return attr.Unchanged
	}
	if b.draft == nil {
		return b.root.DeleteItems(b.addr, offsets)
	}
	return b.edit(func(root attr.Attribute) (attr.Attribute, bool) {
		return attr.Delete(root, b.addr, offsets)
	})
}

func (b Binding) MoveItems(from []int, to int) attr.Result {
	if len(from) == 0 {
		return attr.Unchanged
	}
	if b.draft == nil {
		return b.root.MoveItems(b.addr, from, to)
	}
	cur := b.current()
	next, ok := attr.MoveItems(cur, b.addr, from, to)
	if !ok {
		return attr.Failed
	}
	if n, _ := attr.Count(cur, b.addr); !attr.Reorders(n, from, to) {
		return attr.Unchanged
	}
	b.draft.Set(next)
	return attr.Changed
}

func (b Binding) edit(fn func(attr.Attribute) (attr.Attribute, bool)) attr.Result {
	cur := b.current()
	next, ok := fn(cur)
	if !ok {
		return attr.Failed
	}
	if attr.Equal(cur, next) {
		return attr.Unchanged
	}
	b.draft.Set(next)
	return attr.Changed
}

// notify forwards changed and failed results to the sinks.
func notify(r attr.Result, sinks ...Sink) {
	if r == attr.Unchanged {
		return
	}
	Sinks(sinks).WillChange()
}
