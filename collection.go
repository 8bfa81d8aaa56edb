package attrview

import "github.com/kungfusheep/attrview/attr"

// CollectionViewModel exposes the elements of a collection attribute. Element
// view models are cached per row and keep their identity across appends,
// deletions and moves of other elements.
type CollectionViewModel struct {
	Notifier
	binding Binding
	rows    *RowCache[*AttributeViewModel]
	draft   *AttributeViewModel
	pending Ref[attr.Attribute]
}

func NewCollectionViewModel(b Binding) *CollectionViewModel {
	vm := &CollectionViewModel{binding: b}
	vm.rows = NewRowCache(func(pos *attr.Position) *AttributeViewModel {
		return NewAttributeViewModel(vm.binding.Row(pos))
	})
	return vm
}

func (vm *CollectionViewModel) Binding() Binding { return vm.binding }
func (vm *CollectionViewModel) Label() string    { return vm.binding.Label() }
func (vm *CollectionViewModel) IsValid() bool    { return vm.binding.IsValid() }
func (vm *CollectionViewModel) Errors() []string { return vm.binding.Errors() }
func (vm *CollectionViewModel) Len() int         { return vm.binding.Count() }

// ElementType is the live element type.
func (vm *CollectionViewModel) ElementType() attr.Type {
	a, _ := vm.binding.Attribute()
	c, _ := a.(attr.Collection)
	return c.Element
}

// Element returns the view model for element i.
func (vm *CollectionViewModel) Element(i int) *AttributeViewModel {
	return vm.rows.Row(i)
}

// Cached returns element i's view model only if one was already built.
func (vm *CollectionViewModel) Cached(i int) (*AttributeViewModel, bool) {
	return vm.rows.Cached(i)
}

func (vm *CollectionViewModel) Elements() []*AttributeViewModel {
	n := vm.Len()
	out := make([]*AttributeViewModel, n)
	for i := range n {
		out[i] = vm.rows.Row(i)
	}
	return out
}

func (vm *CollectionViewModel) changed(r attr.Result) attr.Result {
	notify(r, &vm.Notifier, vm.binding.Sink())
	return r
}

// AddElement appends a to the collection. Cached elements are unaffected.
func (vm *CollectionViewModel) AddElement(a attr.Attribute) attr.Result {
	return vm.changed(vm.binding.AddItem(a))
}

// AddDefault appends the element type's default value.
func (vm *CollectionViewModel) AddDefault() attr.Result {
	return vm.AddElement(vm.ElementType().Default())
}

// DeleteElements removes the elements at offsets. The selection is cleared
// and surviving element view models are renumbered.
func (vm *CollectionViewModel) DeleteElements(offsets []int) attr.Result {
	vm.rows.ClearSelection()
	r := vm.binding.DeleteItems(offsets)
	if r == attr.Changed {
		vm.rows.Delete(offsets, vm.Len())
	}
	return vm.changed(r)
}

// MoveElements moves the elements at from to before the element currently
// at to. Element view models move with their elements.
func (vm *CollectionViewModel) MoveElements(from []int, to int) attr.Result {
	vm.rows.ClearSelection()
	r := vm.binding.MoveItems(from, to)
	if r == attr.Changed {
		vm.rows.Move(from, to, vm.Len())
	}
	return vm.changed(r)
}

func (vm *CollectionViewModel) Select(i int)          { vm.rows.Select(i) }
func (vm *CollectionViewModel) Deselect(i int)        { vm.rows.Deselect(i) }
func (vm *CollectionViewModel) IsSelected(i int) bool { return vm.rows.IsSelected(i) }
func (vm *CollectionViewModel) Selected() []int       { return vm.rows.Selected() }

// DeleteSelected deletes every selected element.
func (vm *CollectionViewModel) DeleteSelected() attr.Result {
	return vm.DeleteElements(vm.Selected())
}

// Draft returns a detached element of the current element type that can be
// edited before CommitDraft appends it.
func (vm *CollectionViewModel) Draft() *AttributeViewModel {
	if vm.draft == nil {
		vm.pending = Cell(vm.ElementType().Default())
		vm.draft = NewAttributeViewModel(BindRef(vm.pending, vm.binding.Sink()))
	}
	return vm.draft
}

// CommitDraft appends the draft and starts a fresh one.
func (vm *CollectionViewModel) CommitDraft() attr.Result {
	if vm.draft == nil {
		return vm.AddDefault()
	}
	r := vm.AddElement(vm.pending.Get())
	if r != attr.Failed {
		vm.draft = nil
	}
	return r
}

// Send notifies subscribers and evicts every cached element, so the next
// read rebuilds them from the live collection.
func (vm *CollectionViewModel) Send() {
	vm.WillChange()
	vm.rows.Reset()
}

func (*CollectionViewModel) blockChild() {}
