package attrview

import (
	"fmt"

	"github.com/kungfusheep/attrview/attr"
)

// ComplexViewModel exposes the named fields of a complex attribute, one
// lazily built AttributeViewModel per field.
type ComplexViewModel struct {
	Notifier
	binding  Binding
	children map[string]*AttributeViewModel
}

func NewComplexViewModel(b Binding) *ComplexViewModel {
	return &ComplexViewModel{binding: b, children: map[string]*AttributeViewModel{}}
}

// NewRootViewModel binds the top-level complex of root. Every edit made
// below it is also reported to sink.
func NewRootViewModel(root attr.Modifiable, sink Sink) *ComplexViewModel {
	return NewComplexViewModel(Bind(root, attr.Root, sink))
}

func (vm *ComplexViewModel) Binding() Binding { return vm.binding }
func (vm *ComplexViewModel) Label() string    { return vm.binding.Label() }
func (vm *ComplexViewModel) IsValid() bool    { return vm.binding.IsValid() }
func (vm *ComplexViewModel) Errors() []string { return vm.binding.Errors() }

// Fields returns the live schema, in declaration order.
func (vm *ComplexViewModel) Fields() []attr.Field {
	a, _ := vm.binding.Attribute()
	c, _ := a.(attr.Complex)
	return c.Fields
}

func (vm *ComplexViewModel) hasField(name string) bool {
	for _, f := range vm.Fields() {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Field returns the view model for the named field.
func (vm *ComplexViewModel) Field(name string) (*AttributeViewModel, error) {
	if c, ok := vm.children[name]; ok {
		return c, nil
	}
	if !vm.hasField(name) {
		return nil, fmt.Errorf("%s: field %q: %w", vm.binding.Address(), name, ErrNoField)
	}
	c := NewAttributeViewModel(vm.binding.Field(name))
	vm.children[name] = c
	return c, nil
}

// Send notifies subscribers and forwards to the fields the live schema still
// declares. Cached fields that disappeared are evicted.
func (vm *ComplexViewModel) Send() {
	vm.WillChange()
	for name, c := range vm.children {
		if !vm.hasField(name) {
			delete(vm.children, name)
			continue
		}
		c.Send()
	}
}

func (*ComplexViewModel) blockChild() {}
