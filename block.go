package attrview

import "github.com/kungfusheep/attrview/attr"

// BlockAttributeViewModel dispatches a block attribute to the view model of
// its current kind, re-derived from the live value on every access.
type BlockAttributeViewModel struct {
	Notifier
	binding  Binding
	children map[attr.Kind]BlockChild
}

func NewBlockAttributeViewModel(b Binding) *BlockAttributeViewModel {
	return &BlockAttributeViewModel{binding: b, children: map[attr.Kind]BlockChild{}}
}

func (vm *BlockAttributeViewModel) Binding() Binding { return vm.binding }
func (vm *BlockAttributeViewModel) Label() string    { return vm.binding.Label() }
func (vm *BlockAttributeViewModel) IsValid() bool    { return vm.binding.IsValid() }
func (vm *BlockAttributeViewModel) Errors() []string { return vm.binding.Errors() }

func (vm *BlockAttributeViewModel) Kind() (attr.Kind, error) {
	return liveKind(vm.binding)
}

func (vm *BlockAttributeViewModel) child(k attr.Kind) (BlockChild, error) {
	if err := expectKind(vm.binding, k); err != nil {
		return nil, err
	}
	if c, ok := vm.children[k]; ok {
		return c, nil
	}
	var c BlockChild
	switch k {
	case attr.KindText:
		c = NewTextViewModel(vm.binding)
	case attr.KindCode:
		c = NewCodeViewModel(vm.binding)
	case attr.KindTable:
		c = NewTableViewModel(vm.binding)
	case attr.KindComplex:
		c = NewComplexViewModel(vm.binding)
	case attr.KindCollection:
		c = NewCollectionViewModel(vm.binding)
	case attr.KindEnumerableCollection:
		c = NewEnumerableCollectionViewModel(vm.binding)
	default:
		return nil, &KindError{Addr: vm.binding.Address().String(), Want: attr.KindText, Got: k}
	}
	vm.children[k] = c
	return c, nil
}

// Active returns the child for the live kind.
func (vm *BlockAttributeViewModel) Active() (BlockChild, error) {
	k, err := vm.Kind()
	if err != nil {
		return nil, err
	}
	return vm.child(k)
}

func (vm *BlockAttributeViewModel) Text() (*TextViewModel, error) {
	c, err := vm.child(attr.KindText)
	if err != nil {
		return nil, err
	}
	return c.(*TextViewModel), nil
}

func (vm *BlockAttributeViewModel) Code() (*CodeViewModel, error) {
	c, err := vm.child(attr.KindCode)
	if err != nil {
		return nil, err
	}
	return c.(*CodeViewModel), nil
}

func (vm *BlockAttributeViewModel) Table() (*TableViewModel, error) {
	c, err := vm.child(attr.KindTable)
	if err != nil {
		return nil, err
	}
	return c.(*TableViewModel), nil
}

func (vm *BlockAttributeViewModel) Complex() (*ComplexViewModel, error) {
	c, err := vm.child(attr.KindComplex)
	if err != nil {
		return nil, err
	}
	return c.(*ComplexViewModel), nil
}

func (vm *BlockAttributeViewModel) Collection() (*CollectionViewModel, error) {
	c, err := vm.child(attr.KindCollection)
	if err != nil {
		return nil, err
	}
	return c.(*CollectionViewModel), nil
}

func (vm *BlockAttributeViewModel) EnumerableCollection() (*EnumerableCollectionViewModel, error) {
	c, err := vm.child(attr.KindEnumerableCollection)
	if err != nil {
		return nil, err
	}
	return c.(*EnumerableCollectionViewModel), nil
}

// Send notifies subscribers, then forwards to the cached child of the live
// kind and evicts the rest.
func (vm *BlockAttributeViewModel) Send() {
	vm.WillChange()
	k, err := vm.Kind()
	for kind, c := range vm.children {
		if err != nil || kind != k {
			delete(vm.children, kind)
			continue
		}
		c.Send()
	}
}

func (vm *BlockAttributeViewModel) Cached(k attr.Kind) (BlockChild, bool) {
	c, ok := vm.children[k]
	return c, ok
}

// AttributeViewModel is the entry point for any attribute: it dispatches to
// a line or block view model according to the live value.
type AttributeViewModel struct {
	Notifier
	binding Binding
	line    *LineAttributeViewModel
	block   *BlockAttributeViewModel
}

func NewAttributeViewModel(b Binding) *AttributeViewModel {
	return &AttributeViewModel{binding: b}
}

func (vm *AttributeViewModel) Binding() Binding { return vm.binding }
func (vm *AttributeViewModel) Label() string    { return vm.binding.Label() }
func (vm *AttributeViewModel) IsValid() bool    { return vm.binding.IsValid() }
func (vm *AttributeViewModel) Errors() []string { return vm.binding.Errors() }

// Index returns the row this view model is bound to, or -1 outside a
// collection.
func (vm *AttributeViewModel) Index() int {
	if i, ok := vm.binding.Index(); ok {
		return i
	}
	return -1
}

func (vm *AttributeViewModel) Kind() (attr.Kind, error) {
	return liveKind(vm.binding)
}

// Attribute returns the live value.
func (vm *AttributeViewModel) Attribute() (attr.Attribute, bool) {
	return vm.binding.Attribute()
}

// IsLine reports whether the live value is a line attribute.
func (vm *AttributeViewModel) IsLine() bool {
	k, err := vm.Kind()
	return err == nil && k.IsLine()
}

func (vm *AttributeViewModel) Line() (*LineAttributeViewModel, error) {
	k, err := vm.Kind()
	if err != nil {
		return nil, err
	}
	if !k.IsLine() {
		return nil, &KindError{Addr: vm.binding.Address().String(), Want: attr.KindLine, Got: k}
	}
	if vm.line == nil {
		vm.line = NewLineAttributeViewModel(vm.binding)
	}
	return vm.line, nil
}

func (vm *AttributeViewModel) Block() (*BlockAttributeViewModel, error) {
	k, err := vm.Kind()
	if err != nil {
		return nil, err
	}
	if k.IsLine() {
		return nil, &KindError{Addr: vm.binding.Address().String(), Want: attr.KindText, Got: k}
	}
	if vm.block == nil {
		vm.block = NewBlockAttributeViewModel(vm.binding)
	}
	return vm.block, nil
}

// Send notifies subscribers and forwards to the branch matching the live
// value; the other branch is dropped.
func (vm *AttributeViewModel) Send() {
	vm.WillChange()
	k, err := vm.Kind()
	switch {
	case err != nil:
		vm.line, vm.block = nil, nil
	case k.IsLine():
		vm.block = nil
		if vm.line != nil {
			vm.line.Send()
		}
	default:
		vm.line = nil
		if vm.block != nil {
			vm.block.Send()
		}
	}
}
