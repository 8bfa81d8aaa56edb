package attrview

import "github.com/kungfusheep/attrview/attr"

// LineAttributeViewModel dispatches a line attribute to the view model of
// its current kind. The kind is read from the live value on every access,
// so a value that switched kind is never served by a stale child.
type LineAttributeViewModel struct {
	Notifier
	binding  Binding
	children map[attr.Kind]LineChild
}

func NewLineAttributeViewModel(b Binding) *LineAttributeViewModel {
	return &LineAttributeViewModel{binding: b, children: map[attr.Kind]LineChild{}}
}

func (vm *LineAttributeViewModel) Binding() Binding { return vm.binding }
func (vm *LineAttributeViewModel) Label() string    { return vm.binding.Label() }
func (vm *LineAttributeViewModel) IsValid() bool    { return vm.binding.IsValid() }
func (vm *LineAttributeViewModel) Errors() []string { return vm.binding.Errors() }

// Kind returns the live kind.
func (vm *LineAttributeViewModel) Kind() (attr.Kind, error) {
	return liveKind(vm.binding)
}

func (vm *LineAttributeViewModel) child(k attr.Kind) (LineChild, error) {
	if err := expectKind(vm.binding, k); err != nil {
		return nil, err
	}
	if c, ok := vm.children[k]; ok {
		return c, nil
	}
	var c LineChild
	switch k {
	case attr.KindBool:
		c = NewBoolViewModel(vm.binding)
	case attr.KindInteger:
		c = NewIntegerViewModel(vm.binding)
	case attr.KindFloat:
		c = NewFloatViewModel(vm.binding)
	case attr.KindExpression:
		c = NewExpressionViewModel(vm.binding)
	case attr.KindEnumerated:
		c = NewEnumeratedViewModel(vm.binding)
	case attr.KindLine:
		c = NewLineViewModel(vm.binding)
	default:
		return nil, &KindError{Addr: vm.binding.Address().String(), Want: attr.KindLine, Got: k}
	}
	vm.children[k] = c
	return c, nil
}

// Active returns the child for the live kind. Switch on its concrete type.
func (vm *LineAttributeViewModel) Active() (LineChild, error) {
	k, err := vm.Kind()
	if err != nil {
		return nil, err
	}
	return vm.child(k)
}

func (vm *LineAttributeViewModel) Bool() (*BoolViewModel, error) {
	c, err := vm.child(attr.KindBool)
	if err != nil {
		return nil, err
	}
	return c.(*BoolViewModel), nil
}

func (vm *LineAttributeViewModel) Integer() (*IntegerViewModel, error) {
	c, err := vm.child(attr.KindInteger)
	if err != nil {
		return nil, err
	}
	return c.(*IntegerViewModel), nil
}

func (vm *LineAttributeViewModel) Float() (*FloatViewModel, error) {
	c, err := vm.child(attr.KindFloat)
	if err != nil {
		return nil, err
	}
	return c.(*FloatViewModel), nil
}

func (vm *LineAttributeViewModel) Expression() (*ExpressionViewModel, error) {
	c, err := vm.child(attr.KindExpression)
	if err != nil {
		return nil, err
	}
	return c.(*ExpressionViewModel), nil
}

func (vm *LineAttributeViewModel) Enumerated() (*EnumeratedViewModel, error) {
	c, err := vm.child(attr.KindEnumerated)
	if err != nil {
		return nil, err
	}
	return c.(*EnumeratedViewModel), nil
}

func (vm *LineAttributeViewModel) Line() (*LineViewModel, error) {
	c, err := vm.child(attr.KindLine)
	if err != nil {
		return nil, err
	}
	return c.(*LineViewModel), nil
}

// Send notifies subscribers, then forwards to the cached child of the live
// kind. Children of any other kind are evicted.
func (vm *LineAttributeViewModel) Send() {
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

// Cached returns the cached child of kind k, if one was built.
func (vm *LineAttributeViewModel) Cached(k attr.Kind) (LineChild, bool) {
	c, ok := vm.children[k]
	return c, ok
}
