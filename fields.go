package attrview

import (
	"slices"

	"github.com/kungfusheep/attrview/attr"
)

// field is the state shared by the leaf view models: a binding, a typed
// value over it, and the notifier the value reports to.
type field[T any] struct {
	Notifier
	binding Binding
	value   *Value[T]
}

func (f *field[T]) init(b Binding, lens attr.Lens[T], def T) {
	f.binding = b
	f.value = BindValue(b, lens, def, Sinks{&f.Notifier, b.Sink()})
}

// Value returns the current value, or the default when the binding no
// longer resolves.
func (f *field[T]) Value() T { return f.value.Get() }

// Set writes v through the root's validated modify.
func (f *field[T]) Set(v T) attr.Result { return f.value.Set(v) }

func (f *field[T]) Errors() []string      { return f.value.Errors() }
func (f *field[T]) IsValid() bool         { return f.value.IsValid() }
func (f *field[T]) Binding() Binding      { return f.binding }
func (f *field[T]) Address() attr.Address { return f.binding.Address() }
func (f *field[T]) Label() string         { return f.binding.Label() }
func (f *field[T]) Send()                 { f.WillChange() }

// LineChild is the view model of one line-attribute kind. The set of
// implementations is closed: BoolViewModel, IntegerViewModel,
// FloatViewModel, ExpressionViewModel, EnumeratedViewModel, LineViewModel.
type LineChild interface {
	Send()
	Errors() []string
	IsValid() bool
	lineChild()
}

// BlockChild is the view model of one block-attribute kind: TextViewModel,
// CodeViewModel, TableViewModel, ComplexViewModel, CollectionViewModel or
// EnumerableCollectionViewModel.
type BlockChild interface {
	Send()
	Errors() []string
	IsValid() bool
	blockChild()
}

type BoolViewModel struct{ field[bool] }

func NewBoolViewModel(b Binding) *BoolViewModel {
	vm := &BoolViewModel{}
	vm.init(b, attr.BoolLens, false)
	return vm
}

func (vm *BoolViewModel) Toggle() attr.Result { return vm.Set(!vm.Value()) }

type IntegerViewModel struct{ field[int] }

func NewIntegerViewModel(b Binding) *IntegerViewModel {
	vm := &IntegerViewModel{}
	vm.init(b, attr.IntegerLens, 0)
	return vm
}

func (vm *IntegerViewModel) Step(delta int) attr.Result { return vm.Set(vm.Value() + delta) }

type FloatViewModel struct{ field[float64] }

func NewFloatViewModel(b Binding) *FloatViewModel {
	vm := &FloatViewModel{}
	vm.init(b, attr.FloatLens, 0)
	return vm
}

func (vm *FloatViewModel) Step(delta float64) attr.Result { return vm.Set(vm.Value() + delta) }

type ExpressionViewModel struct{ field[string] }

func NewExpressionViewModel(b Binding) *ExpressionViewModel {
	vm := &ExpressionViewModel{}
	vm.init(b, attr.ExpressionLens, "")
	return vm
}

func (vm *ExpressionViewModel) live() attr.Expression {
	a, _ := vm.binding.Attribute()
	e, _ := a.(attr.Expression)
	return e
}

// Language is the expression's language, e.g. attr.LanguageHCL.
func (vm *ExpressionViewModel) Language() string { return vm.live().Language }

// Preview evaluates a constant expression; see attr.Preview.
func (vm *ExpressionViewModel) Preview() (string, bool) { return attr.Preview(vm.live()) }

type EnumeratedViewModel struct{ field[string] }

func NewEnumeratedViewModel(b Binding) *EnumeratedViewModel {
	vm := &EnumeratedViewModel{}
	vm.init(b, attr.EnumeratedLens, "")
	return vm
}

// ValidValues returns the allowed values, sorted for display.
func (vm *EnumeratedViewModel) ValidValues() []string {
	a, _ := vm.binding.Attribute()
	e, _ := a.(attr.Enumerated)
	return attr.SortedValues(e.ValidValues)
}

// Cycle selects the valid value delta places from the current one,
// wrapping around. A current value outside the set cycles from the start.
func (vm *EnumeratedViewModel) Cycle(delta int) attr.Result {
	valid := vm.ValidValues()
	if len(valid) == 0 {
		return attr.Unchanged
	}
	i := slices.Index(valid, vm.Value())
	if i < 0 {
		i = 0
		if delta > 0 {
			delta--
		}
	}
	n := len(valid)
	return vm.Set(valid[((i+delta)%n+n)%n])
}

type LineViewModel struct{ field[string] }

func NewLineViewModel(b Binding) *LineViewModel {
	vm := &LineViewModel{}
	vm.init(b, attr.LineLens, "")
	return vm
}

type TextViewModel struct{ field[string] }

func NewTextViewModel(b Binding) *TextViewModel {
	vm := &TextViewModel{}
	vm.init(b, attr.TextLens, "")
	return vm
}

type CodeViewModel struct{ field[string] }

func NewCodeViewModel(b Binding) *CodeViewModel {
	vm := &CodeViewModel{}
	vm.init(b, attr.CodeLens, "")
	return vm
}

func (vm *CodeViewModel) Language() string {
	a, _ := vm.binding.Attribute()
	c, _ := a.(attr.Code)
	return c.Language
}

// EnumerableCollectionViewModel edits a set of strings drawn from a fixed
// valid set.
type EnumerableCollectionViewModel struct{ field[[]string] }

func NewEnumerableCollectionViewModel(b Binding) *EnumerableCollectionViewModel {
	vm := &EnumerableCollectionViewModel{}
	vm.init(b, attr.EnumerableLens, nil)
	return vm
}

func (vm *EnumerableCollectionViewModel) ValidValues() []string {
	a, _ := vm.binding.Attribute()
	e, _ := a.(attr.EnumerableCollection)
	return attr.SortedValues(e.ValidValues)
}

func (vm *EnumerableCollectionViewModel) Contains(v string) bool {
	return slices.Contains(vm.Value(), v)
}

// Toggle adds or removes v.
func (vm *EnumerableCollectionViewModel) Toggle(v string) attr.Result {
	set := attr.EnumerableCollection{Values: vm.Value()}
	return vm.Set(set.With(v, !vm.Contains(v)).Values)
}

func (*BoolViewModel) lineChild()       {}
func (*IntegerViewModel) lineChild()    {}
func (*FloatViewModel) lineChild()      {}
func (*ExpressionViewModel) lineChild() {}
func (*EnumeratedViewModel) lineChild() {}
func (*LineViewModel) lineChild()       {}

func (*TextViewModel) blockChild()                 {}
func (*CodeViewModel) blockChild()                 {}
func (*EnumerableCollectionViewModel) blockChild() {}
