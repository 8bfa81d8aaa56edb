package attrview

import "github.com/kungfusheep/attrview/attr"

// Value is a typed, observable handle on one attribute value. It reads and
// writes either through a path into a root Modifiable, or through a Ref.
//
// A path-backed value that no longer resolves reads as its default; check
// IsValid to tell the two apart.
type Value[T any] struct {
	get    func() (T, bool)
	set    func(T) attr.Result
	errors func() []string
	def    T
	sink   Sink
}

// PathValue reads and writes p inside root. Changed and failed writes are
// reported to sink so validation messages re-render.
func PathValue[T any](root attr.Modifiable, p attr.Path[T], def T, sink Sink) *Value[T] {
	return &Value[T]{
		get:    func() (T, bool) { return attr.Get(root, p) },
		set:    func(v T) attr.Result { return attr.Modify(root, p, v) },
		errors: func() []string { return root.Errors(p.Address) },
		def:    def,
		sink:   sink,
	}
}

// RefValue reads and writes ref directly, with errors supplied by errs.
func RefValue[T any](ref Ref[T], errs ConstRef[[]string]) *Value[T] {
	return &Value[T]{
		get: func() (T, bool) { return ref.Get(), true },
		set: func(v T) attr.Result {
			ref.Set(v)
			return attr.Changed
		},
		errors: errs.Get,
	}
}

// BindValue projects lens out of the attribute at b, in whichever mode b
// was built.
func BindValue[T any](b Binding, lens attr.Lens[T], def T, sink Sink) *Value[T] {
	if !b.IsDraft() {
		return PathValue(b.root, attr.PathOf(b.addr, lens), def, sink)
	}
	return &Value[T]{
		get: func() (T, bool) {
			a, ok := b.Attribute()
			if !ok {
				var zero T
				return zero, false
			}
			return lens.Get(a)
		},
		set: func(v T) attr.Result {
			a, ok := b.Attribute()
			if !ok {
				return attr.Failed
			}
			next, ok := lens.Put(a, v)
			if !ok {
				return attr.Failed
			}
			return b.Modify(next)
		},
		errors: b.Errors,
		def:    def,
		sink:   sink,
	}
}

// Get returns the current value, or the default if it does not resolve.
func (v *Value[T]) Get() T {
	x, ok := v.get()
	if !ok {
		return v.def
	}
	return x
}

// Set writes x. The sink hears about changed and failed writes, not
// unchanged ones.
func (v *Value[T]) Set(x T) attr.Result {
	r := v.set(x)
	notify(r, v.sink)
	return r
}

func (v *Value[T]) IsValid() bool {
	_, ok := v.get()
	return ok
}

func (v *Value[T]) Errors() []string {
	if v.errors == nil {
		return nil
	}
	return v.errors()
}
