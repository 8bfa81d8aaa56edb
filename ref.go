package attrview

// Ref is a get/set view onto storage owned elsewhere: a field of a draft,
// or a local cell. A Ref never owns what it points at.
type Ref[T any] struct {
	get func() T
	set func(T)
}

func NewRef[T any](get func() T, set func(T)) Ref[T] {
	return Ref[T]{get: get, set: set}
}

// Cell allocates storage for v and returns a Ref onto it.
func Cell[T any](v T) Ref[T] {
	p := &v
	return Ref[T]{
		get: func() T { return *p },
		set: func(x T) { *p = x },
	}
}

func (r Ref[T]) Get() T  { return r.get() }
func (r Ref[T]) Set(v T) { r.set(v) }

// Const drops the setter.
func (r Ref[T]) Const() ConstRef[T] {
	return ConstRef[T]{get: r.get}
}

// ConstRef is a read-only Ref.
type ConstRef[T any] struct {
	get func() T
}

func NewConstRef[T any](get func() T) ConstRef[T] {
	return ConstRef[T]{get: get}
}

// Const returns a ConstRef that always yields v.
func Const[T any](v T) ConstRef[T] {
	return ConstRef[T]{get: func() T { return v }}
}

func (r ConstRef[T]) Get() T {
	if r.get == nil {
		var zero T
		return zero
	}
	return r.get()
}
