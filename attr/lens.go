package attr

// Lens projects a typed value out of an attribute and writes it back.
// Put returns false when the attribute is not of the lens's kind.
type Lens[T any] struct {
	Get func(Attribute) (T, bool)
	Put func(Attribute, T) (Attribute, bool)
}

// Identity is the lens over the attribute itself.
var Identity = Lens[Attribute]{
	Get: func(a Attribute) (Attribute, bool) { return a, a != nil },
	Put: func(_ Attribute, v Attribute) (Attribute, bool) { return v, v != nil },
}

var BoolLens = Lens[bool]{
	Get: func(a Attribute) (bool, bool) {
		v, ok := a.(Bool)
		return bool(v), ok
	},
	Put: func(a Attribute, v bool) (Attribute, bool) {
		_, ok := a.(Bool)
		return Bool(v), ok
	},
}

var IntegerLens = Lens[int]{
	Get: func(a Attribute) (int, bool) {
		v, ok := a.(Integer)
		return int(v), ok
	},
	Put: func(a Attribute, v int) (Attribute, bool) {
		_, ok := a.(Integer)
		return Integer(v), ok
	},
}

var FloatLens = Lens[float64]{
	Get: func(a Attribute) (float64, bool) {
		v, ok := a.(Float)
		return float64(v), ok
	},
	Put: func(a Attribute, v float64) (Attribute, bool) {
		_, ok := a.(Float)
		return Float(v), ok
	},
}

var LineLens = Lens[string]{
	Get: func(a Attribute) (string, bool) {
		v, ok := a.(Line)
		return string(v), ok
	},
	Put: func(a Attribute, v string) (Attribute, bool) {
		_, ok := a.(Line)
		return Line(v), ok
	},
}

// ExpressionLens reads and writes the expression source, keeping its language.
var ExpressionLens = Lens[string]{
	Get: func(a Attribute) (string, bool) {
		v, ok := a.(Expression)
		return v.Value, ok
	},
	Put: func(a Attribute, v string) (Attribute, bool) {
		e, ok := a.(Expression)
		e.Value = v
		return e, ok
	},
}

// EnumeratedLens reads and writes the selected value, keeping the valid set.
var EnumeratedLens = Lens[string]{
	Get: func(a Attribute) (string, bool) {
		v, ok := a.(Enumerated)
		return v.Value, ok
	},
	Put: func(a Attribute, v string) (Attribute, bool) {
		e, ok := a.(Enumerated)
		e.Value = v
		return e, ok
	},
}

var TextLens = Lens[string]{
	Get: func(a Attribute) (string, bool) {
		v, ok := a.(Text)
		return string(v), ok
	},
	Put: func(a Attribute, v string) (Attribute, bool) {
		_, ok := a.(Text)
		return Text(v), ok
	},
}

var CodeLens = Lens[string]{
	Get: func(a Attribute) (string, bool) {
		v, ok := a.(Code)
		return v.Value, ok
	},
	Put: func(a Attribute, v string) (Attribute, bool) {
		c, ok := a.(Code)
		c.Value = v
		return c, ok
	},
}

// EnumerableLens reads and writes the member list of an enumerable collection.
var EnumerableLens = Lens[[]string]{
	Get: func(a Attribute) ([]string, bool) {
		v, ok := a.(EnumerableCollection)
		return v.Values, ok
	},
	Put: func(a Attribute, v []string) (Attribute, bool) {
		e, ok := a.(EnumerableCollection)
		e.Values = v
		return e, ok
	},
}

// Path is a typed address: where a value lives, and how to read and write it there.
type Path[T any] struct {
	Address Address
	Lens    Lens[T]
}

// PathOf pairs an address with a lens.
func PathOf[T any](addr Address, lens Lens[T]) Path[T] {
	return Path[T]{Address: addr, Lens: lens}
}

// IsNil reports whether the path no longer resolves to a value of its kind.
func (p Path[T]) IsNil(m Modifiable) bool {
	_, ok := Get(m, p)
	return !ok
}

// Get reads the value at p.
func Get[T any](m Modifiable, p Path[T]) (T, bool) {
	a, ok := m.Lookup(p.Address)
	if !ok {
		var zero T
		return zero, false
	}
	return p.Lens.Get(a)
}

// Modify writes v at p through the root's validated Modify.
func Modify[T any](m Modifiable, p Path[T], v T) Result {
	cur, ok := m.Lookup(p.Address)
	if !ok {
		return Failed
	}
	next, ok := p.Lens.Put(cur, v)
	if !ok {
		return Failed
	}
	return m.Modify(p.Address, next)
}
