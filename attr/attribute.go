package attr

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Attribute is a value of one of the closed set of attribute kinds.
// Every Attribute is also exactly one of LineAttribute or BlockAttribute.
type Attribute interface {
	Kind() Kind
	attribute()
}

// LineAttribute is an attribute that renders on a single line and can
// occupy a table cell.
type LineAttribute interface {
	Attribute
	lineAttribute()
}

// BlockAttribute is a multi-line or composite attribute.
type BlockAttribute interface {
	Attribute
	blockAttribute()
}

type (
	Bool    bool
	Integer int
	Float   float64
	Line    string

	Expression struct {
		Value    string
		Language string
	}

	Enumerated struct {
		Value       string
		ValidValues []string
	}
)

type (
	Text string

	Code struct {
		Value    string
		Language string
	}

	Table struct {
		Columns []Column
		Rows    [][]LineAttribute
	}

	Complex struct {
		Fields []Field
		Values map[string]Attribute
	}

	Collection struct {
		Element Type
		Values  []Attribute
	}

	EnumerableCollection struct {
		ValidValues []string
		Values      []string
	}
)

func (Bool) Kind() Kind                 { return KindBool }
func (Integer) Kind() Kind              { return KindInteger }
func (Float) Kind() Kind                { return KindFloat }
func (Expression) Kind() Kind           { return KindExpression }
func (Enumerated) Kind() Kind           { return KindEnumerated }
func (Line) Kind() Kind                 { return KindLine }
func (Text) Kind() Kind                 { return KindText }
func (Code) Kind() Kind                 { return KindCode }
func (Table) Kind() Kind                { return KindTable }
func (Complex) Kind() Kind              { return KindComplex }
func (Collection) Kind() Kind           { return KindCollection }
func (EnumerableCollection) Kind() Kind { return KindEnumerableCollection }

func (Bool) attribute()                 {}
func (Integer) attribute()              {}
func (Float) attribute()                {}
func (Expression) attribute()           {}
func (Enumerated) attribute()           {}
func (Line) attribute()                 {}
func (Text) attribute()                 {}
func (Code) attribute()                 {}
func (Table) attribute()                {}
func (Complex) attribute()              {}
func (Collection) attribute()           {}
func (EnumerableCollection) attribute() {}

func (Bool) lineAttribute()       {}
func (Integer) lineAttribute()    {}
func (Float) lineAttribute()      {}
func (Expression) lineAttribute() {}
func (Enumerated) lineAttribute() {}
func (Line) lineAttribute()       {}

func (Text) blockAttribute()                 {}
func (Code) blockAttribute()                 {}
func (Table) blockAttribute()                {}
func (Complex) blockAttribute()              {}
func (Collection) blockAttribute()           {}
func (EnumerableCollection) blockAttribute() {}

// Contains reports whether v is a member of the collection.
func (e EnumerableCollection) Contains(v string) bool {
	return slices.Contains(e.Values, v)
}

// With returns a copy of e with v added or removed. The member list stays sorted.
func (e EnumerableCollection) With(v string, on bool) EnumerableCollection {
	values := slices.DeleteFunc(slices.Clone(e.Values), func(s string) bool { return s == v })
	if on {
		values = append(values, v)
	}
	slices.Sort(values)
	return EnumerableCollection{ValidValues: e.ValidValues, Values: values}
}

// Equal reports whether a and b hold the same kind and value.
func Equal(a, b Attribute) bool {
	return reflect.DeepEqual(a, b)
}

// TypeOf derives the type an attribute currently conforms to.
func TypeOf(a Attribute) Type {
	switch v := a.(type) {
	case Expression:
		return ExpressionType(v.Language)
	case Enumerated:
		return EnumeratedType(v.ValidValues...)
	case Code:
		return CodeType(v.Language)
	case Table:
		return TableType(v.Columns...)
	case Complex:
		return ComplexType(v.Fields...)
	case Collection:
		return CollectionType(v.Element)
	case EnumerableCollection:
		return EnumerableCollectionType(v.ValidValues...)
	case nil:
		return Type{}
	}
	return Type{Kind: a.Kind()}
}

// Format renders a line attribute as plain text.
func Format(a LineAttribute) string {
	switch v := a.(type) {
	case Bool:
		return strconv.FormatBool(bool(v))
	case Integer:
		return strconv.Itoa(int(v))
	case Float:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case Expression:
		return v.Value
	case Enumerated:
		return v.Value
	case Line:
		return string(v)
	}
	return ""
}

// Summary renders a short one-line description of any attribute.
func Summary(a Attribute) string {
	switch v := a.(type) {
	case LineAttribute:
		return Format(v)
	case Text:
		first, _, _ := strings.Cut(string(v), "\n")
		return first
	case Code:
		first, _, _ := strings.Cut(v.Value, "\n")
		return first
	case Table:
		return strconv.Itoa(len(v.Rows)) + " rows"
	case Complex:
		return strconv.Itoa(len(v.Fields)) + " fields"
	case Collection:
		return strconv.Itoa(len(v.Values)) + " items"
	case EnumerableCollection:
		return "{" + strings.Join(v.Values, ", ") + "}"
	}
	return ""
}
