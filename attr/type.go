package attr

import (
	"slices"
	"strings"
)

// Type is the declared schema of one attribute slot.
// Only the parameters relevant to Kind are set.
type Type struct {
	Kind        Kind
	Language    string   // expression, code
	ValidValues []string // enumerated, enumerable collection
	Columns     []Column // table
	Fields      []Field  // complex
	Element     *Type    // collection
}

// Field is one named slot of a complex attribute or group.
type Field struct {
	Name string
	Type Type
}

// Column is one named column of a table. Its type is always a line type.
type Column struct {
	Name string
	Type Type
}

func BoolType() Type                  { return Type{Kind: KindBool} }
func IntegerType() Type               { return Type{Kind: KindInteger} }
func FloatType() Type                 { return Type{Kind: KindFloat} }
func LineType() Type                  { return Type{Kind: KindLine} }
func TextType() Type                  { return Type{Kind: KindText} }
func ExpressionType(lang string) Type { return Type{Kind: KindExpression, Language: lang} }
func CodeType(lang string) Type       { return Type{Kind: KindCode, Language: lang} }

func EnumeratedType(valid ...string) Type {
	return Type{Kind: KindEnumerated, ValidValues: valid}
}

func EnumerableCollectionType(valid ...string) Type {
	return Type{Kind: KindEnumerableCollection, ValidValues: valid}
}

func TableType(columns ...Column) Type {
	return Type{Kind: KindTable, Columns: columns}
}

func ComplexType(fields ...Field) Type {
	return Type{Kind: KindComplex, Fields: fields}
}

func CollectionType(element Type) Type {
	return Type{Kind: KindCollection, Element: &element}
}

// Default returns the zero attribute of t.
func (t Type) Default() Attribute {
	switch t.Kind {
	case KindBool:
		return Bool(false)
	case KindInteger:
		return Integer(0)
	case KindFloat:
		return Float(0)
	case KindExpression:
		return Expression{Language: t.Language}
	case KindEnumerated:
		e := Enumerated{ValidValues: slices.Clone(t.ValidValues)}
		if sorted := SortedValues(t.ValidValues); len(sorted) > 0 {
			e.Value = sorted[0]
		}
		return e
	case KindLine:
		return Line("")
	case KindText:
		return Text("")
	case KindCode:
		return Code{Language: t.Language}
	case KindTable:
		return Table{Columns: slices.Clone(t.Columns)}
	case KindComplex:
		values := make(map[string]Attribute, len(t.Fields))
		for _, f := range t.Fields {
			values[f.Name] = f.Type.Default()
		}
		return Complex{Fields: slices.Clone(t.Fields), Values: values}
	case KindCollection:
		elem := LineType()
		if t.Element != nil {
			elem = *t.Element
		}
		return Collection{Element: elem}
	case KindEnumerableCollection:
		return EnumerableCollection{ValidValues: slices.Clone(t.ValidValues)}
	}
	return nil
}

func (t Type) String() string {
	switch t.Kind {
	case KindExpression, KindCode:
		return t.Kind.String() + "(" + t.Language + ")"
	case KindEnumerated, KindEnumerableCollection:
		return t.Kind.String() + "(" + strings.Join(SortedValues(t.ValidValues), "|") + ")"
	case KindCollection:
		if t.Element != nil {
			return "collection(" + t.Element.String() + ")"
		}
	}
	return t.Kind.String()
}

// SortedValues returns a sorted copy of a valid-value set.
func SortedValues(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

// DefaultRow returns one row of column defaults.
func DefaultRow(columns []Column) []LineAttribute {
	row := make([]LineAttribute, len(columns))
	for i, c := range columns {
		if l, ok := c.Type.Default().(LineAttribute); ok {
			row[i] = l
		} else {
			row[i] = Line("")
		}
	}
	return row
}
