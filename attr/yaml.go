package attr

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type fieldDoc struct {
	Name string `yaml:"name"`
	Type Type   `yaml:"type"`
}

type groupDoc struct {
	Name     string               `yaml:"name"`
	Metadata map[string]string    `yaml:"metadata"`
	Fields   []fieldDoc           `yaml:"fields"`
	Values   map[string]yaml.Node `yaml:"values"`
}

// DecodeGroup reads a group from YAML:
//
//	name: machine
//	fields:
//	  - name: enabled
//	    type: bool
//	  - name: mode
//	    type: {enumerated: [fast, slow]}
//	values:
//	  enabled: true
//
// Fields missing from values take their type's default.
func DecodeGroup(r io.Reader) (Group, error) {
	var doc groupDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Group{}, fmt.Errorf("decode group: %w", err)
	}
	g := Group{
		Name:       doc.Name,
		Metadata:   doc.Metadata,
		Attributes: make(map[string]Attribute, len(doc.Fields)),
	}
	for _, f := range doc.Fields {
		if f.Name == "" {
			return Group{}, fmt.Errorf("decode group: field without a name")
		}
		g.Fields = append(g.Fields, Field{Name: f.Name, Type: f.Type})
		n, ok := doc.Values[f.Name]
		if !ok {
			g.Attributes[f.Name] = f.Type.Default()
			continue
		}
		a, err := decodeValue(f.Type, &n)
		if err != nil {
			return Group{}, fmt.Errorf("decode group: field %q: %w", f.Name, err)
		}
		g.Attributes[f.Name] = a
	}
	for name := range doc.Values {
		if _, ok := g.Attributes[name]; !ok {
			return Group{}, fmt.Errorf("decode group: value for undeclared field %q", name)
		}
	}
	return g, nil
}

// UnmarshalYAML accepts a kind name ("bool", "integer", "float", "line",
// "text", "expression", "code") or a single-key mapping for parameterised
// kinds, e.g. {collection: integer} or {table: [{name: x, type: float}]}.
func (t *Type) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Value {
		case "bool":
			*t = BoolType()
		case "integer":
			*t = IntegerType()
		case "float":
			*t = FloatType()
		case "line":
			*t = LineType()
		case "text":
			*t = TextType()
		case "expression":
			*t = ExpressionType(LanguageHCL)
		case "code":
			*t = CodeType("")
		default:
			return fmt.Errorf("line %d: unknown type %q", n.Line, n.Value)
		}
		return nil
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return fmt.Errorf("line %d: type mapping must have exactly one key", n.Line)
		}
		return t.decodeParameterised(n.Content[0].Value, n.Content[1])
	}
	return fmt.Errorf("line %d: invalid type", n.Line)
}

func (t *Type) decodeParameterised(kind string, v *yaml.Node) error {
	switch kind {
	case "expression", "code":
		var lang string
		if err := v.Decode(&lang); err != nil {
			return err
		}
		if kind == "code" {
			*t = CodeType(lang)
		} else {
			*t = ExpressionType(lang)
		}
	case "enumerated", "enumerable_collection":
		var valid []string
		if err := v.Decode(&valid); err != nil {
			return err
		}
		if kind == "enumerated" {
			*t = EnumeratedType(valid...)
		} else {
			*t = EnumerableCollectionType(valid...)
		}
	case "collection":
		var elem Type
		if err := v.Decode(&elem); err != nil {
			return err
		}
		*t = CollectionType(elem)
	case "complex":
		var fields []fieldDoc
		if err := v.Decode(&fields); err != nil {
			return err
		}
		ct := ComplexType()
		for _, f := range fields {
			ct.Fields = append(ct.Fields, Field(f))
		}
		*t = ct
	case "table":
		var cols []fieldDoc
		if err := v.Decode(&cols); err != nil {
			return err
		}
		tt := TableType()
		for _, c := range cols {
			if !c.Type.Kind.IsLine() {
				return fmt.Errorf("line %d: column %q must have a line type, got %s", v.Line, c.Name, c.Type.Kind)
			}
			tt.Columns = append(tt.Columns, Column(c))
		}
		*t = tt
	default:
		return fmt.Errorf("line %d: unknown type %q", v.Line, kind)
	}
	return nil
}

func decodeValue(t Type, n *yaml.Node) (Attribute, error) {
	wrap := func(err error) error {
		return fmt.Errorf("line %d: %s: %w", n.Line, t.Kind, err)
	}
	switch t.Kind {
	case KindBool:
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, wrap(err)
		}
		return Bool(b), nil
	case KindInteger:
		var i int
		if err := n.Decode(&i); err != nil {
			return nil, wrap(err)
		}
		return Integer(i), nil
	case KindFloat:
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, wrap(err)
		}
		return Float(f), nil
	case KindTable:
		var rows [][]yaml.Node
		if err := n.Decode(&rows); err != nil {
			return nil, wrap(err)
		}
		table := Table{Columns: t.Columns}
		for _, cells := range rows {
			if len(cells) != len(t.Columns) {
				return nil, wrap(fmt.Errorf("expected %d columns, got %d", len(t.Columns), len(cells)))
			}
			row := make([]LineAttribute, len(cells))
			for c := range cells {
				a, err := decodeValue(t.Columns[c].Type, &cells[c])
				if err != nil {
					return nil, err
				}
				row[c] = a.(LineAttribute)
			}
			table.Rows = append(table.Rows, row)
		}
		return table, nil
	case KindComplex:
		var values map[string]yaml.Node
		if err := n.Decode(&values); err != nil {
			return nil, wrap(err)
		}
		c := Complex{Fields: t.Fields, Values: make(map[string]Attribute, len(t.Fields))}
		for _, f := range t.Fields {
			v, ok := values[f.Name]
			if !ok {
				c.Values[f.Name] = f.Type.Default()
				continue
			}
			a, err := decodeValue(f.Type, &v)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			c.Values[f.Name] = a
		}
		return c, nil
	case KindCollection:
		var items []yaml.Node
		if err := n.Decode(&items); err != nil {
			return nil, wrap(err)
		}
		coll := Collection{Element: *t.Element}
		for i := range items {
			a, err := decodeValue(*t.Element, &items[i])
			if err != nil {
				return nil, err
			}
			coll.Values = append(coll.Values, a)
		}
		return coll, nil
	case KindEnumerableCollection:
		var members []string
		if err := n.Decode(&members); err != nil {
			return nil, wrap(err)
		}
		return EnumerableCollection{ValidValues: t.ValidValues, Values: SortedValues(members)}, nil
	}

	var s string
	if err := n.Decode(&s); err != nil {
		return nil, wrap(err)
	}
	switch t.Kind {
	case KindExpression:
		return Expression{Value: s, Language: t.Language}, nil
	case KindEnumerated:
		return Enumerated{Value: s, ValidValues: t.ValidValues}, nil
	case KindLine:
		return Line(s), nil
	case KindText:
		return Text(s), nil
	case KindCode:
		return Code{Value: s, Language: t.Language}, nil
	}
	return nil, fmt.Errorf("line %d: unsupported kind %s", n.Line, t.Kind)
}
