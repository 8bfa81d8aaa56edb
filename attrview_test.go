package attrview

import (
	"errors"
	"testing"

	"github.com/kungfusheep/attrview/attr"
)

func newTestDocument() *attr.Document {
	return attr.NewDocument(attr.Group{
		Name: "machine",
		Fields: []attr.Field{
			{Name: "enabled", Type: attr.BoolType()},
			{Name: "retries", Type: attr.IntegerType()},
			{Name: "ratio", Type: attr.FloatType()},
			{Name: "mode", Type: attr.EnumeratedType("slow", "fast")},
			{Name: "guard", Type: attr.ExpressionType(attr.LanguageHCL)},
			{Name: "title", Type: attr.LineType()},
			{Name: "notes", Type: attr.TextType()},
			{Name: "script", Type: attr.CodeType("sh")},
			{Name: "caps", Type: attr.EnumerableCollectionType("read", "write")},
			{Name: "hosts", Type: attr.CollectionType(attr.LineType())},
			{Name: "points", Type: attr.TableType(
				attr.Column{Name: "x", Type: attr.IntegerType()},
				attr.Column{Name: "label", Type: attr.LineType()},
			)},
			{Name: "limits", Type: attr.ComplexType(
				attr.Field{Name: "max", Type: attr.IntegerType()},
			)},
		},
		Attributes: map[string]attr.Attribute{
			"retries": attr.Integer(3),
			"guard":   attr.Expression{Value: "1 + 2", Language: attr.LanguageHCL},
			"title":   attr.Line("primary"),
			"hosts": attr.Collection{Element: attr.LineType(), Values: []attr.Attribute{
				attr.Line("alpha"), attr.Line("beta"), attr.Line("gamma"),
			}},
			"points": attr.Table{
				Columns: []attr.Column{
					{Name: "x", Type: attr.IntegerType()},
					{Name: "label", Type: attr.LineType()},
				},
				Rows: [][]attr.LineAttribute{
					{attr.Integer(1), attr.Line("one")},
					{attr.Integer(2), attr.Line("two")},
				},
			},
		},
	})
}

func fieldOf(t *testing.T, root *ComplexViewModel, name string) *AttributeViewModel {
	t.Helper()
	vm, err := root.Field(name)
	if err != nil {
		t.Fatalf("field %s: %v", name, err)
	}
	return vm
}

func lineOf(t *testing.T, vm *AttributeViewModel) *LineAttributeViewModel {
	t.Helper()
	l, err := vm.Line()
	if err != nil {
		t.Fatalf("line: %v", err)
	}
	return l
}

func blockOf(t *testing.T, vm *AttributeViewModel) *BlockAttributeViewModel {
	t.Helper()
	b, err := vm.Block()
	if err != nil {
		t.Fatalf("block: %v", err)
	}
	return b
}

func TestActiveCoversEveryKind(t *testing.T) {
	root := NewRootViewModel(newTestDocument(), nil)

	lines := map[string]attr.Kind{
		"enabled": attr.KindBool,
		"retries": attr.KindInteger,
		"ratio":   attr.KindFloat,
		"mode":    attr.KindEnumerated,
		"guard":   attr.KindExpression,
		"title":   attr.KindLine,
	}
	for name, want := range lines {
		t.Run(name, func(t *testing.T) {
			l := lineOf(t, fieldOf(t, root, name))
			c, err := l.Active()
			if err != nil {
				t.Fatal(err)
			}
			var got attr.Kind
			switch c.(type) {
			case *BoolViewModel:
				got = attr.KindBool
			case *IntegerViewModel:
				got = attr.KindInteger
			case *FloatViewModel:
				got = attr.KindFloat
			case *ExpressionViewModel:
				got = attr.KindExpression
			case *EnumeratedViewModel:
				got = attr.KindEnumerated
			case *LineViewModel:
				got = attr.KindLine
			}
			if got != want {
				t.Errorf("expected %s, got %s", want, got)
			}
		})
	}

	blocks := map[string]attr.Kind{
		"notes":  attr.KindText,
		"script": attr.KindCode,
		"caps":   attr.KindEnumerableCollection,
		"hosts":  attr.KindCollection,
		"points": attr.KindTable,
		"limits": attr.KindComplex,
	}
	for name, want := range blocks {
		t.Run(name, func(t *testing.T) {
			b := blockOf(t, fieldOf(t, root, name))
			c, err := b.Active()
			if err != nil {
				t.Fatal(err)
			}
			var got attr.Kind
			switch c.(type) {
			case *TextViewModel:
				got = attr.KindText
			case *CodeViewModel:
				got = attr.KindCode
			case *EnumerableCollectionViewModel:
				got = attr.KindEnumerableCollection
			case *CollectionViewModel:
				got = attr.KindCollection
			case *TableViewModel:
				got = attr.KindTable
			case *ComplexViewModel:
				got = attr.KindComplex
			}
			if got != want {
				t.Errorf("expected %s, got %s", want, got)
			}
		})
	}
}

func TestKindMismatch(t *testing.T) {
	root := NewRootViewModel(newTestDocument(), nil)

	l := lineOf(t, fieldOf(t, root, "retries"))
	_, err := l.Bool()
	if !errors.Is(err, ErrKindMismatch) {
		t.Fatalf("expected ErrKindMismatch, got %v", err)
	}
	var kerr *KindError
	if !errors.As(err, &kerr) {
		t.Fatalf("expected *KindError, got %T", err)
	}
	if kerr.Want != attr.KindBool || kerr.Got != attr.KindInteger {
		t.Errorf("expected want bool got integer, got %s/%s", kerr.Want, kerr.Got)
	}
	if kerr.Addr != "/retries" {
		t.Errorf("expected /retries, got %s", kerr.Addr)
	}
	if _, ok := l.Cached(attr.KindBool); ok {
		t.Error("mismatched accessor must not build a child")
	}

	b := blockOf(t, fieldOf(t, root, "notes"))
	if _, err := b.Table(); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("expected ErrKindMismatch, got %v", err)
	}

	if _, err := fieldOf(t, root, "notes").Line(); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("expected ErrKindMismatch for a block read as a line, got %v", err)
	}
	if _, err := fieldOf(t, root, "title").Block(); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("expected ErrKindMismatch for a line read as a block, got %v", err)
	}

	if _, err := root.Field("nope"); !errors.Is(err, ErrNoField) {
		t.Errorf("expected ErrNoField, got %v", err)
	}
}

func TestSendEvictsStaleKind(t *testing.T) {
	draft := Cell[attr.Attribute](attr.Bool(true))
	vm := NewAttributeViewModel(BindRef(draft, nil))
	l := lineOf(t, vm)

	b, err := l.Bool()
	if err != nil {
		t.Fatal(err)
	}
	heard := 0
	b.Subscribe(func() { heard++ })

	draft.Set(attr.Integer(7))
	vm.Send()

	if heard != 0 {
		t.Errorf("stale bool child must not be notified, heard %d", heard)
	}
	if _, ok := l.Cached(attr.KindBool); ok {
		t.Error("expected bool child evicted")
	}
	if _, err := l.Bool(); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("expected ErrKindMismatch, got %v", err)
	}
	i, err := l.Integer()
	if err != nil {
		t.Fatal(err)
	}
	if i.Value() != 7 {
		t.Errorf("expected 7, got %d", i.Value())
	}

	draft.Set(attr.Text("now a block"))
	vm.Send()
	if _, err := vm.Line(); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("expected line branch gone, got %v", err)
	}
	txt, err := blockOf(t, vm).Text()
	if err != nil {
		t.Fatal(err)
	}
	if txt.Value() != "now a block" {
		t.Errorf("expected 'now a block', got %q", txt.Value())
	}
}

func TestSendReachesLiveChildren(t *testing.T) {
	root := NewRootViewModel(newTestDocument(), nil)
	l := lineOf(t, fieldOf(t, root, "enabled"))
	b, _ := l.Bool()

	heard := 0
	b.Subscribe(func() { heard++ })
	root.Send()
	if heard != 1 {
		t.Errorf("expected 1 notification, got %d", heard)
	}
}

func TestUnresolvedBinding(t *testing.T) {
	doc := newTestDocument()
	vm := NewAttributeViewModel(Bind(doc, attr.Root.Field("hosts").Index(9), nil))
	if vm.IsValid() {
		t.Error("expected invalid binding")
	}
	if _, err := vm.Kind(); !errors.Is(err, ErrUnresolved) {
		t.Errorf("expected ErrUnresolved, got %v", err)
	}
	l := NewLineAttributeViewModel(vm.Binding())
	if _, err := l.Active(); !errors.Is(err, ErrUnresolved) {
		t.Errorf("expected ErrUnresolved, got %v", err)
	}
}
