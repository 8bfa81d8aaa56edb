package attrview

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kungfusheep/attrview/attr"
)

func TestBindingAddresses(t *testing.T) {
	doc := newTestDocument()
	pos := attr.NewPosition(1)
	b := Bind(doc, attr.Root, nil).Field("points").Row(pos).Column(1)

	if got := b.Address().String(); got != "/points/1/1" {
		t.Errorf("expected /points/1/1, got %s", got)
	}
	a, ok := b.Attribute()
	if !ok || a != attr.Line("two") {
		t.Errorf("expected two, got %v", a)
	}

	pos.Set(0)
	a, _ = b.Attribute()
	if a != attr.Line("one") {
		t.Errorf("expected the binding to follow its position, got %v", a)
	}

	row := Bind(doc, attr.Root, nil).Field("points").Row(pos)
	if i, ok := row.Index(); !ok || i != 0 {
		t.Errorf("expected row index 0, got %d %v", i, ok)
	}
	if _, ok := row.Field("x").Index(); ok {
		t.Error("a field binding has no row index")
	}
	if row.Label() != "0" {
		t.Errorf("expected label 0, got %q", row.Label())
	}
}

// plainRoot hides Document.LookupRow to exercise the cell-by-cell fallback.
type plainRoot struct{ attr.Modifiable }

func TestBindingTableRowFallback(t *testing.T) {
	doc := newTestDocument()
	b := Bind(plainRoot{doc}, attr.Root.Field("points"), nil).Row(attr.NewPosition(0))
	row, ok := b.TableRow()
	if !ok {
		t.Fatal("expected row to resolve")
	}
	if diff := cmp.Diff([]attr.LineAttribute{attr.Integer(1), attr.Line("one")}, row); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestBindingDraftStructuralEdits(t *testing.T) {
	draft := Cell[attr.Attribute](attr.Collection{
		Element: attr.IntegerType(),
		Values:  []attr.Attribute{attr.Integer(1), attr.Integer(2), attr.Integer(3)},
	})
	b := BindRef(draft, nil)

	if r := b.AddItem(attr.Integer(4)); r != attr.Changed {
		t.Errorf("expected Changed, got %s", r)
	}
	if r := b.MoveItems([]int{3}, 0); r != attr.Changed {
		t.Errorf("expected Changed, got %s", r)
	}
	if r := b.DeleteItems([]int{1}); r != attr.Changed {
		t.Errorf("expected Changed, got %s", r)
	}
	if r := b.DeleteItems([]int{7}); r != attr.Failed {
		t.Errorf("expected Failed, got %s", r)
	}
	if r := b.MoveItems(nil, 0); r != attr.Unchanged {
		t.Errorf("expected Unchanged, got %s", r)
	}
	if r := b.AddRow(nil); r != attr.Failed {
		t.Errorf("a collection has no rows, expected Failed, got %s", r)
	}

	want := attr.Collection{
		Element: attr.IntegerType(),
		Values:  []attr.Attribute{attr.Integer(4), attr.Integer(2), attr.Integer(3)},
	}
	if diff := cmp.Diff(attr.Attribute(want), draft.Get()); diff != "" {
		t.Errorf("draft mismatch (-want +got):\n%s", diff)
	}
	if b.Count() != 3 {
		t.Errorf("expected 3, got %d", b.Count())
	}

	b.Row(attr.NewPosition(0)).Modify(attr.Line("x"))
	if errs := b.Row(attr.NewPosition(0)).Errors(); len(errs) != 1 {
		t.Errorf("expected a kind error on the draft element, got %v", errs)
	}
}

func TestRefs(t *testing.T) {
	n := 1
	r := NewRef(func() int { return n }, func(v int) { n = v })
	r.Set(5)
	if n != 5 {
		t.Errorf("expected 5, got %d", n)
	}
	c := r.Const()
	n = 9
	if c.Get() != 9 {
		t.Errorf("expected const ref to read through, got %d", c.Get())
	}
	if Const("fixed").Get() != "fixed" {
		t.Error("expected fixed")
	}
	var zero ConstRef[int]
	if zero.Get() != 0 {
		t.Errorf("expected zero ConstRef to read 0, got %d", zero.Get())
	}
	if NewConstRef(func() int { return 3 }).Get() != 3 {
		t.Error("expected 3")
	}
}
