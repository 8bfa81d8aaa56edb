package attrview

import (
	"testing"

	"github.com/kungfusheep/attrview/attr"
)

func hostsOf(t *testing.T, doc *attr.Document) *CollectionViewModel {
	t.Helper()
	root := NewRootViewModel(doc, nil)
	c, err := blockOf(t, fieldOf(t, root, "hosts")).Collection()
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func lineValue(t *testing.T, vm *AttributeViewModel) string {
	t.Helper()
	l, err := lineOf(t, vm).Line()
	if err != nil {
		t.Fatal(err)
	}
	return l.Value()
}

func hostValues(doc *attr.Document) []string {
	a, _ := doc.Lookup(attr.Root.Field("hosts"))
	var out []string
	for _, v := range a.(attr.Collection).Values {
		out = append(out, string(v.(attr.Line)))
	}
	return out
}

func TestCollectionAppendKeepsCachedElements(t *testing.T) {
	doc := newTestDocument()
	c := hostsOf(t, doc)
	before := c.Elements()

	if r := c.AddElement(attr.Line("delta")); r != attr.Changed {
		t.Fatalf("expected Changed, got %s", r)
	}
	if c.Len() != 4 {
		t.Fatalf("expected 4 elements, got %d", c.Len())
	}
	for i, vm := range before {
		if c.Element(i) != vm {
			t.Errorf("element %d was rebuilt", i)
		}
	}
	if _, ok := c.Cached(3); ok {
		t.Error("expected the new element to be built lazily")
	}
	if got := lineValue(t, c.Element(3)); got != "delta" {
		t.Errorf("expected delta, got %q", got)
	}
}

func TestCollectionDelete(t *testing.T) {
	doc := newTestDocument()
	c := hostsOf(t, doc)
	els := c.Elements()

	if r := c.DeleteElements([]int{0}); r != attr.Changed {
		t.Fatalf("expected Changed, got %s", r)
	}
	if els[0].IsValid() {
		t.Error("expected deleted element to stop resolving")
	}
	if els[0].Index() != -1 {
		t.Errorf("expected -1, got %d", els[0].Index())
	}
	if els[1].Index() != 0 || els[2].Index() != 1 {
		t.Errorf("expected 0 and 1, got %d and %d", els[1].Index(), els[2].Index())
	}
	if c.Element(1) != els[2] {
		t.Error("expected gamma's view model to survive the delete")
	}
	if got := lineValue(t, els[2]); got != "gamma" {
		t.Errorf("expected gamma, got %q", got)
	}

	if r := c.DeleteElements([]int{5}); r != attr.Failed {
		t.Errorf("expected Failed for an out of range offset, got %s", r)
	}
	if c.Element(0) != els[1] {
		t.Error("a rejected delete must leave the cache alone")
	}
	if r := c.DeleteElements(nil); r != attr.Unchanged {
		t.Errorf("expected Unchanged, got %s", r)
	}
}

func TestCollectionMove(t *testing.T) {
	doc := newTestDocument()
	c := hostsOf(t, doc)
	els := c.Elements()

	if r := c.MoveElements([]int{0}, 3); r != attr.Changed {
		t.Fatalf("expected Changed, got %s", r)
	}
	want := []string{"beta", "gamma", "alpha"}
	got := hostValues(doc)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if c.Element(2) != els[0] || els[0].Index() != 2 {
		t.Errorf("expected alpha's view model at 2, got index %d", els[0].Index())
	}

	l, _ := lineOf(t, els[0]).Line()
	l.Set("ALPHA")
	if got := hostValues(doc)[2]; got != "ALPHA" {
		t.Errorf("expected edit through moved view model to land at 2, got %q", got)
	}

	if r := c.MoveElements([]int{0}, 0); r != attr.Unchanged {
		t.Errorf("expected Unchanged, got %s", r)
	}
	if r := c.MoveElements([]int{0}, 9); r != attr.Failed {
		t.Errorf("expected Failed, got %s", r)
	}
}

func TestCollectionSelection(t *testing.T) {
	doc := newTestDocument()
	c := hostsOf(t, doc)

	c.Select(0)
	c.Select(2)
	if !c.IsSelected(2) || c.IsSelected(1) {
		t.Fatalf("unexpected selection %v", c.Selected())
	}
	if r := c.DeleteSelected(); r != attr.Changed {
		t.Fatalf("expected Changed, got %s", r)
	}
	if got := hostValues(doc); len(got) != 1 || got[0] != "beta" {
		t.Errorf("expected [beta], got %v", got)
	}
	if len(c.Selected()) != 0 {
		t.Errorf("expected selection cleared, got %v", c.Selected())
	}
}

func TestCollectionDraft(t *testing.T) {
	doc := newTestDocument()
	c := hostsOf(t, doc)

	d := c.Draft()
	if c.Draft() != d {
		t.Error("expected the same draft until commit")
	}
	l, err := lineOf(t, d).Line()
	if err != nil {
		t.Fatal(err)
	}
	l.Set("delta")
	if c.Len() != 3 {
		t.Fatalf("draft edits must not touch the document, len %d", c.Len())
	}

	if r := c.CommitDraft(); r != attr.Changed {
		t.Fatalf("expected Changed, got %s", r)
	}
	if got := hostValues(doc); len(got) != 4 || got[3] != "delta" {
		t.Errorf("expected delta appended, got %v", got)
	}
	if c.Draft() == d {
		t.Error("expected a fresh draft after commit")
	}

	if r := c.CommitDraft(); r != attr.Changed {
		t.Errorf("expected Changed, got %s", r)
	}
	if got := hostValues(doc); got[4] != "" {
		t.Errorf("expected empty default appended, got %q", got[4])
	}
}

func TestCollectionSendResets(t *testing.T) {
	c := hostsOf(t, newTestDocument())
	first := c.Element(0)

	heard := 0
	c.Subscribe(func() { heard++ })
	c.Send()

	if heard != 1 {
		t.Errorf("expected 1 notification, got %d", heard)
	}
	if _, ok := c.Cached(0); ok {
		t.Error("expected cache cleared")
	}
	if c.Element(0) == first {
		t.Error("expected a rebuilt element")
	}
}

func TestCollectionNotifies(t *testing.T) {
	c := hostsOf(t, newTestDocument())
	heard := 0
	c.Subscribe(func() { heard++ })

	c.AddDefault()
	c.DeleteElements(nil)
	c.MoveElements([]int{0}, 2)
	if heard != 2 {
		t.Errorf("expected 2 notifications, got %d", heard)
	}
}

func TestCollectionMoveEqualValues(t *testing.T) {
	t.Run("Document", func(t *testing.T) {
		doc := newTestDocument()
		c := hostsOf(t, doc)
		c.AddElement(attr.Line("x"))
		c.AddElement(attr.Line("x"))
		a, b := c.Element(3), c.Element(4)

		if r := c.MoveElements([]int{3}, 5); r != attr.Changed {
			t.Fatalf("expected Changed, got %s", r)
		}
		if a.Index() != 4 || b.Index() != 3 {
			t.Errorf("expected rows swapped, got a=%d b=%d", a.Index(), b.Index())
		}
		if c.Element(3) != b || c.Element(4) != a {
			t.Error("expected the cache to follow the move")
		}
	})

	t.Run("Draft", func(t *testing.T) {
		draft := Cell[attr.Attribute](attr.Collection{
			Element: attr.IntegerType(),
			Values:  []attr.Attribute{attr.Integer(0), attr.Integer(0), attr.Integer(7)},
		})
		c := NewCollectionViewModel(BindRef(draft, nil))
		a, b := c.Element(0), c.Element(1)

		if r := c.MoveElements([]int{0}, 2); r != attr.Changed {
			t.Fatalf("expected Changed, got %s", r)
		}
		if a.Index() != 1 || b.Index() != 0 {
			t.Errorf("expected a at 1 and b at 0, got a=%d b=%d", a.Index(), b.Index())
		}
		if r := c.MoveElements([]int{0}, 1); r != attr.Unchanged {
			t.Errorf("expected Unchanged for a move onto itself, got %s", r)
		}
	})
}
