package attrview

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/kungfusheep/attrview/attr"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(e *Editor, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = e.Update(keyMsg(k))
	}
	return cmd
}

func lookup(t *testing.T, doc *attr.Document, addr attr.Address) attr.Attribute {
	t.Helper()
	a, ok := doc.Lookup(addr)
	if !ok {
		t.Fatalf("%s does not resolve", addr)
	}
	return a
}

func TestEditorToggleAndStep(t *testing.T) {
	doc := newTestDocument()
	e := NewEditor(doc, WithTitle("machine"), WithTheme(ThemeMonochrome))
	assertContains(t, e.View(), "machine", "enabled:", "retries:")

	press(e, " ")
	if got := lookup(t, doc, attr.Root.Field("enabled")); got != attr.Bool(true) {
		t.Errorf("expected true, got %v", got)
	}
	if e.Changes() != 1 {
		t.Errorf("expected 1 change, got %d", e.Changes())
	}
	assertContains(t, e.View(), "machine *")

	press(e, "j", "+", "+")
	if got := lookup(t, doc, attr.Root.Field("retries")); got != attr.Integer(5) {
		t.Errorf("expected 5, got %v", got)
	}

	press(e, "j", "j", "-")
	if got := lookup(t, doc, attr.Root.Field("mode")); got.(attr.Enumerated).Value != "slow" {
		t.Errorf("expected mode cycled to slow, got %v", got)
	}
}

func TestEditorInlineEdit(t *testing.T) {
	doc := newTestDocument()
	e := NewEditor(doc)

	press(e, "j", "j", "j", "j", "j", "enter", "!", "enter")
	if got := lookup(t, doc, attr.Root.Field("title")); got != attr.Line("primary!") {
		t.Errorf("expected primary!, got %v", got)
	}

	press(e, "enter", "backspace", "backspace", "esc")
	if got := lookup(t, doc, attr.Root.Field("title")); got != attr.Line("primary!") {
		t.Errorf("escape must discard the edit, got %v", got)
	}

	press(e, "k", "k", "k", "k", "enter", "x", "enter")
	if got := lookup(t, doc, attr.Root.Field("retries")); got != attr.Integer(3) {
		t.Errorf("expected retries untouched, got %v", got)
	}
	assertContains(t, e.View(), "not an integer")
}

func TestEditorCollection(t *testing.T) {
	doc := newTestDocument()
	e := NewEditor(doc)
	hosts := attr.Root.Field("hosts")

	// hosts is the tenth field.
	for range 9 {
		press(e, "j")
	}
	press(e, "enter")
	assertContains(t, e.View(), "alpha", "beta", "gamma")

	press(e, "a")
	if diff := cmp.Diff([]string{"alpha", "beta", "gamma", ""}, hostValues(doc)); diff != "" {
		t.Errorf("hosts mismatch (-want +got):\n%s", diff)
	}

	press(e, "j", "J")
	if diff := cmp.Diff([]string{"beta", "alpha", "gamma", ""}, hostValues(doc)); diff != "" {
		t.Errorf("hosts mismatch (-want +got):\n%s", diff)
	}

	// The cursor follows the moved element.
	press(e, "x")
	if diff := cmp.Diff([]string{"beta", "gamma", ""}, hostValues(doc)); diff != "" {
		t.Errorf("hosts mismatch (-want +got):\n%s", diff)
	}

	press(e, "s", "j", "s", "X")
	if diff := cmp.Diff([]string{"beta"}, hostValues(doc)); diff != "" {
		t.Errorf("hosts mismatch (-want +got):\n%s", diff)
	}
	if n, _ := attr.Count(doc.Root(), hosts); n != 1 {
		t.Errorf("expected 1 host, got %d", n)
	}
}

func TestEditorEnumerableSet(t *testing.T) {
	doc := newTestDocument()
	e := NewEditor(doc)
	for range 8 {
		press(e, "j")
	}
	press(e, "enter", "j", " ")
	got := lookup(t, doc, attr.Root.Field("caps")).(attr.EnumerableCollection)
	if diff := cmp.Diff([]string{"read"}, got.Values); diff != "" {
		t.Errorf("caps mismatch (-want +got):\n%s", diff)
	}
}

func TestEditorQuitAndResync(t *testing.T) {
	e := NewEditor(newTestDocument())
	press(e, "r")
	assertContains(t, e.View(), "resynced")

	cmd := press(e, "q")
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
}

func TestEditorInputCursor(t *testing.T) {
	doc := newTestDocument()
	e := NewEditor(doc)

	press(e, "j", "j", "j", "j", "j", "enter", "home", "#", "enter")
	if got := lookup(t, doc, attr.Root.Field("title")); got != attr.Line("#primary") {
		t.Errorf("expected #primary, got %v", got)
	}

	press(e, "enter", "left", "left", " ", "enter")
	if got := lookup(t, doc, attr.Root.Field("title")); got != attr.Line("#prima ry") {
		t.Errorf("expected #prima ry, got %v", got)
	}

	changes := e.Changes()
	press(e, "enter", "enter")
	if e.Changes() != changes {
		t.Errorf("an untouched value must not be written back, changes %d -> %d", changes, e.Changes())
	}
}

func TestEditorMoveEqualElements(t *testing.T) {
	doc := attr.NewDocument(attr.Group{
		Fields: []attr.Field{{Name: "xs", Type: attr.CollectionType(attr.IntegerType())}},
	})
	e := NewEditor(doc)
	press(e, "enter", "a", "a", "j")

	xs, err := blockOf(t, fieldOf(t, e.Root(), "xs")).Collection()
	if err != nil {
		t.Fatal(err)
	}
	first := xs.Element(0)
	press(e, "J")
	if first.Index() != 1 {
		t.Errorf("expected the moved element at 1, got %d", first.Index())
	}
	if e.cursor != 2 {
		t.Errorf("expected the cursor to follow the element, got %d", e.cursor)
	}
}

func TestEditorExpansionFollowsRows(t *testing.T) {
	doc := attr.NewDocument(attr.Group{
		Fields: []attr.Field{{Name: "xs", Type: attr.CollectionType(attr.CollectionType(attr.IntegerType()))}},
		Attributes: map[string]attr.Attribute{
			"xs": attr.Collection{
				Element: attr.CollectionType(attr.IntegerType()),
				Values: []attr.Attribute{
					attr.Collection{Element: attr.IntegerType(), Values: []attr.Attribute{attr.Integer(1)}},
					attr.Collection{Element: attr.IntegerType(), Values: []attr.Attribute{attr.Integer(2)}},
				},
			},
		},
	})
	e := NewEditor(doc)
	xs, err := blockOf(t, fieldOf(t, e.Root(), "xs")).Collection()
	if err != nil {
		t.Fatal(err)
	}

	// expand xs, then its second element, then delete the first
	press(e, "enter", "j", "j", "enter", "k", "x")
	survivor := xs.Element(0)
	if !e.state.IsExpanded(survivor.Binding().Address()) {
		t.Error("expected the surviving row to stay expanded")
	}

	press(e, "a")
	if xs.Len() != 2 {
		t.Fatalf("expected 2 elements, got %d", xs.Len())
	}
	if e.state.IsExpanded(xs.Element(1).Binding().Address()) {
		t.Error("a new row must not inherit an old row's expansion")
	}
}
