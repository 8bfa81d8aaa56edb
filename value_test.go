package attrview

import (
	"testing"

	"github.com/kungfusheep/attrview/attr"
)

type countingSink struct{ n int }

func (s *countingSink) WillChange() { s.n++ }

func TestPathValue(t *testing.T) {
	t.Run("ReadWrite", func(t *testing.T) {
		doc := newTestDocument()
		sink := &countingSink{}
		v := PathValue(doc, attr.PathOf(attr.Root.Field("retries"), attr.IntegerLens), -1, sink)

		if v.Get() != 3 {
			t.Errorf("expected 3, got %d", v.Get())
		}
		if r := v.Set(5); r != attr.Changed {
			t.Errorf("expected Changed, got %s", r)
		}
		if v.Get() != 5 {
			t.Errorf("expected 5, got %d", v.Get())
		}
		if sink.n != 1 {
			t.Errorf("expected 1 notification, got %d", sink.n)
		}
	})

	t.Run("UnchangedIsSilent", func(t *testing.T) {
		doc := newTestDocument()
		sink := &countingSink{}
		v := PathValue(doc, attr.PathOf(attr.Root.Field("retries"), attr.IntegerLens), 0, sink)
		if r := v.Set(3); r != attr.Unchanged {
			t.Errorf("expected Unchanged, got %s", r)
		}
		if sink.n != 0 {
			t.Errorf("expected no notification, got %d", sink.n)
		}
	})

	t.Run("FailedNotifies", func(t *testing.T) {
		doc := newTestDocument()
		sink := &countingSink{}
		v := PathValue(doc, attr.PathOf(attr.Root.Field("mode"), attr.EnumeratedLens), "", sink)
		if r := v.Set("medium"); r != attr.Failed {
			t.Errorf("expected Failed, got %s", r)
		}
		if sink.n != 1 {
			t.Errorf("expected 1 notification, got %d", sink.n)
		}
		if len(v.Errors()) != 1 {
			t.Errorf("expected 1 error, got %v", v.Errors())
		}
		if v.Get() != "medium" {
			t.Errorf("expected invalid value kept, got %q", v.Get())
		}
	})

	t.Run("DefaultWhenUnresolved", func(t *testing.T) {
		doc := newTestDocument()
		v := PathValue(doc, attr.PathOf(attr.Root.Field("missing"), attr.IntegerLens), 42, nil)
		if v.IsValid() {
			t.Error("expected invalid")
		}
		if v.Get() != 42 {
			t.Errorf("expected default 42, got %d", v.Get())
		}
		if r := v.Set(1); r != attr.Failed {
			t.Errorf("expected Failed, got %s", r)
		}
	})

	t.Run("DefaultWhenWrongKind", func(t *testing.T) {
		doc := newTestDocument()
		v := PathValue(doc, attr.PathOf(attr.Root.Field("title"), attr.BoolLens), true, nil)
		if v.IsValid() {
			t.Error("expected invalid")
		}
		if !v.Get() {
			t.Error("expected default true")
		}
	})
}

func TestRefValue(t *testing.T) {
	ref := Cell("draft")
	errs := Const([]string{"too short"})
	v := RefValue(ref, errs)

	if v.Get() != "draft" {
		t.Errorf("expected 'draft', got %q", v.Get())
	}
	if r := v.Set("edited"); r != attr.Changed {
		t.Errorf("expected Changed, got %s", r)
	}
	if ref.Get() != "edited" {
		t.Errorf("expected ref updated, got %q", ref.Get())
	}
	if got := v.Errors(); len(got) != 1 || got[0] != "too short" {
		t.Errorf("expected [too short], got %v", got)
	}
	if !v.IsValid() {
		t.Error("ref values always resolve")
	}

	if got := RefValue(ref, ConstRef[[]string]{}).Errors(); got != nil {
		t.Errorf("expected no errors from an empty ConstRef, got %v", got)
	}
}

func TestBindValueOnDraft(t *testing.T) {
	draft := Cell[attr.Attribute](attr.Enumerated{Value: "fast", ValidValues: []string{"fast", "slow"}})
	sink := &countingSink{}
	v := BindValue(BindRef(draft, nil), attr.EnumeratedLens, "", sink)

	if r := v.Set("slow"); r != attr.Changed {
		t.Errorf("expected Changed, got %s", r)
	}
	if got := draft.Get().(attr.Enumerated).Value; got != "slow" {
		t.Errorf("expected draft updated, got %q", got)
	}
	if r := v.Set("medium"); r != attr.Failed {
		t.Errorf("expected Failed, got %s", r)
	}
	if len(v.Errors()) != 1 {
		t.Errorf("expected 1 error, got %v", v.Errors())
	}
	if sink.n != 2 {
		t.Errorf("expected 2 notifications, got %d", sink.n)
	}
}
