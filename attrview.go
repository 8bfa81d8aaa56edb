// Package attrview provides observable view models over an attribute tree,
// and terminal renderers for them.
//
// Each view model wraps one node of an attr.Modifiable (or of a detached
// draft), builds child view models lazily, and forwards change
// notifications only to children that match the node's current kind.
// Everything runs on the UI goroutine; nothing here locks.
package attrview

import (
	"errors"
	"fmt"

	"github.com/kungfusheep/attrview/attr"
)

var (
	// ErrKindMismatch is returned by kind-specific accessors when the live
	// attribute holds a different kind.
	ErrKindMismatch = errors.New("attribute kind mismatch")

	// ErrUnresolved is returned when a view model's address no longer
	// resolves, e.g. after its row was deleted.
	ErrUnresolved = errors.New("attribute address does not resolve")

	// ErrNoField is returned for a field or column the live schema does not declare.
	ErrNoField = errors.New("no such field")
)

// KindError reports a kind-specific accessor used on the wrong kind.
type KindError struct {
	Addr string
	Want attr.Kind
	Got  attr.Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("%s: want %s attribute, have %s", e.Addr, e.Want, e.Got)
}

func (e *KindError) Unwrap() error { return ErrKindMismatch }

// liveKind returns the kind at b, or ErrUnresolved.
func liveKind(b Binding) (attr.Kind, error) {
	a, ok := b.Attribute()
	if !ok {
		return 0, fmt.Errorf("%s: %w", b.Address(), ErrUnresolved)
	}
	return a.Kind(), nil
}

// expectKind checks the live kind at b against want.
func expectKind(b Binding, want attr.Kind) error {
	got, err := liveKind(b)
	if err != nil {
		return err
	}
	if got != want {
		return &KindError{Addr: b.Address().String(), Want: want, Got: got}
	}
	return nil
}
