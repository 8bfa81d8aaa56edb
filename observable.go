package attrview

// Sink receives "about to change" notifications from values and view models.
type Sink interface {
	WillChange()
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func()

func (f SinkFunc) WillChange() { f() }

// Sinks fans one notification out to several sinks. Nil entries are skipped.
type Sinks []Sink

func (s Sinks) WillChange() {
	for _, sink := range s {
		if sink != nil {
			sink.WillChange()
		}
	}
}

// Notifier is embedded by every view model. It broadcasts a signal before
// the view model's state changes so renderers can redraw.
// All calls happen on the UI goroutine; there is no locking.
type Notifier struct {
	listeners []func()
}

// Subscribe adds a change listener and returns an unsubscribe function.
func (n *Notifier) Subscribe(fn func()) func() {
	n.listeners = append(n.listeners, fn)
	idx := len(n.listeners) - 1
	return func() {
		// Zero out to allow GC, don't reorder
		n.listeners[idx] = nil
	}
}

// WillChange notifies every subscriber, in subscription order.
func (n *Notifier) WillChange() {
	for _, fn := range n.listeners {
		if fn != nil {
			fn()
		}
	}
}
