package dom

import "sort"

// Pointer event types used by interaction controllers.
const (
	EventPointerDown  = "pointerdown"
	EventPointerMove  = "pointermove"
	EventPointerUp    = "pointerup"
	EventPointerLeave = "pointerleave"
	EventPointerEnter = "pointerenter"
)

// nonBubbling lists event types delivered only to their target.
var nonBubbling = map[string]bool{
	EventPointerEnter: true,
	EventPointerLeave: true,
}

// Bubbles reports whether events of type typ propagate to ancestors and
// the document.
func Bubbles(typ string) bool { return !nonBubbling[typ] }

// Event is a dispatched platform event.
type Event struct {
	Type   string
	X, Y   float64
	Button int

	// Target is the node the event was dispatched on. Nil for events
	// dispatched directly on the document.
	Target *Node

	defaultPrevented bool
	stopped          bool
}

// NewPointerEvent creates a pointer event at the given coordinates.
func NewPointerEvent(typ string, x, y float64) *Event {
	return &Event{Type: typ, X: x, Y: y}
}

// PreventDefault suppresses default platform handling for the event.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation stops the event from bubbling further.
func (e *Event) StopPropagation() { e.stopped = true }

// Listener handles an event.
type Listener func(*Event)

type listenerEntry struct {
	fn Listener
}

// eventTarget stores listeners by event type.
type eventTarget struct {
	listeners map[string][]*listenerEntry
}

// AddEventListener registers fn for events of type typ and returns a
// function that removes it. Calling the returned function more than once
// is a no-op.
func (t *eventTarget) AddEventListener(typ string, fn Listener) (remove func()) {
	if fn == nil {
		return func() {}
	}
	if t.listeners == nil {
		t.listeners = make(map[string][]*listenerEntry)
	}
	entry := &listenerEntry{fn: fn}
	t.listeners[typ] = append(t.listeners[typ], entry)
	return func() { t.removeListener(typ, entry) }
}

func (t *eventTarget) removeListener(typ string, entry *listenerEntry) {
	list := t.listeners[typ]
	for i, e := range list {
		if e == entry {
			t.listeners[typ] = append(list[:i:i], list[i+1:]...)
			if len(t.listeners[typ]) == 0 {
				delete(t.listeners, typ)
			}
			return
		}
	}
}

// ListenerCount returns the number of listeners registered for typ.
func (t *eventTarget) ListenerCount(typ string) int {
	return len(t.listeners[typ])
}

// ListenerTypes returns the event types with at least one listener, sorted.
func (t *eventTarget) ListenerTypes() []string {
	types := make([]string, 0, len(t.listeners))
	for typ := range t.listeners {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

// RemoveAllListeners drops every listener.
func (t *eventTarget) RemoveAllListeners() {
	t.listeners = nil
}

// fire runs the listeners for e.Type. The listener list is snapshotted so
// listeners may remove themselves while running.
func (t *eventTarget) fire(e *Event) {
	list := t.listeners[e.Type]
	if len(list) == 0 {
		return
	}
	snapshot := make([]*listenerEntry, len(list))
	copy(snapshot, list)
	for _, entry := range snapshot {
		entry.fn(e)
	}
}
