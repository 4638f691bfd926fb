package dom

import (
	"golang.org/x/net/html"
)

// Event is a dispatched DOM event.
type Event struct {
	Type          string
	Target        *html.Node
	CurrentTarget *html.Node

	defaultPrevented bool
	stopped          bool
}

// PreventDefault suppresses the browser's default action.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation keeps the event from reaching ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// Handler reacts to an event.
type Handler func(*Event)

// AddEventListener registers h for typ on n. A nil node registers on the
// document itself, which sees every bubbling event last.
func (d *Document) AddEventListener(n *html.Node, typ string, h Handler) {
	if h == nil {
		return
	}
	if n == nil {
		d.docListeners[typ] = append(d.docListeners[typ], h)
		return
	}
	m := d.listeners[n]
	if m == nil {
		m = map[string][]Handler{}
		d.listeners[n] = m
	}
	m[typ] = append(m[typ], h)
}

// ListenerCount returns how many handlers are registered for typ on n
// (nil for the document).
func (d *Document) ListenerCount(n *html.Node, typ string) int {
	if n == nil {
		return len(d.docListeners[typ])
	}
	return len(d.listeners[n][typ])
}

// Dispatch fires typ at target and bubbles it to the document.
func (d *Document) Dispatch(target *html.Node, typ string) *Event {
	ev := &Event{Type: typ, Target: target}
	for n := target; n != nil && !ev.stopped; n = n.Parent {
		hs := d.listeners[n][typ]
		if len(hs) == 0 {
			continue
		}
		ev.CurrentTarget = n
		for _, h := range append([]Handler(nil), hs...) {
			h(ev)
		}
	}
	if !ev.stopped {
		ev.CurrentTarget = nil
		for _, h := range append([]Handler(nil), d.docListeners[typ]...) {
			h(ev)
		}
	}
	return ev
}

// Click dispatches a click on the first element matching selector. It
// reports false when nothing matched.
func (d *Document) Click(selector string) (*Event, bool) {
	n := d.First(selector)
	if n == nil {
		return nil, false
	}
	return d.Dispatch(n, "click"), true
}

// Submit dispatches a submit on the first form matching selector.
func (d *Document) Submit(selector string) (*Event, bool) {
	n := d.First(selector)
	if n == nil {
		return nil, false
	}
	return d.Dispatch(n, "submit"), true
}
