// Package dom is a small headless document model: elements with class list,
// inline style, geometry and event listeners. It is enough to drive style
// bindings and dynamic state outside of a browser.
package dom

import (
	"slices"
	"sync"

	"rvcss/dynamic"
)

type listeners map[string][]*dynamic.Listener

func (ls listeners) add(typ string, l *dynamic.Listener) bool {
	if slices.Contains(ls[typ], l) {
		return false
	}
	ls[typ] = append(ls[typ], l)
	return true
}

func (ls listeners) remove(typ string, l *dynamic.Listener) bool {
	idx := slices.Index(ls[typ], l)
	if idx < 0 {
		return false
	}
	ls[typ] = slices.Delete(ls[typ], idx, idx+1)
	if len(ls[typ]) == 0 {
		delete(ls, typ)
	}
	return true
}

// Document is the viewport. It counts listener attachments and removals per
// event type so listener sharing can be observed.
type Document struct {
	mu        sync.Mutex
	listeners listeners
	scroll    dynamic.Point
	attached  map[string]int
	detached  map[string]int
}

func NewDocument() *Document {
	return &Document{
		listeners: make(listeners),
		attached:  make(map[string]int),
		detached:  make(map[string]int),
	}
}

// AddEventListener registers l, adding the same listener twice does nothing.
func (d *Document) AddEventListener(typ string, l *dynamic.Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.listeners.add(typ, l) {
		d.attached[typ]++
	}
}

func (d *Document) RemoveEventListener(typ string, l *dynamic.Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.listeners.remove(typ, l) {
		d.detached[typ]++
	}
}

// Dispatch delivers event to document listeners in registration order.
func (d *Document) Dispatch(e dynamic.Event) {
	d.mu.Lock()
	ls := slices.Clone(d.listeners[e.Type()])
	d.mu.Unlock()

	for _, l := range ls {
		l.Handle(e)
	}
}

// ScrollTo changes viewport offset and dispatches scroll event.
func (d *Document) ScrollTo(p dynamic.Point) {
	d.mu.Lock()
	d.scroll = p
	d.mu.Unlock()

	d.Dispatch(dynamic.ScrollEvent{})
}

func (d *Document) ScrollOffset() dynamic.Point {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.scroll
}

// Listeners returns number of listeners currently registered for typ.
func (d *Document) Listeners(typ string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.listeners[typ])
}

// Attached returns how many times a listener for typ was added.
func (d *Document) Attached(typ string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.attached[typ]
}

// Detached returns how many times a listener for typ was removed.
func (d *Document) Detached(typ string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.detached[typ]
}

// CreateElement makes new detached element owned by document. Bubbling
// events dispatched to element reach document listeners.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{
		doc:       d,
		tag:       tag,
		listeners: make(listeners),
	}
}
