package dom

import (
	"slices"
	"strings"
	"sync"

	"rvcss/dynamic"
)

type property struct {
	name, value string
}

// Element keeps class list and inline style in insertion order.
type Element struct {
	doc *Document
	tag string

	mu        sync.Mutex
	classes   []string
	style     []property
	listeners listeners
	rect      dynamic.Rect
	scroll    dynamic.Point
}

func (el *Element) Tag() string {
	return el.tag
}

// AddClass appends classes not yet present.
func (el *Element) AddClass(names ...string) {
	el.mu.Lock()
	defer el.mu.Unlock()

	for _, name := range names {
		if name != "" && !slices.Contains(el.classes, name) {
			el.classes = append(el.classes, name)
		}
	}
}

func (el *Element) RemoveClass(names ...string) {
	el.mu.Lock()
	defer el.mu.Unlock()

	el.classes = slices.DeleteFunc(el.classes, func(c string) bool {
		return slices.Contains(names, c)
	})
}

func (el *Element) HasClass(name string) bool {
	el.mu.Lock()
	defer el.mu.Unlock()

	return slices.Contains(el.classes, name)
}

// Classes returns copy of class list.
func (el *Element) Classes() []string {
	el.mu.Lock()
	defer el.mu.Unlock()

	return slices.Clone(el.classes)
}

// ClassName returns value of class attribute.
func (el *Element) ClassName() string {
	el.mu.Lock()
	defer el.mu.Unlock()

	return strings.Join(el.classes, " ")
}

// SetStyleProperty sets inline property keeping its original position when
// it already exists.
func (el *Element) SetStyleProperty(name, value string) {
	el.mu.Lock()
	defer el.mu.Unlock()

	for i := range el.style {
		if el.style[i].name == name {
			el.style[i].value = value
			return
		}
	}
	el.style = append(el.style, property{name: name, value: value})
}

func (el *Element) RemoveStyleProperty(name string) {
	el.mu.Lock()
	defer el.mu.Unlock()

	el.style = slices.DeleteFunc(el.style, func(p property) bool {
		return p.name == name
	})
}

func (el *Element) StyleProperty(name string) (string, bool) {
	el.mu.Lock()
	defer el.mu.Unlock()

	for _, p := range el.style {
		if p.name == name {
			return p.value, true
		}
	}
	return "", false
}

// StyleText returns value of style attribute.
func (el *Element) StyleText() string {
	el.mu.Lock()
	defer el.mu.Unlock()

	var b strings.Builder
	for i, p := range el.style {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.name)
		b.WriteString(": ")
		b.WriteString(p.value)
		b.WriteByte(';')
	}
	return b.String()
}

func (el *Element) AddEventListener(typ string, l *dynamic.Listener) {
	el.mu.Lock()
	defer el.mu.Unlock()

	el.listeners.add(typ, l)
}

func (el *Element) RemoveEventListener(typ string, l *dynamic.Listener) {
	el.mu.Lock()
	defer el.mu.Unlock()

	el.listeners.remove(typ, l)
}

// Listeners returns number of listeners registered on element for typ.
func (el *Element) Listeners(typ string) int {
	el.mu.Lock()
	defer el.mu.Unlock()

	return len(el.listeners[typ])
}

// Dispatch delivers event to element listeners and, when event bubbles, to
// document afterwards.
func (el *Element) Dispatch(e dynamic.Event) {
	el.mu.Lock()
	ls := slices.Clone(el.listeners[e.Type()])
	el.mu.Unlock()

	for _, l := range ls {
		l.Handle(e)
	}
	if e.Bubbles() && el.doc != nil {
		el.doc.Dispatch(e)
	}
}

func (el *Element) SetRect(r dynamic.Rect) {
	el.mu.Lock()
	defer el.mu.Unlock()

	el.rect = r
}

func (el *Element) BoundingClientRect() dynamic.Rect {
	el.mu.Lock()
	defer el.mu.Unlock()

	return el.rect
}

// ScrollTo changes element scroll offset and dispatches scroll event.
func (el *Element) ScrollTo(p dynamic.Point) {
	el.mu.Lock()
	el.scroll = p
	el.mu.Unlock()

	el.Dispatch(dynamic.ScrollEvent{})
}

func (el *Element) ScrollOffset() dynamic.Point {
	el.mu.Lock()
	defer el.mu.Unlock()

	return el.scroll
}
