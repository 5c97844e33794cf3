// Package dynamic derives pointer and scroll state from DOM-like event
// sources. Document listeners are shared between all subscribers and exist
// only while somebody needs them.
package dynamic

// Event types observed by accessors.
const (
	EventMouseMove = "mousemove"
	EventMouseDown = "mousedown"
	EventMouseUp   = "mouseup"
	EventScroll    = "scroll"
)

// Event is anything dispatched to listeners.
type Event interface {
	Type() string
	// Bubbles reports if event propagates from element to document.
	Bubbles() bool
}

// MouseEvent carries pointer coordinates relative to viewport.
type MouseEvent struct {
	Kind    string
	ClientX float64
	ClientY float64
	Button  int
}

func (e MouseEvent) Type() string  { return e.Kind }
func (e MouseEvent) Bubbles() bool { return true }

// ScrollEvent signals scroll offset change of its target, new offset is
// read from the target itself.
type ScrollEvent struct{}

func (ScrollEvent) Type() string  { return EventScroll }
func (ScrollEvent) Bubbles() bool { return false }

// Listener wraps handler function. Listeners are compared by identity, the
// same *Listener must be used to remove what was added.
type Listener struct {
	fn func(Event)
}

func NewListener(fn func(Event)) *Listener {
	return &Listener{fn: fn}
}

// Handle invokes handler.
func (l *Listener) Handle(e Event) {
	if l == nil || l.fn == nil {
		return
	}
	l.fn(e)
}

// EventTarget is implemented by documents and elements.
type EventTarget interface {
	AddEventListener(typ string, l *Listener)
	RemoveEventListener(typ string, l *Listener)
}

type Point struct {
	X, Y float64
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is element bounding box relative to viewport.
type Rect struct {
	Left, Top, Width, Height float64
}

// Viewport is the document level event source, its scroll offset is the
// global scroll position.
type Viewport interface {
	EventTarget
	ScrollOffset() Point
}

// Element is an individual event source with its own geometry.
type Element interface {
	EventTarget
	BoundingClientRect() Rect
	ScrollOffset() Point
}
