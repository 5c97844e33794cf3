package dynamic

import (
	"sync"

	"go.uber.org/zap"
)

type MouseState struct {
	Pos    Point
	IsDown bool
}

type ScrollState struct {
	Pos Point
}

// State is snapshot of derived pointer and scroll state for one element.
type State struct {
	Mouse struct {
		Global, Local MouseState
	}
	Scroll struct {
		Global, Local ScrollState
	}
}

type leaf int

const (
	leafMouseGlobalPos leaf = iota
	leafMouseGlobalIsDown
	leafMouseLocalPos
	leafMouseLocalIsDown
	leafScrollGlobalPos
	leafScrollLocalPos
)

func (l leaf) String() string {
	switch l {
	case leafMouseGlobalPos:
		return "mouse.global.pos"
	case leafMouseGlobalIsDown:
		return "mouse.global.isDown"
	case leafMouseLocalPos:
		return "mouse.local.pos"
	case leafMouseLocalIsDown:
		return "mouse.local.isDown"
	case leafScrollGlobalPos:
		return "scroll.global.pos"
	case leafScrollLocalPos:
		return "scroll.local.pos"
	}
	return "unknown"
}

type subscription struct {
	event     string
	onElement bool
	update    func(a *Accessors, e Event)
}

// leafSubscriptions lists event sources for every state leaf. Element
// sources are attached to the element directly, everything else goes
// through shared document listeners.
var leafSubscriptions = map[leaf][]subscription{
	leafMouseGlobalPos: {
		{event: EventMouseMove, update: func(a *Accessors, e Event) {
			if me, ok := e.(MouseEvent); ok {
				a.state.Mouse.Global.Pos = Point{X: me.ClientX, Y: me.ClientY}
			}
		}},
	},
	leafMouseGlobalIsDown: {
		{event: EventMouseDown, update: func(a *Accessors, _ Event) { a.state.Mouse.Global.IsDown = true }},
		{event: EventMouseUp, update: func(a *Accessors, _ Event) { a.state.Mouse.Global.IsDown = false }},
	},
	leafMouseLocalPos: {
		{event: EventMouseMove, update: func(a *Accessors, e Event) {
			if me, ok := e.(MouseEvent); ok {
				// geometry may change at any time, it is read per event
				r := a.el.BoundingClientRect()
				a.state.Mouse.Local.Pos = Point{X: me.ClientX, Y: me.ClientY}.Sub(Point{X: r.Left, Y: r.Top})
			}
		}},
	},
	leafMouseLocalIsDown: {
		{event: EventMouseDown, onElement: true, update: func(a *Accessors, _ Event) { a.state.Mouse.Local.IsDown = true }},
		{event: EventMouseUp, update: func(a *Accessors, _ Event) { a.state.Mouse.Local.IsDown = false }},
	},
	leafScrollGlobalPos: {
		{event: EventScroll, update: func(a *Accessors, _ Event) {
			a.state.Scroll.Global.Pos = a.viewport.ScrollOffset()
		}},
	},
	leafScrollLocalPos: {
		{event: EventScroll, onElement: true, update: func(a *Accessors, _ Event) {
			a.state.Scroll.Local.Pos = a.el.ScrollOffset()
		}},
	},
}

// Accessors exposes derived state for a single element. Event subscriptions
// are made lazily on first read of each state leaf and are kept until Close.
type Accessors struct {
	Mouse  MouseAccessors
	Scroll ScrollAccessors

	el       Element
	viewport Viewport
	shared   *SharedListeners
	onChange func()
	log      *zap.Logger

	mu       sync.Mutex
	state    State
	attached map[leaf]bool
	cleanups []func()
	closed   bool
}

type MouseAccessors struct {
	Global, Local MouseAccessor
}

type ScrollAccessors struct {
	Global, Local ScrollAccessor
}

type MouseAccessor struct {
	a     *Accessors
	local bool
}

// Pos returns pointer position, relative to element for local accessor.
func (m MouseAccessor) Pos() Point {
	if m.local {
		m.a.attach(leafMouseLocalPos)
		return m.a.State().Mouse.Local.Pos
	}
	m.a.attach(leafMouseGlobalPos)
	return m.a.State().Mouse.Global.Pos
}

// IsDown reports if button is pressed. Local accessor only counts presses
// started on the element.
func (m MouseAccessor) IsDown() bool {
	if m.local {
		m.a.attach(leafMouseLocalIsDown)
		return m.a.State().Mouse.Local.IsDown
	}
	m.a.attach(leafMouseGlobalIsDown)
	return m.a.State().Mouse.Global.IsDown
}

type ScrollAccessor struct {
	a     *Accessors
	local bool
}

// Pos returns scroll offset of the viewport or of the element.
func (s ScrollAccessor) Pos() Point {
	if s.local {
		s.a.attach(leafScrollLocalPos)
		return s.a.State().Scroll.Local.Pos
	}
	s.a.attach(leafScrollGlobalPos)
	return s.a.State().Scroll.Global.Pos
}

// NewAccessors creates accessors for element. onChange, if not nil, is
// called after every state update outside of any internal lock.
func NewAccessors(el Element, viewport Viewport, shared *SharedListeners, onChange func(), log *zap.Logger) *Accessors {
	a := &Accessors{
		el:       el,
		viewport: viewport,
		shared:   shared,
		onChange: onChange,
		log:      log.Named("accessors"),
		attached: make(map[leaf]bool),
	}
	a.Mouse = MouseAccessors{Global: MouseAccessor{a: a}, Local: MouseAccessor{a: a, local: true}}
	a.Scroll = ScrollAccessors{Global: ScrollAccessor{a: a}, Local: ScrollAccessor{a: a, local: true}}
	return a
}

// State returns copy of current state without attaching anything.
func (a *Accessors) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.state
}

// Attached returns number of state leaves being tracked.
func (a *Accessors) Attached() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.attached)
}

// Close removes every subscription made by accessors, each exactly once.
// Subsequent calls do nothing.
func (a *Accessors) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	cleanups := a.cleanups
	a.cleanups = nil
	a.mu.Unlock()

	for _, cleanup := range cleanups {
		cleanup()
	}
	a.log.Debug("Accessors closed", zap.Int("subscriptions", len(cleanups)))
	return nil
}

func (a *Accessors) attach(l leaf) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed || a.attached[l] {
		return
	}
	a.attached[l] = true

	for _, sub := range leafSubscriptions[l] {
		handler := func(e Event) { a.handle(sub.update, e) }
		if sub.onElement {
			listener := NewListener(handler)
			a.el.AddEventListener(sub.event, listener)
			a.cleanups = append(a.cleanups, func() {
				a.el.RemoveEventListener(sub.event, listener)
			})
			continue
		}
		a.cleanups = append(a.cleanups, a.shared.On(sub.event, handler))
	}
	a.log.Debug("State leaf attached", zap.Stringer("leaf", l))
}

func (a *Accessors) handle(update func(*Accessors, Event), e Event) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	update(a, e)
	a.mu.Unlock()

	if a.onChange != nil {
		a.onChange()
	}
}
