package dynamic_test

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"rvcss/dom"
	"rvcss/dynamic"
)

func move(x, y float64) dynamic.MouseEvent {
	return dynamic.MouseEvent{Kind: dynamic.EventMouseMove, ClientX: x, ClientY: y}
}

func TestSharedListeners_SingleDocumentListener(t *testing.T) {
	doc := dom.NewDocument()
	shared := dynamic.NewSharedListeners(doc, zaptest.NewLogger(t))

	var a, b int
	offA := shared.On(dynamic.EventMouseMove, func(dynamic.Event) { a++ })
	offB := shared.On(dynamic.EventMouseMove, func(dynamic.Event) { b++ })

	if doc.Attached(dynamic.EventMouseMove) != 1 {
		t.Fatalf("expected one document listener, got %d", doc.Attached(dynamic.EventMouseMove))
	}

	doc.Dispatch(move(1, 1))
	if a != 1 || b != 1 {
		t.Errorf("expected both subscribers notified, got %d %d", a, b)
	}

	offA()
	offA()
	if doc.Detached(dynamic.EventMouseMove) != 0 {
		t.Errorf("listener removed while subscribers remain")
	}
	if shared.Subscribers(dynamic.EventMouseMove) != 1 {
		t.Errorf("expected 1 subscriber, got %d", shared.Subscribers(dynamic.EventMouseMove))
	}

	offB()
	if doc.Detached(dynamic.EventMouseMove) != 1 || doc.Listeners(dynamic.EventMouseMove) != 0 {
		t.Errorf("document listener not removed after last unsubscribe")
	}
	if len(shared.Types()) != 0 {
		t.Errorf("unexpected active types %v", shared.Types())
	}

	// re-subscribing attaches again
	off := shared.On(dynamic.EventMouseMove, func(dynamic.Event) {})
	defer off()
	if doc.Attached(dynamic.EventMouseMove) != 2 {
		t.Errorf("expected re-attach, got %d", doc.Attached(dynamic.EventMouseMove))
	}
}

func TestAccessors_LazyAttach(t *testing.T) {
	doc := dom.NewDocument()
	log := zaptest.NewLogger(t)
	shared := dynamic.NewSharedListeners(doc, log)
	el := doc.CreateElement("div")

	acc := dynamic.NewAccessors(el, doc, shared, nil, log)
	if acc.Attached() != 0 || len(shared.Types()) != 0 {
		t.Fatal("accessors subscribed before any read")
	}

	_ = acc.Mouse.Global.Pos()
	_ = acc.Mouse.Global.Pos()
	if acc.Attached() != 1 || shared.Subscribers(dynamic.EventMouseMove) != 1 {
		t.Errorf("repeated read attached more than once")
	}
	if shared.Subscribers(dynamic.EventMouseDown) != 0 {
		t.Errorf("unread leaf attached")
	}
}

func TestAccessors_ListenerSharing(t *testing.T) {
	doc := dom.NewDocument()
	log := zaptest.NewLogger(t)
	shared := dynamic.NewSharedListeners(doc, log)

	var all []*dynamic.Accessors
	for range 3 {
		acc := dynamic.NewAccessors(doc.CreateElement("div"), doc, shared, nil, log)
		_ = acc.Mouse.Global.IsDown()
		all = append(all, acc)
	}

	for _, typ := range []string{dynamic.EventMouseDown, dynamic.EventMouseUp} {
		if doc.Attached(typ) != 1 {
			t.Errorf("%s: expected single document listener, got %d", typ, doc.Attached(typ))
		}
		if shared.Subscribers(typ) != 3 {
			t.Errorf("%s: expected 3 subscribers, got %d", typ, shared.Subscribers(typ))
		}
	}

	if err := all[0].Close(); err != nil {
		t.Fatal(err)
	}
	for _, typ := range []string{dynamic.EventMouseDown, dynamic.EventMouseUp} {
		if shared.Subscribers(typ) != 2 {
			t.Errorf("%s: expected 2 subscribers after close, got %d", typ, shared.Subscribers(typ))
		}
		if doc.Detached(typ) != 0 {
			t.Errorf("%s: document listener removed too early", typ)
		}
	}

	for _, acc := range all[1:] {
		if err := acc.Close(); err != nil {
			t.Fatal(err)
		}
	}
	for _, typ := range []string{dynamic.EventMouseDown, dynamic.EventMouseUp} {
		if doc.Detached(typ) != 1 || doc.Listeners(typ) != 0 {
			t.Errorf("%s: document listener not removed", typ)
		}
	}
}

func TestAccessors_MouseState(t *testing.T) {
	doc := dom.NewDocument()
	log := zaptest.NewLogger(t)
	shared := dynamic.NewSharedListeners(doc, log)
	el := doc.CreateElement("div")
	el.SetRect(dynamic.Rect{Left: 100, Top: 50, Width: 200, Height: 100})

	changes := 0
	acc := dynamic.NewAccessors(el, doc, shared, func() { changes++ }, log)
	defer acc.Close()

	_ = acc.Mouse.Global.Pos()
	_ = acc.Mouse.Local.Pos()
	_ = acc.Mouse.Global.IsDown()
	_ = acc.Mouse.Local.IsDown()

	doc.Dispatch(move(130, 70))
	if p := acc.Mouse.Global.Pos(); p.X != 130 || p.Y != 70 {
		t.Errorf("global pos = %v", p)
	}
	if p := acc.Mouse.Local.Pos(); p.X != 30 || p.Y != 20 {
		t.Errorf("local pos = %v", p)
	}

	// element moved, local position follows at next event
	el.SetRect(dynamic.Rect{Left: 0, Top: 0})
	doc.Dispatch(move(130, 70))
	if p := acc.Mouse.Local.Pos(); p.X != 130 || p.Y != 70 {
		t.Errorf("local pos after move = %v", p)
	}

	// press outside of element
	doc.Dispatch(dynamic.MouseEvent{Kind: dynamic.EventMouseDown})
	if !acc.Mouse.Global.IsDown() || acc.Mouse.Local.IsDown() {
		t.Errorf("unexpected down state %+v", acc.State().Mouse)
	}
	doc.Dispatch(dynamic.MouseEvent{Kind: dynamic.EventMouseUp})

	// press on element, release anywhere
	el.Dispatch(dynamic.MouseEvent{Kind: dynamic.EventMouseDown})
	if !acc.Mouse.Global.IsDown() || !acc.Mouse.Local.IsDown() {
		t.Errorf("unexpected down state %+v", acc.State().Mouse)
	}
	doc.Dispatch(dynamic.MouseEvent{Kind: dynamic.EventMouseUp})
	if acc.Mouse.Global.IsDown() || acc.Mouse.Local.IsDown() {
		t.Errorf("unexpected down state %+v", acc.State().Mouse)
	}

	if changes == 0 {
		t.Error("onChange never called")
	}
}

func TestAccessors_ScrollState(t *testing.T) {
	doc := dom.NewDocument()
	log := zaptest.NewLogger(t)
	shared := dynamic.NewSharedListeners(doc, log)
	el := doc.CreateElement("div")

	acc := dynamic.NewAccessors(el, doc, shared, nil, log)
	defer acc.Close()

	_ = acc.Scroll.Global.Pos()
	_ = acc.Scroll.Local.Pos()

	doc.ScrollTo(dynamic.Point{Y: 300})
	el.ScrollTo(dynamic.Point{X: 5, Y: 15})

	st := acc.State()
	if st.Scroll.Global.Pos.Y != 300 {
		t.Errorf("global scroll = %v", st.Scroll.Global.Pos)
	}
	if st.Scroll.Local.Pos.X != 5 || st.Scroll.Local.Pos.Y != 15 {
		t.Errorf("local scroll = %v", st.Scroll.Local.Pos)
	}
	if el.Listeners(dynamic.EventScroll) != 1 {
		t.Errorf("expected element scroll listener")
	}
}

func TestAccessors_Close(t *testing.T) {
	doc := dom.NewDocument()
	log := zaptest.NewLogger(t)
	shared := dynamic.NewSharedListeners(doc, log)
	el := doc.CreateElement("div")

	changes := 0
	acc := dynamic.NewAccessors(el, doc, shared, func() { changes++ }, log)
	_ = acc.Mouse.Local.IsDown()
	_ = acc.Scroll.Local.Pos()
	_ = acc.Mouse.Global.Pos()

	if err := acc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := acc.Close(); err != nil {
		t.Fatal(err)
	}

	if el.Listeners(dynamic.EventMouseDown) != 0 || el.Listeners(dynamic.EventScroll) != 0 {
		t.Error("element listeners left behind")
	}
	for _, typ := range []string{dynamic.EventMouseUp, dynamic.EventMouseMove} {
		if doc.Listeners(typ) != 0 || doc.Detached(typ) != 1 {
			t.Errorf("%s: document listener left behind", typ)
		}
	}

	// reads after close do not subscribe again
	_ = acc.Mouse.Global.IsDown()
	if len(shared.Types()) != 0 {
		t.Errorf("closed accessors subscribed: %v", shared.Types())
	}
	doc.Dispatch(move(1, 1))
	if changes != 0 {
		t.Errorf("closed accessors reported change")
	}
}
