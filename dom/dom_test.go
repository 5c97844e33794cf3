package dom

import (
	"slices"
	"testing"

	"rvcss/dynamic"
)

func TestElement_Classes(t *testing.T) {
	el := NewDocument().CreateElement("div")

	el.AddClass("_a", "_b", "_a", "")
	el.AddClass("_c")
	el.RemoveClass("_b", "_missing")

	if got := el.ClassName(); got != "_a _c" {
		t.Errorf("ClassName() = %q", got)
	}
	if !el.HasClass("_c") || el.HasClass("_b") {
		t.Errorf("unexpected class list %v", el.Classes())
	}
}

func TestElement_Style(t *testing.T) {
	el := NewDocument().CreateElement("div")

	el.SetStyleProperty("background-color", "red")
	el.SetStyleProperty("width", "10rem")
	el.SetStyleProperty("background-color", "blue")

	if got := el.StyleText(); got != "background-color: blue; width: 10rem;" {
		t.Errorf("StyleText() = %q", got)
	}

	el.RemoveStyleProperty("background-color")
	if _, ok := el.StyleProperty("background-color"); ok {
		t.Error("property was not removed")
	}
	if v, ok := el.StyleProperty("width"); !ok || v != "10rem" {
		t.Errorf("StyleProperty(width) = %q, %v", v, ok)
	}
}

func TestDocument_ListenerCounters(t *testing.T) {
	doc := NewDocument()

	var got []string
	l := dynamic.NewListener(func(e dynamic.Event) { got = append(got, e.Type()) })

	doc.AddEventListener(dynamic.EventMouseUp, l)
	doc.AddEventListener(dynamic.EventMouseUp, l)
	if doc.Attached(dynamic.EventMouseUp) != 1 || doc.Listeners(dynamic.EventMouseUp) != 1 {
		t.Fatalf("duplicate listener registered")
	}

	doc.Dispatch(dynamic.MouseEvent{Kind: dynamic.EventMouseUp})
	doc.RemoveEventListener(dynamic.EventMouseUp, l)
	doc.RemoveEventListener(dynamic.EventMouseUp, l)
	doc.Dispatch(dynamic.MouseEvent{Kind: dynamic.EventMouseUp})

	if doc.Detached(dynamic.EventMouseUp) != 1 {
		t.Errorf("expected single detach, got %d", doc.Detached(dynamic.EventMouseUp))
	}
	if !slices.Equal(got, []string{dynamic.EventMouseUp}) {
		t.Errorf("unexpected deliveries %v", got)
	}
}

func TestElement_Bubbling(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")

	var order []string
	el.AddEventListener(dynamic.EventMouseDown, dynamic.NewListener(func(dynamic.Event) { order = append(order, "element") }))
	doc.AddEventListener(dynamic.EventMouseDown, dynamic.NewListener(func(dynamic.Event) { order = append(order, "document") }))
	el.AddEventListener(dynamic.EventScroll, dynamic.NewListener(func(dynamic.Event) { order = append(order, "element-scroll") }))
	doc.AddEventListener(dynamic.EventScroll, dynamic.NewListener(func(dynamic.Event) { order = append(order, "document-scroll") }))

	el.Dispatch(dynamic.MouseEvent{Kind: dynamic.EventMouseDown})
	el.ScrollTo(dynamic.Point{Y: 10})

	want := []string{"element", "document", "element-scroll"}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if el.ScrollOffset().Y != 10 {
		t.Errorf("scroll offset not stored")
	}
}
