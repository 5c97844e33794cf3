package prerender

import (
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"rvcss/css"
	"rvcss/dynamic"
)

// element exposes parsed HTML node to binder. Class and style attributes are
// rewritten on every change, classes and properties authored in the source
// document are kept. There are no events and no geometry at render time.
type element struct {
	n       *html.Node
	classes []string
	style   []css.Declaration
}

func newElement(n *html.Node, parser *css.Parser, log *zap.Logger) *element {
	el := &element{n: n}
	if v, ok := getAttr(n, "class"); ok {
		el.classes = strings.Fields(v)
	}
	if v, ok := getAttr(n, "style"); ok {
		decls, err := parser.ParseInline(v)
		if err != nil {
			log.Warn("Ignoring malformed style attribute", zap.String("element", n.Data), zap.Error(err))
		}
		el.style = decls
	}
	return el
}

func (el *element) AddClass(names ...string) {
	for _, name := range names {
		if name != "" && !slices.Contains(el.classes, name) {
			el.classes = append(el.classes, name)
		}
	}
	el.syncClass()
}

func (el *element) RemoveClass(names ...string) {
	el.classes = slices.DeleteFunc(el.classes, func(c string) bool {
		return slices.Contains(names, c)
	})
	el.syncClass()
}

func (el *element) SetStyleProperty(name, value string) {
	idx := slices.IndexFunc(el.style, func(d css.Declaration) bool { return d.Property == name })
	if idx < 0 {
		el.style = append(el.style, css.Declaration{Property: name, Value: value})
	} else {
		el.style[idx] = css.Declaration{Property: name, Value: value}
	}
	el.syncStyle()
}

func (el *element) RemoveStyleProperty(name string) {
	el.style = slices.DeleteFunc(el.style, func(d css.Declaration) bool { return d.Property == name })
	el.syncStyle()
}

func (el *element) AddEventListener(string, *dynamic.Listener)    {}
func (el *element) RemoveEventListener(string, *dynamic.Listener) {}

func (el *element) BoundingClientRect() dynamic.Rect { return dynamic.Rect{} }
func (el *element) ScrollOffset() dynamic.Point      { return dynamic.Point{} }

func (el *element) syncClass() {
	if len(el.classes) == 0 {
		removeAttr(el.n, "class")
		return
	}
	setAttr(el.n, "class", strings.Join(el.classes, " "))
}

func (el *element) syncStyle() {
	if len(el.style) == 0 {
		removeAttr(el.n, "style")
		return
	}
	parts := make([]string, 0, len(el.style))
	for _, d := range el.style {
		parts = append(parts, d.String())
	}
	setAttr(el.n, "style", strings.Join(parts, " "))
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == key
	})
}
