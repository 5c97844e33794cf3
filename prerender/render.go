// Package prerender applies style bindings to static HTML documents so the
// page is styled before any script runs.
package prerender

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"

	"rvcss/binder"
	"rvcss/css"
	"rvcss/dom"
	"rvcss/dynamic"
	"rvcss/engine"
	"rvcss/reactive"
	"rvcss/style"
)

const (
	// AttrStyles lists style names to apply to element, merged left to right.
	AttrStyles = "data-rv"
	// AttrRoot marks injected style element with root rules.
	AttrRoot = "data-rvcss"
	// AttrBreakpoints marks injected style element with media groups.
	AttrBreakpoints = "data-rvcss-breakpoints"
)

type options struct {
	enc encoding.Encoding
}

type Option func(*options)

// WithEncoding disables encoding detection, input is decoded with enc.
func WithEncoding(enc encoding.Encoding) Option {
	return func(o *options) {
		o.enc = enc
	}
}

// Render reads HTML document from r, binds every element carrying AttrStyles
// and writes resulting document with generated stylesheets to w. Input is
// converted to UTF-8 according to its BOM or meta charset unless encoding is
// forced. Bindings are released before return, engine keeps no references
// from this document.
func Render(ctx context.Context, r io.Reader, w io.Writer, lib *style.Library, eng *engine.Engine, log *zap.Logger, opts ...Option) (err error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	log = log.Named("prerender")

	var rd io.Reader
	if o.enc != nil {
		rd = o.enc.NewDecoder().Reader(r)
	} else if rd, err = charset.NewReader(r, ""); err != nil {
		return fmt.Errorf("unable to detect document encoding: %w", err)
	}
	doc, err := html.Parse(rd)
	if err != nil {
		return fmt.Errorf("unable to parse document: %w", err)
	}

	// dynamic callbacks are evaluated once against initial state
	viewport := dom.NewDocument()
	bopts := []binder.Option{
		binder.WithLogger(log),
		binder.WithEvents(viewport, dynamic.NewSharedListeners(viewport, log)),
	}
	parser := css.NewParser(log)

	var bindings []*binder.Binding
	defer func() {
		for _, b := range bindings {
			err = multierr.Append(err, b.Close())
		}
	}()

	for n := range doc.Descendants() {
		if n.Type != html.ElementNode {
			continue
		}
		value, ok := getAttr(n, AttrStyles)
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		removeAttr(n, AttrStyles)

		names := strings.Fields(value)
		if len(names) == 0 {
			continue
		}
		decl, err := lib.Resolve(names...)
		if err != nil {
			return fmt.Errorf("element <%s>: %w", n.Data, err)
		}
		b, err := binder.Bind(newElement(n, parser, log), eng, reactive.NewSignal(decl), bopts...)
		if err != nil {
			return fmt.Errorf("element <%s> styles %q: %w", n.Data, value, err)
		}
		bindings = append(bindings, b)
	}

	head := findHead(doc)
	if head == nil {
		// this should never happen, parser always creates head
		panic("document has no head element")
	}
	injectStyle(head, AttrRoot, eng.RootStylesheet().String())
	injectStyle(head, AttrBreakpoints, eng.BreakpointStylesheet().String())

	log.Debug("Document prerendered", zap.Int("elements", len(bindings)), zap.Int("classes", eng.Len()))

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("unable to render document: %w", err)
	}
	return nil
}

func findHead(doc *html.Node) *html.Node {
	for n := range doc.Descendants() {
		if n.Type == html.ElementNode && n.DataAtom == atom.Head {
			return n
		}
	}
	return nil
}

// injectStyle appends style element marked with attr to head, element left
// by previous rendering is reused.
func injectStyle(head *html.Node, attr, text string) {
	var node *html.Node
	for c := range head.ChildNodes() {
		if c.Type != html.ElementNode || c.DataAtom != atom.Style {
			continue
		}
		if _, ok := getAttr(c, attr); ok {
			node = c
			break
		}
	}
	if node == nil {
		node = &html.Node{
			Type:     html.ElementNode,
			Data:     atom.Style.String(),
			DataAtom: atom.Style,
			Attr:     []html.Attribute{{Key: attr}},
		}
		head.AppendChild(node)
	}
	for node.FirstChild != nil {
		node.RemoveChild(node.FirstChild)
	}
	node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}
