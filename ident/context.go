package ident

import (
	"strings"

	"rvcss/common"
)

// Context is where a declaration applies: optional breakpoint and optional
// selector per relation. Zero value is the unconditioned context.
type Context struct {
	Breakpoint string
	selectors  [3]string
}

// WithBreakpoint returns copy of context limited to breakpoint.
func (c Context) WithBreakpoint(name string) Context {
	c.Breakpoint = name
	return c
}

// WithSelector returns copy of context with selector added for relation.
// Selector of the same relation already present is extended, so ":hover"
// followed by ":focus" gives ":hover:focus".
func (c Context) WithSelector(rel common.Relation, selector string) Context {
	c.selectors[rel] += selector
	return c
}

// Selector returns selector text for relation, empty when not set.
func (c Context) Selector(rel common.Relation) string {
	return c.selectors[rel]
}

// HasSelector reports whether any relation has a selector.
func (c Context) HasSelector() bool {
	for _, s := range c.selectors {
		if s != "" {
			return true
		}
	}
	return false
}

// Target builds CSS selector for the element carrying class: self selector
// is appended to the class, parent and ancestor selectors are prefixed with
// child and descendant combinators.
func (c Context) Target(className string) string {
	target := "." + className + c.selectors[common.RelationSelf]
	if parent := c.selectors[common.RelationParent]; parent != "" {
		target = parent + " > " + target
	}
	if ancestor := c.selectors[common.RelationAncestor]; ancestor != "" {
		target = ancestor + " " + target
	}
	return target
}

// selectorText is the hashed form of selector context, relation name is part
// of it so the same selector under different relations does not collide.
func (c Context) selectorText() string {
	var parts []string
	for _, rel := range common.RelationValues() {
		if s := c.selectors[rel]; s != "" {
			parts = append(parts, rel.String()+"-"+s)
		}
	}
	return strings.Join(parts, "-")
}

func (c Context) String() string {
	var sb strings.Builder
	if c.Breakpoint != "" {
		sb.WriteString("@" + c.Breakpoint)
	}
	if text := c.selectorText(); text != "" {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	return sb.String()
}
