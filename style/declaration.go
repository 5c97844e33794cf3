// Package style defines style declarations: ordered property/value pairs with
// breakpoint, selector, raw and dynamic blocks, and their normalization into
// physical CSS properties.
package style

import (
	"rvcss/common"
	"rvcss/dynamic"
)

// Kind tells what a declaration entry carries. It is resolved once when the
// declaration is built or decoded.
type Kind int

const (
	KindProperty Kind = iota
	KindBreakpoint
	KindSelector
	KindRaw
	KindDynamic
)

func (k Kind) String() string {
	switch k {
	case KindProperty:
		return "property"
	case KindBreakpoint:
		return "breakpoint"
	case KindSelector:
		return "selector"
	case KindRaw:
		return "raw"
	case KindDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// DynamicFunc computes inline properties from live pointer and scroll state.
// Reading an accessor subscribes the element to the events it needs.
type DynamicFunc func(*dynamic.Accessors) Map

// SelectorBlock is a pseudo-selector (":hover", ".dark", "li:first-child"...)
// with declaration applied when it matches.
type SelectorBlock struct {
	Selector string
	Block    *Declaration
}

// Entry is one item of a declaration, fields used depend on Kind.
type Entry struct {
	Kind Kind

	// KindProperty: property name; KindBreakpoint: breakpoint name
	Key   string
	Value Value
	Block *Declaration

	Relation  common.Relation
	Selectors []SelectorBlock

	Raw     []string
	Dynamic DynamicFunc
}

// Declaration is an ordered style object. Later entries win visually.
type Declaration struct {
	entries []Entry
}

// New creates empty declaration.
func New() *Declaration {
	return &Declaration{}
}

// Set adds plain property, see ValueOf for supported value types. Setting
// the same key again replaces value keeping property position.
func (d *Declaration) Set(key string, value any) *Declaration {
	d.put(Entry{Kind: KindProperty, Key: key, Value: ValueOf(value)})
	return d
}

// Breakpoint adds block applied below named breakpoint.
func (d *Declaration) Breakpoint(name string, block *Declaration) *Declaration {
	d.entries = append(d.entries, Entry{Kind: KindBreakpoint, Key: name, Block: block})
	return d
}

// Select adds block applied when selector matches in given relation to the
// element.
func (d *Declaration) Select(rel common.Relation, selector string, block *Declaration) *Declaration {
	d.entries = append(d.entries, Entry{
		Kind:      KindSelector,
		Relation:  rel,
		Selectors: []SelectorBlock{{Selector: selector, Block: block}},
	})
	return d
}

// Raw adds verbatim rules, each string must contain exactly one rule. "&"
// inside a rule stands for the generated class selector.
func (d *Declaration) Raw(rules ...string) *Declaration {
	d.entries = append(d.entries, Entry{Kind: KindRaw, Raw: rules})
	return d
}

// Dynamic sets callback producing inline properties. Only one callback is
// kept per declaration.
func (d *Declaration) Dynamic(fn DynamicFunc) *Declaration {
	d.put(Entry{Kind: KindDynamic, Dynamic: fn})
	return d
}

// Entries returns entries in declaration order.
func (d *Declaration) Entries() []Entry {
	if d == nil {
		return nil
	}
	return d.entries
}

// Len returns number of entries.
func (d *Declaration) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// DynamicFunc returns top level dynamic callback if any.
func (d *Declaration) DynamicFunc() DynamicFunc {
	for _, e := range d.Entries() {
		if e.Kind == KindDynamic {
			return e.Dynamic
		}
	}
	return nil
}

// put replaces entry of the same kind and key in place or appends it.
func (d *Declaration) put(entry Entry) {
	for i, e := range d.entries {
		if e.Kind == entry.Kind && e.Key == entry.Key {
			d.entries[i] = entry
			return
		}
	}
	d.entries = append(d.entries, entry)
}

// Merge combines declarations left to right into a new one. Plain properties
// and dynamic callbacks of later declarations replace earlier ones, blocks of
// the same breakpoint are merged, everything else is appended.
func Merge(decls ...*Declaration) *Declaration {
	res := New()
	for _, d := range decls {
		for _, e := range d.Entries() {
			switch e.Kind {
			case KindProperty:
				res.Set(e.Key, e.Value)
			case KindDynamic:
				res.Dynamic(e.Dynamic)
			case KindBreakpoint:
				merged := false
				for i := range res.entries {
					if res.entries[i].Kind == KindBreakpoint && res.entries[i].Key == e.Key {
						res.entries[i].Block = Merge(res.entries[i].Block, e.Block)
						merged = true
						break
					}
				}
				if !merged {
					res.entries = append(res.entries, Entry{Kind: KindBreakpoint, Key: e.Key, Block: Merge(e.Block)})
				}
			default:
				res.entries = append(res.entries, e)
			}
		}
	}
	return res
}
