package binder

import (
	"maps"
	"slices"

	"rvcss/config"
	"rvcss/dynamic"
	"rvcss/style"
)

// StyleTarget receives inline style properties.
type StyleTarget interface {
	SetStyleProperty(name, value string)
	RemoveStyleProperty(name string)
}

// KeySet is a set of physical (kebab case) property names.
type KeySet map[string]struct{}

// Sorted returns names in lexical order.
func (ks KeySet) Sorted() []string {
	return slices.Sorted(maps.Keys(ks))
}

// ApplyDynamicStyles writes styles to the element inline style and removes
// properties set by the previous application which are absent now. Returned
// set must be passed back as previous on the next call.
func ApplyDynamicStyles(el StyleTarget, previous KeySet, styles style.Map, cfg *config.Styles) KeySet {
	next := make(KeySet, len(styles))
	for _, p := range styles {
		for _, phys := range style.Physicals(p.Key, p.Value, cfg) {
			el.SetStyleProperty(phys.Name, phys.Value)
			next[phys.Name] = struct{}{}
		}
	}
	for _, name := range previous.Sorted() {
		if _, ok := next[name]; !ok {
			el.RemoveStyleProperty(name)
		}
	}
	return next
}

// dynamicState is per binding state of the dynamic routine.
type dynamicState struct {
	acc  *dynamic.Accessors
	fn   style.DynamicFunc
	keys KeySet
}
