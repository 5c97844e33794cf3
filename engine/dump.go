package engine

import (
	"maps"
	"slices"
	"sort"

	"github.com/maruel/natural"

	"rvcss/utils/debug"
)

// Dump returns human readable state of the engine: options, cache entries
// in natural order of class names and partitions in cascade order.
func (e *Engine) Dump() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	tw := debug.NewTreeWriter()
	tw.Line(0, "Engine %s", e.id)
	tw.Line(1, "Options: size=%s time=%s hash=%s",
		e.cfg.Options.SizeUnit, e.cfg.Options.TimeUnit, e.cfg.Options.HashMode)

	names := slices.Collect(maps.Keys(e.cache))
	sort.Sort(natural.StringSlice(names))

	tw.Section(1, "Cache", len(names))
	for _, name := range names {
		entry := e.cache[name]
		tw.Line(2, "%s refs=%d", name, entry.References)
		if entry.Breakpoint != "" {
			tw.TextBlock(3, "breakpoint", entry.Breakpoint)
		}
		tw.TextBlock(3, "rule", entry.Rule.String())
	}

	if e.sheet == nil {
		tw.Line(1, "Sheet: not created")
		return tw.String()
	}
	tw.Section(1, "Root", len(e.sheet.Root()))
	for i, r := range e.sheet.Root() {
		tw.Line(2, "[%d] %s", i, r.Rule)
	}
	for _, g := range e.sheet.Groups() {
		tw.Section(1, "@media "+g.Query.Raw+" "+g.Breakpoint.Name, len(g.Rules()))
		for i, r := range g.Rules() {
			tw.Line(2, "[%d] %s", i, r.Rule)
		}
	}
	return tw.String()
}
