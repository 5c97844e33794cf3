package engine

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"rvcss/css"
	"rvcss/ident"
	"rvcss/style"
)

// Compile returns atomic class names for declaration in declaration order.
// Entries are processed in reverse, since rules go to the front of their
// partition this leaves later declared rules last in cascade. Classes listed
// in exclude are expected to be already held by the caller (previous class
// list of the element) and are not referenced again.
//
// Failed compile releases everything it referenced, reference counts stay as
// they were before the call.
func (e *Engine) Compile(decl *style.Declaration, exclude []string) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := &compilation{
		engine:  e,
		exclude: make(map[string]struct{}, len(exclude)),
		seen:    make(map[string]struct{}),
	}
	for _, name := range exclude {
		c.exclude[name] = struct{}{}
	}

	names, err := c.walk(decl, ident.Context{})
	if err != nil {
		for _, name := range slices.Backward(c.referenced) {
			if rerr := e.release(name); rerr != nil {
				// this should never happen
				panic(fmt.Sprintf("unable to roll back class %q: %v", name, rerr))
			}
		}
		e.log.Debug("Compilation failed", zap.Int("rolled back", len(c.referenced)), zap.Error(err))
		return nil, err
	}

	// same class may come from different branches, keep first occurrence
	res := make([]string, 0, len(names))
	added := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := added[name]; ok {
			continue
		}
		added[name] = struct{}{}
		res = append(res, name)
	}
	return res, nil
}

// compilation is state of a single Compile pass.
type compilation struct {
	engine  *Engine
	exclude map[string]struct{}
	// classes already accounted for during this pass
	seen map[string]struct{}
	// classes referenced during this pass, for roll back
	referenced []string
}

func (c *compilation) walk(decl *style.Declaration, ctx ident.Context) ([]string, error) {
	entries := decl.Entries()
	perEntry := make([][]string, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		names, err := c.entry(entries[i], ctx)
		if err != nil {
			return nil, err
		}
		perEntry[i] = names
	}
	return slices.Concat(perEntry...), nil
}

func (c *compilation) entry(entry style.Entry, ctx ident.Context) ([]string, error) {
	e := c.engine

	switch entry.Kind {
	case style.KindDynamic:
		return nil, nil

	case style.KindBreakpoint:
		if ctx.Breakpoint != "" {
			return nil, fmt.Errorf("$%s inside $%s: %w", entry.Key, ctx.Breakpoint, ErrNestedBreakpoint)
		}
		if err := e.checkBreakpoint(entry.Key); err != nil {
			return nil, err
		}
		return c.walk(entry.Block, ctx.WithBreakpoint(entry.Key))

	case style.KindSelector:
		perSelector := make([][]string, len(entry.Selectors))
		for i := len(entry.Selectors) - 1; i >= 0; i-- {
			sb := entry.Selectors[i]
			names, err := c.walk(sb.Block, ctx.WithSelector(entry.Relation, sb.Selector))
			if err != nil {
				return nil, fmt.Errorf("%s selector %q: %w", entry.Relation, sb.Selector, err)
			}
			perSelector[i] = names
		}
		return slices.Concat(perSelector...), nil

	case style.KindRaw:
		names := make([]string, len(entry.Raw))
		for i := len(entry.Raw) - 1; i >= 0; i-- {
			rule := entry.Raw[i]
			name := e.hasher.RawClassName(rule, ctx)
			err := c.use(name, ctx, func() string {
				return strings.ReplaceAll(rule, "&", ctx.Target(name))
			})
			if errors.Is(err, css.ErrMultipleRules) {
				return nil, fmt.Errorf("raw rule must contain a single rule, use a list for several rules: %w", err)
			}
			if err != nil {
				return nil, fmt.Errorf("raw rule: %w", err)
			}
			names[i] = name
		}
		return names, nil

	case style.KindProperty:
		expanded := style.ExpandKey(entry.Key, e.cfg.Shorthands)
		value := style.FormatValue(entry.Value, entry.Key, expanded, e.cfg.Options)
		name := e.hasher.ClassName(entry.Key, value, ctx)
		err := c.use(name, ctx, func() string {
			return e.propertyRule(name, entry.Key, entry.Value, ctx)
		})
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", entry.Key, err)
		}
		return []string{name}, nil

	default:
		// this should never happen
		panic(fmt.Sprintf("unexpected declaration entry kind %s", entry.Kind))
	}
}

// use references class once per pass unless caller already holds it.
func (c *compilation) use(name string, ctx ident.Context, text func() string) error {
	if _, ok := c.seen[name]; ok {
		return nil
	}
	c.seen[name] = struct{}{}

	if _, ok := c.exclude[name]; ok {
		if _, cached := c.engine.cache[name]; cached {
			return nil
		}
		// caller claims class it does not hold, materialize it
	}
	if _, err := c.engine.ensure(name, ctx.Breakpoint, text); err != nil {
		return err
	}
	c.referenced = append(c.referenced, name)
	return nil
}
