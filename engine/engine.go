// Package engine compiles style declarations into atomic classes and keeps
// reference counted rules for them.
package engine

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"rvcss/config"
	"rvcss/css"
	"rvcss/ident"
	"rvcss/sheet"
	"rvcss/style"
)

var (
	ErrNestedBreakpoint = style.ErrNestedBreakpoint
	ErrNotCached        = errors.New("class is not cached")
)

// Entry is a materialized atomic class.
type Entry struct {
	Rule       *sheet.Rule
	References int
	Breakpoint string
}

// Engine owns style cache and rule sheet. It is safe for concurrent use.
type Engine struct {
	id     uuid.UUID
	cfg    *config.Styles
	hasher *ident.Hasher
	log    *zap.Logger

	mu    sync.Mutex
	sheet *sheet.Sheet // created on first use
	cache map[string]*Entry
}

// New creates engine for configuration, which must not be changed afterwards.
func New(cfg *config.Styles, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &Engine{
		id:     id,
		cfg:    cfg,
		hasher: ident.New(cfg.Options.HashMode),
		log:    log.Named("engine").With(zap.Stringer("instance", id)),
		cache:  make(map[string]*Entry),
	}
}

func (e *Engine) ID() uuid.UUID {
	return e.id
}

func (e *Engine) Config() *config.Styles {
	return e.cfg
}

func (e *Engine) Hasher() *ident.Hasher {
	return e.hasher
}

// EnsureRule materializes rule for a plain property under class name or
// bumps reference count of existing one.
func (e *Engine) EnsureRule(className, key string, value style.Value, ctx ident.Context) (*sheet.Rule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkBreakpoint(ctx.Breakpoint); err != nil {
		return nil, err
	}
	return e.ensure(className, ctx.Breakpoint, func() string {
		return e.propertyRule(className, key, value, ctx)
	})
}

// Release drops one reference of every class, rules without references are
// removed. Releasing class which is not cached is a caller bug and reported
// with ErrNotCached, remaining classes are still released.
func (e *Engine) Release(names ...string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var err error
	for _, name := range names {
		err = multierr.Append(err, e.release(name))
	}
	return err
}

// Entry returns copy of cache entry.
func (e *Engine) Entry(name string) (Entry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.cache[name]
	if !ok {
		return Entry{}, false
	}
	return *entry, true
}

// Len returns number of cached classes.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.cache)
}

// RootStylesheet returns snapshot of unconditioned rules.
func (e *Engine) RootStylesheet() *css.Stylesheet {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.getSheet().RootStylesheet()
}

// BreakpointStylesheet returns snapshot of breakpoint groups.
func (e *Engine) BreakpointStylesheet() *css.Stylesheet {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.getSheet().BreakpointStylesheet()
}

// WriteTo writes complete stylesheet, implementing io.WriterTo.
func (e *Engine) WriteTo(w io.Writer) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.getSheet().WriteTo(w)
}

// Stylesheet returns complete stylesheet text.
func (e *Engine) Stylesheet() string {
	var sb strings.Builder
	e.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

func (e *Engine) getSheet() *sheet.Sheet {
	if e.sheet == nil {
		e.sheet = sheet.New(e.cfg.Breakpoints, e.log)
	}
	return e.sheet
}

func (e *Engine) checkBreakpoint(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := e.cfg.Breakpoints.Lookup(name); !ok {
		return fmt.Errorf("$%s: %w", name, sheet.ErrUnknownBreakpoint)
	}
	return nil
}

// ensure must be called with lock held.
func (e *Engine) ensure(name, breakpoint string, text func() string) (*sheet.Rule, error) {
	if entry, ok := e.cache[name]; ok {
		entry.References++
		return entry.Rule, nil
	}
	r, err := e.getSheet().Insert(breakpoint, text())
	if err != nil {
		return nil, err
	}
	e.cache[name] = &Entry{Rule: r, References: 1, Breakpoint: r.Breakpoint()}
	return r, nil
}

// release must be called with lock held.
func (e *Engine) release(name string) error {
	entry, ok := e.cache[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrNotCached)
	}
	entry.References--
	if entry.References > 0 {
		return nil
	}
	delete(e.cache, name)
	if err := e.getSheet().Delete(entry.Rule); err != nil {
		return fmt.Errorf("class %q: %w", name, err)
	}
	return nil
}

// propertyRule serializes plain property, every shorthand expansion is its
// own declaration with the same value.
func (e *Engine) propertyRule(className, key string, value style.Value, ctx ident.Context) string {
	var sb strings.Builder
	sb.WriteString(":root ")
	sb.WriteString(ctx.Target(className))
	sb.WriteString(" {")
	for _, p := range style.Physicals(key, value, e.cfg) {
		sb.WriteString(" " + p.Name + ": " + p.Value + ";")
	}
	sb.WriteString(" }")
	return sb.String()
}
