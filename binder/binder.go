// Package binder keeps element class list and inline style in sync with a
// changing style declaration.
package binder

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"rvcss/dynamic"
	"rvcss/engine"
	"rvcss/reactive"
	"rvcss/style"
)

var (
	ErrClosed        = errors.New("binding is closed")
	ErrNoEventSource = errors.New("dynamic styles require event source")
)

// Element is what binding operates on.
type Element interface {
	dynamic.Element
	StyleTarget
	AddClass(names ...string)
	RemoveClass(names ...string)
}

type options struct {
	log      *zap.Logger
	viewport dynamic.Viewport
	shared   *dynamic.SharedListeners
}

type Option func(*options)

func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithEvents provides event sources for dynamic styles. Without it binding
// of declaration with dynamic entry fails.
func WithEvents(viewport dynamic.Viewport, shared *dynamic.SharedListeners) Option {
	return func(o *options) {
		o.viewport = viewport
		o.shared = shared
	}
}

// Binding ties element to declaration source. Current class list is the
// baseline for the next compilation, classes no longer produced are released.
type Binding struct {
	el  Element
	eng *engine.Engine
	log *zap.Logger

	viewport dynamic.Viewport
	shared   *dynamic.SharedListeners

	mu      sync.Mutex
	classes []string
	dyn     *dynamicState
	cancel  func()
	closed  bool
}

// Bind synchronizes element with current value of src and follows its
// changes until Close.
func Bind(el Element, eng *engine.Engine, src *reactive.Signal[*style.Declaration], opts ...Option) (*Binding, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}

	b := &Binding{
		el:       el,
		eng:      eng,
		log:      o.log.Named("binder"),
		viewport: o.viewport,
		shared:   o.shared,
	}
	if err := b.Sync(src.Get()); err != nil {
		return nil, err
	}
	b.cancel = src.Subscribe(func(decl *style.Declaration) {
		if err := b.Sync(decl); err != nil {
			b.log.Error("Unable to synchronize element styles", zap.Error(err))
		}
	})
	return b, nil
}

// Classes returns classes currently held by binding.
func (b *Binding) Classes() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.Clone(b.classes)
}

// Sync compiles declaration and updates element. On compilation error
// element and held classes stay unchanged.
func (b *Binding) Sync(decl *style.Declaration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	fn := decl.DynamicFunc()
	if fn != nil && (b.viewport == nil || b.shared == nil) {
		return ErrNoEventSource
	}

	next, err := b.eng.Compile(decl, b.classes)
	if err != nil {
		return fmt.Errorf("unable to compile declaration: %w", err)
	}

	var stale []string
	for _, name := range b.classes {
		if !slices.Contains(next, name) {
			stale = append(stale, name)
		}
	}
	err = b.eng.Release(stale...)

	b.el.RemoveClass(stale...)
	b.el.AddClass(next...)
	b.classes = next

	b.syncDynamic(fn)

	b.log.Debug("Element synchronized", zap.Int("classes", len(next)), zap.Int("released", len(stale)))
	if err != nil {
		return fmt.Errorf("unable to release classes: %w", err)
	}
	return nil
}

// Close releases everything binding holds. Subsequent calls do nothing.
func (b *Binding) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	if b.cancel != nil {
		b.cancel()
	}

	err := b.eng.Release(b.classes...)
	b.el.RemoveClass(b.classes...)
	b.classes = nil

	if b.dyn != nil {
		err = multierr.Append(err, b.dyn.acc.Close())
		b.dyn = nil
	}
	return err
}

func (b *Binding) syncDynamic(fn style.DynamicFunc) {
	if fn == nil {
		if b.dyn != nil {
			ApplyDynamicStyles(b.el, b.dyn.keys, nil, b.eng.Config())
			if err := b.dyn.acc.Close(); err != nil {
				b.log.Warn("Unable to close dynamic accessors", zap.Error(err))
			}
			b.dyn = nil
		}
		return
	}

	if b.dyn == nil {
		b.dyn = &dynamicState{}
		b.dyn.acc = dynamic.NewAccessors(b.el, b.viewport, b.shared, b.onDynamicChange, b.log)
	}
	b.dyn.fn = fn
	b.applyDynamic()
}

// onDynamicChange is called by accessors when derived state changes.
func (b *Binding) onDynamicChange() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed || b.dyn == nil {
		return
	}
	b.applyDynamic()
}

func (b *Binding) applyDynamic() {
	b.dyn.keys = ApplyDynamicStyles(b.el, b.dyn.keys, b.dyn.fn(b.dyn.acc), b.eng.Config())
}
