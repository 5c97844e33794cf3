package dynamic

import (
	"slices"
	"sync"

	"go.uber.org/zap"
)

type subscriber struct {
	id uint64
	fn func(Event)
}

type sharedEntry struct {
	listener    *Listener
	subscribers []subscriber
}

// SharedListeners multiplexes document listeners. For every event type at
// most one listener is attached to the document, it is added with the first
// subscriber and removed when the last one goes away.
type SharedListeners struct {
	doc EventTarget
	log *zap.Logger

	mu      sync.Mutex
	nextID  uint64
	entries map[string]*sharedEntry
}

func NewSharedListeners(doc EventTarget, log *zap.Logger) *SharedListeners {
	return &SharedListeners{
		doc:     doc,
		log:     log.Named("shared-listeners"),
		entries: make(map[string]*sharedEntry),
	}
}

// On subscribes fn to events of type typ. Returned function unsubscribes,
// calling it more than once has no effect.
func (s *SharedListeners) On(typ string, fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[typ]
	if !ok {
		entry = &sharedEntry{}
		entry.listener = NewListener(func(e Event) {
			s.dispatch(typ, e)
		})
		s.entries[typ] = entry
		s.doc.AddEventListener(typ, entry.listener)
		s.log.Debug("Document listener attached", zap.String("type", typ))
	}

	id := s.nextID
	s.nextID++
	entry.subscribers = append(entry.subscribers, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.off(typ, id)
		})
	}
}

// Subscribers returns number of active subscriptions for event type.
func (s *SharedListeners) Subscribers(typ string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[typ]; ok {
		return len(entry.subscribers)
	}
	return 0
}

// Types returns event types which currently have document listener
// attached, sorted.
func (s *SharedListeners) Types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	types := make([]string, 0, len(s.entries))
	for typ := range s.entries {
		types = append(types, typ)
	}
	slices.Sort(types)
	return types
}

func (s *SharedListeners) off(typ string, id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[typ]
	if !ok {
		return
	}
	entry.subscribers = slices.DeleteFunc(entry.subscribers, func(sub subscriber) bool {
		return sub.id == id
	})
	if len(entry.subscribers) > 0 {
		return
	}
	delete(s.entries, typ)
	s.doc.RemoveEventListener(typ, entry.listener)
	s.log.Debug("Document listener detached", zap.String("type", typ))
}

func (s *SharedListeners) dispatch(typ string, e Event) {
	s.mu.Lock()
	entry, ok := s.entries[typ]
	var subscribers []subscriber
	if ok {
		subscribers = slices.Clone(entry.subscribers)
	}
	s.mu.Unlock()

	for _, sub := range subscribers {
		sub.fn(e)
	}
}
