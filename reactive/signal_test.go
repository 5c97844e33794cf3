package reactive

import (
	"sync"
	"testing"
)

func TestSignal_SetNotifies(t *testing.T) {
	s := NewSignal(1)
	if s.Get() != 1 {
		t.Fatalf("expected initial value 1, got %d", s.Get())
	}

	var got []int
	cancel := s.Subscribe(func(v int) { got = append(got, v) })
	s.Set(2)
	s.Update(func(v int) int { return v * 10 })

	if len(got) != 2 || got[0] != 2 || got[1] != 20 {
		t.Errorf("unexpected notifications %v", got)
	}

	cancel()
	cancel()
	s.Set(3)
	if len(got) != 2 {
		t.Errorf("notified after cancel: %v", got)
	}
	if s.Observers() != 0 {
		t.Errorf("expected no observers, got %d", s.Observers())
	}
}

func TestSignal_Order(t *testing.T) {
	s := NewSignal("")

	var order []string
	s.Subscribe(func(string) { order = append(order, "a") })
	cancelB := s.Subscribe(func(string) { order = append(order, "b") })
	s.Subscribe(func(string) { order = append(order, "c") })

	cancelB()
	s.Set("x")
	if len(order) != 2 || order[0] != "a" || order[1] != "c" {
		t.Errorf("unexpected order %v", order)
	}
}

func TestSignal_SubscribeFromObserver(t *testing.T) {
	s := NewSignal(0)

	calls := 0
	s.Subscribe(func(int) {
		calls++
		// must not deadlock
		s.Subscribe(func(int) {})
		_ = s.Get()
	})
	s.Set(1)
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if s.Observers() != 2 {
		t.Errorf("expected 2 observers, got %d", s.Observers())
	}
}

func TestSignal_Concurrent(t *testing.T) {
	s := NewSignal(0)

	var (
		mu    sync.Mutex
		count int
	)
	cancel := s.Subscribe(func(int) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	defer cancel()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() { s.Set(i) })
	}
	wg.Wait()

	if count != 50 {
		t.Errorf("expected 50 notifications, got %d", count)
	}
}

func TestSignal_ConcurrentUpdate(t *testing.T) {
	s := NewSignal(0)

	var wg sync.WaitGroup
	for range 100 {
		wg.Go(func() {
			for range 10 {
				s.Update(func(v int) int { return v + 1 })
			}
		})
	}
	wg.Wait()

	if got := s.Get(); got != 1000 {
		t.Errorf("expected 1000 after concurrent updates, got %d", got)
	}
}
