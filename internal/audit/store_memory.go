package audit

import (
	"context"
	"sync"
)

// DefaultCapacity bounds the in-memory store.
const DefaultCapacity = 1000

// InMemoryStore keeps the most recent events in a ring buffer.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
	next   int
	full   bool
}

func NewInMemoryStore(capacity int) *InMemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &InMemoryStore{events: make([]Event, capacity)}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[s.next] = event
	s.next = (s.next + 1) % len(s.events)
	if s.next == 0 {
		s.full = true
	}
	return nil
}

func (s *InMemoryStore) Recent(_ context.Context, limit int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newestFirst(limit, nil), nil
}

func (s *InMemoryStore) ListByActor(_ context.Context, actorID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newestFirst(0, func(e Event) bool { return e.ActorID == actorID }), nil
}

// newestFirst walks backwards from the write position. limit <= 0 means all.
func (s *InMemoryStore) newestFirst(limit int, keep func(Event) bool) []Event {
	size := s.next
	if s.full {
		size = len(s.events)
	}
	out := make([]Event, 0, min(size, max(limit, 0)))
	for i := 1; i <= size; i++ {
		e := s.events[(s.next-i+len(s.events))%len(s.events)]
		if keep != nil && !keep(e) {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.events)
	s.next = 0
	s.full = false
}
