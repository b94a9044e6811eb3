package store

import "sync"

// Listener observes slice changes. It runs synchronously on the
// updating goroutine, after the state lock is released, so it may read
// the store but must not block.
type Listener func(slice string)

type subscribers struct {
	mu       sync.RWMutex
	next     int
	handlers map[string]map[int]Listener
}

func newSubscribers() *subscribers {
	return &subscribers{
		handlers: make(map[string]map[int]Listener),
	}
}

// Subscribe registers a listener for one slice. Returns an unsubscribe
// function.
func (s *Store) Subscribe(slice string, fn Listener) func() {
	s.subs.mu.Lock()
	defer s.subs.mu.Unlock()

	id := s.subs.next
	s.subs.next++
	if s.subs.handlers[slice] == nil {
		s.subs.handlers[slice] = make(map[int]Listener)
	}
	s.subs.handlers[slice][id] = fn

	s.logger.Debug("store listener registered",
		"slice", slice,
		"total_listeners", len(s.subs.handlers[slice]))

	return func() {
		s.subs.mu.Lock()
		defer s.subs.mu.Unlock()
		delete(s.subs.handlers[slice], id)
	}
}

func (s *Store) notify(slice string) {
	s.subs.mu.RLock()
	handlers := make([]Listener, 0, len(s.subs.handlers[slice]))
	for _, fn := range s.subs.handlers[slice] {
		handlers = append(handlers, fn)
	}
	s.subs.mu.RUnlock()

	for _, fn := range handlers {
		fn(slice)
	}
}
