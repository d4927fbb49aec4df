package state

import (
	"sync"

	"github.com/rs/zerolog"
)

// Store owns a State and serializes every Dispatch. It is created by the
// application root and passed to whoever needs it.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int
	logger    zerolog.Logger
}

// NewStore returns a store holding the initial state.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		state:     Initial(),
		listeners: map[int]func(State){},
		logger:    logger,
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces a into the store and notifies subscribers with the new
// state. Listeners run after the lock is released.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	listeners := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	s.logger.Debug().Str("action", a.Type()).Msg("dispatched")
	for _, fn := range listeners {
		fn(next)
	}
	return next
}

// Subscribe registers fn to be called after every dispatch. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}
