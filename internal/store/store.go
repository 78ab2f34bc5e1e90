package store

import (
	"log/slog"
	"sync"

	"github.com/inamate/ellipse/internal/metrics"
)

// Listener receives the view after every dispatch.
type Listener func(View)

// Store owns the current State of one editor. Dispatches are serialized, so
// every action runs to completion before the next one starts.
type Store struct {
	mu      sync.Mutex
	reducer Reducer
	state   State

	// notifyMu keeps listener calls in dispatch order.
	notifyMu sync.Mutex

	listenersMu sync.RWMutex
	listeners   map[int]Listener
	nextID      int
}

// New returns a store holding the initial state.
func New(reducer Reducer) *Store {
	return &Store{
		reducer:   reducer,
		state:     Initial(),
		listeners: make(map[int]Listener),
	}
}

// Dispatch applies a and returns the resulting view. Listeners are called
// after the state has been replaced, in dispatch order, and must not
// dispatch themselves.
func (s *Store) Dispatch(a Action) View {
	s.mu.Lock()
	next, effect := s.reducer.Apply(s.state, a)
	s.state = next
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	metrics.ObserveAction(string(a.Type))
	if effect.Commit != nil {
		metrics.ObserveCommit(effect.Commit.String())
	}

	view := next.View()
	slog.Debug("dispatch",
		"type", a.Type,
		"id", a.ID,
		"history", view.HistoryLength,
		"committed", effect.Commit != nil,
	)

	s.notify(view)
	return view
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// View returns the current read-only projection.
func (s *Store) View() View {
	return s.State().View()
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

func (s *Store) notify(v View) {
	s.listenersMu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.listenersMu.RUnlock()

	for _, fn := range listeners {
		fn(v)
	}
}
