package session

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/inamate/ellipse/internal/metrics"
	"github.com/inamate/ellipse/internal/store"
)

// Session is one editor: a store plus the views connected to it.
type Session struct {
	ID        string
	CreatedAt time.Time

	store       *store.Store
	unsubscribe func()

	mu         sync.RWMutex
	clients    map[string]*Client // clientID -> client
	lastActive time.Time
	closed     bool
}

func newSession(id string, reducer store.Reducer, now time.Time) *Session {
	s := &Session{
		ID:         id,
		CreatedAt:  now,
		store:      store.New(reducer),
		clients:    make(map[string]*Client),
		lastActive: now,
	}
	s.unsubscribe = s.store.Subscribe(s.broadcastView)
	return s
}

// Dispatch applies an action to the session's store.
func (s *Session) Dispatch(a store.Action) store.View {
	s.touch(time.Now())
	return s.store.Dispatch(a)
}

// View returns the session's current projection.
func (s *Session) View() store.View {
	return s.store.View()
}

// History returns the committed figures and the cursor.
func (s *Session) History() store.HistoryView {
	return s.store.State().HistoryView()
}

// ClientCount returns the number of connected views.
func (s *Session) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Session) touch(t time.Time) {
	s.mu.Lock()
	s.lastActive = t
	s.mu.Unlock()
}

// idleSince reports whether the session has no views and no activity after cutoff.
func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients) == 0 && s.lastActive.Before(cutoff)
}

// addClient attaches c. It refuses once the session has been closed.
func (s *Session) addClient(c *Client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.clients[c.ClientID] = c
	s.lastActive = time.Now()
	return true
}

// removeClient reports whether c was still attached.
func (s *Session) removeClient(c *Client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c.ClientID]; !ok {
		return false
	}
	delete(s.clients, c.ClientID)
	s.lastActive = time.Now()
	return true
}

// close detaches the store listener and disconnects every view.
func (s *Session) close() {
	s.unsubscribe()

	s.mu.Lock()
	s.closed = true
	clients := make([]*Client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.clients = make(map[string]*Client)
	s.mu.Unlock()

	for _, c := range clients {
		c.close()
		metrics.ClientLeft()
	}
}

func (s *Session) broadcastView(v store.View) {
	payload, err := json.Marshal(StateSyncPayload{View: v})
	if err != nil {
		slog.Error("marshal state sync", "error", err, "session", s.ID)
		return
	}
	s.broadcast(&Message{
		Type:      TypeStateSync,
		SessionID: s.ID,
		Payload:   payload,
	}, "")
}

func (s *Session) broadcast(msg *Message, excludeClientID string) {
	s.mu.RLock()
	clients := make([]*Client, 0, len(s.clients))
	for _, c := range s.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	s.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}
