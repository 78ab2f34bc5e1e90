package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/inamate/ellipse/internal/metrics"
	"github.com/inamate/ellipse/internal/store"
	"github.com/inamate/ellipse/internal/typeid"
)

var (
	ErrNotFound   = errors.New("session not found")
	ErrInvalidID  = errors.New("invalid session id")
	ErrHubStopped = errors.New("session hub stopped")
)

// reapInterval is how often idle sessions are looked for.
var reapInterval = time.Minute

// Hub owns every live editor session and routes websocket traffic to them.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session // sessionID -> session

	reducer     store.Reducer
	idleTimeout time.Duration

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub returns a hub whose sessions reduce on the given canvas. Sessions
// without views are discarded after idleTimeout; zero keeps them forever.
func NewHub(reducer store.Reducer, idleTimeout time.Duration) *Hub {
	return &Hub{
		sessions:    make(map[string]*Session),
		reducer:     reducer,
		idleTimeout: idleTimeout,
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		done:        make(chan struct{}),
	}
}

// Run processes client registrations and reaps idle sessions until ctx is
// done, then closes every session.
func (h *Hub) Run(ctx context.Context) error {
	ticker := time.NewTicker(reapInterval)
	defer func() {
		ticker.Stop()
		close(h.done)
		h.closeAll()
	}()

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case now := <-ticker.C:
			h.reap(now)
		case <-ctx.Done():
			return nil
		}
	}
}

// Create starts a new session with the initial state.
func (h *Hub) Create() *Session {
	s := newSession(typeid.NewSessionID(), h.reducer, time.Now())

	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()

	metrics.SessionOpened()
	slog.Info("session created", "session", s.ID)
	return s
}

// Get returns the session with the given ID.
func (h *Hub) Get(id string) (*Session, error) {
	if err := typeid.Validate(id, typeid.PrefixSession); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}

	h.mu.RLock()
	s, ok := h.sessions[id]
	h.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete discards a session and disconnects its views.
func (h *Hub) Delete(id string) error {
	if err := typeid.Validate(id, typeid.PrefixSession); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidID, err)
	}

	h.mu.Lock()
	s, ok := h.sessions[id]
	if ok {
		delete(h.sessions, id)
	}
	h.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	s.close()
	metrics.SessionClosed()
	slog.Info("session deleted", "session", id)
	return nil
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Hub) Register(client *Client) error {
	select {
	case h.register <- client:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) addClient(client *Client) {
	s, err := h.Get(client.SessionID)
	if err != nil {
		client.sendError(err.Error())
		client.close()
		return
	}
	if !s.addClient(client) {
		client.sendError(ErrNotFound.Error())
		client.close()
		return
	}
	metrics.ClientConnected()

	payload, _ := json.Marshal(WelcomePayload{
		ClientID: client.ClientID,
		View:     s.View(),
	})
	client.Send(&Message{
		Type:      TypeWelcome,
		SessionID: s.ID,
		ClientID:  client.ClientID,
		Payload:   payload,
	})

	slog.Info("client joined", "client", client.ClientID, "session", s.ID, "clients", s.ClientCount())
}

func (h *Hub) removeClient(client *Client) {
	s, err := h.Get(client.SessionID)
	if err != nil {
		client.close()
		return
	}
	if s.removeClient(client) {
		metrics.ClientLeft()
	}
	client.close()

	slog.Info("client left", "client", client.ClientID, "session", s.ID, "clients", s.ClientCount())
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypeActionSubmit:
		h.handleActionSubmit(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", sender.ClientID)
		sender.sendError("unknown message type")
	}
}

func (h *Hub) handleActionSubmit(sender *Client, msg *Message) {
	s, err := h.Get(sender.SessionID)
	if err != nil {
		sender.sendError(err.Error())
		return
	}

	var submit ActionSubmitPayload
	if err := json.Unmarshal(msg.Payload, &submit); err != nil {
		slog.Warn("invalid action payload", "error", err, "client", sender.ClientID)
		sender.sendError("invalid action payload")
		return
	}
	if err := submit.Action.Validate(); err != nil {
		sender.sendError(err.Error())
		return
	}
	if submit.Action.ID == "" {
		submit.Action.ID = typeid.NewActionID()
	}

	// The store listener broadcasts the new view to every client.
	s.Dispatch(submit.Action)

	ack, _ := json.Marshal(ActionAckPayload{ActionID: submit.Action.ID})
	sender.Send(&Message{Type: TypeActionAck, SessionID: s.ID, Payload: ack})
}

func (h *Hub) reap(now time.Time) {
	if h.idleTimeout <= 0 {
		return
	}
	cutoff := now.Add(-h.idleTimeout)

	h.mu.RLock()
	var idle []string
	for id, s := range h.sessions {
		if s.idleSince(cutoff) {
			idle = append(idle, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range idle {
		if err := h.Delete(id); err == nil {
			slog.Info("session expired", "session", id)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	sessions := h.sessions
	h.sessions = make(map[string]*Session)
	h.mu.Unlock()

	for _, s := range sessions {
		s.close()
		metrics.SessionClosed()
	}
}
