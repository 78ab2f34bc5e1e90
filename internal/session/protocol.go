package session

import (
	"encoding/json"

	"github.com/inamate/ellipse/internal/store"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

const (
	// Connection
	TypeWelcome = "welcome"
	TypeError   = "error"

	// Client → server
	TypeActionSubmit = "action.submit"

	// Server → client
	TypeActionAck = "action.ack"
	TypeStateSync = "state.sync"
)

// WelcomePayload is sent to a view right after it connects.
type WelcomePayload struct {
	ClientID string     `json:"clientId"`
	View     store.View `json:"view"`
}

// ActionSubmitPayload is the payload for action.submit messages
type ActionSubmitPayload struct {
	Action store.Action `json:"action"`
}

// ActionAckPayload is the payload for action.ack messages
type ActionAckPayload struct {
	ActionID string `json:"actionId"`
}

// StateSyncPayload is broadcast to every view of a session after a dispatch.
type StateSyncPayload struct {
	View store.View `json:"view"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}
