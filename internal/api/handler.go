package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/inamate/ellipse/internal/auth"
	"github.com/inamate/ellipse/internal/session"
	"github.com/inamate/ellipse/internal/store"
)

const maxActionSize = 16 << 10 // 16KB

type Handler struct {
	hub            *session.Hub
	auth           *auth.Service
	originPatterns []string
}

func NewHandler(hub *session.Hub, authSvc *auth.Service, originPatterns []string) *Handler {
	return &Handler{hub: hub, auth: authSvc, originPatterns: originPatterns}
}

type createResponse struct {
	ID    string     `json:"id"`
	Token string     `json:"token"`
	View  store.View `json:"view"`
}

// Routes mounts the session endpoints on r.
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/sessions", h.Create).Methods("POST", "OPTIONS")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(h.auth.SessionMiddleware)

	api.HandleFunc("/sessions/{sessionId}", h.Get).Methods("GET")
	api.HandleFunc("/sessions/{sessionId}", h.Delete).Methods("DELETE")
	api.HandleFunc("/sessions/{sessionId}/history", h.History).Methods("GET")
	api.HandleFunc("/sessions/{sessionId}/actions", h.Dispatch).Methods("POST")

	r.HandleFunc("/ws/sessions/{sessionId}", h.WebSocket).Methods("GET")
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	s := h.hub.Create()

	token, err := h.auth.IssueToken(s.ID)
	if err != nil {
		slog.Error("issue session token failed", "error", err, "session", s.ID)
		h.hub.Delete(s.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, createResponse{ID: s.ID, Token: token, View: s.View()})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.hub.Get(mux.Vars(r)["sessionId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.View())
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	s, err := h.hub.Get(mux.Vars(r)["sessionId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.History())
}

func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	s, err := h.hub.Get(mux.Vars(r)["sessionId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxActionSize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	action, err := store.DecodeAction(body)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.Dispatch(action))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.hub.Delete(mux.Vars(r)["sessionId"]); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// WebSocket connects a view to a session. Browsers cannot set headers on a
// websocket handshake, so the token travels as a query parameter.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	tokenSession, err := h.auth.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	if tokenSession != sessionID {
		http.Error(w, "token does not grant this session", http.StatusForbidden)
		return
	}

	if _, err := h.hub.Get(sessionID); err != nil {
		if errors.Is(err, session.ErrInvalidID) {
			http.Error(w, "invalid session id", http.StatusBadRequest)
			return
		}
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := session.NewClient(h.hub, conn, sessionID, uuid.New().String())
	if err := h.hub.Register(client); err != nil {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
	case errors.Is(err, session.ErrInvalidID):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session id"})
	case errors.Is(err, store.ErrUnknownAction), errors.Is(err, store.ErrInvalidAction):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
