package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/ellipse/internal/auth"
	"github.com/inamate/ellipse/internal/figure"
	"github.com/inamate/ellipse/internal/session"
	"github.com/inamate/ellipse/internal/store"
)

type testEnv struct {
	server *httptest.Server
	hub    *session.Hub
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	hub := session.NewHub(store.NewReducer(figure.DefaultCanvas), 0)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	r := mux.NewRouter()
	NewHandler(hub, auth.NewService("test-secret"), nil).Routes(r)
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return &testEnv{server: srv, hub: hub}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, e.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (e *testEnv) create(t *testing.T) createResponse {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/sessions", "", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created createResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotEmpty(t, created.ID)
	require.NotEmpty(t, created.Token)
	return created
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCreateSession(t *testing.T) {
	env := newTestEnv(t)
	created := env.create(t)

	assert.Equal(t, store.Initial().View(), created.View)
	assert.Equal(t, 1, env.hub.Len())
}

func TestDispatchFlow(t *testing.T) {
	env := newTestEnv(t)
	c := env.create(t)
	base := "/api/sessions/" + c.ID

	resp := env.do(t, http.MethodPost, base+"/actions", c.Token, `{"type":"CHANGE_WIDTH","width":150}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v := decode[store.View](t, resp)
	assert.Equal(t, 150.0, v.Figure.Width)
	assert.Equal(t, 2, v.HistoryLength)
	assert.True(t, v.CanUndo)

	resp = env.do(t, http.MethodPost, base+"/actions", c.Token, `{"type":"UNDO_REDO","action":"undo"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v = decode[store.View](t, resp)
	assert.Equal(t, 200.0, v.Figure.Width)
	require.NotNil(t, v.Cursor)
	assert.Equal(t, 0, *v.Cursor)
	assert.True(t, v.CanRedo)

	resp = env.do(t, http.MethodGet, base, c.Token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, v, decode[store.View](t, resp))

	resp = env.do(t, http.MethodGet, base+"/history", c.Token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	hv := decode[store.HistoryView](t, resp)
	assert.Len(t, hv.Entries, 2)
	require.NotNil(t, hv.Cursor)
	assert.Equal(t, 0, *hv.Cursor)
}

func TestDispatchRejectsBadActions(t *testing.T) {
	env := newTestEnv(t)
	c := env.create(t)
	path := "/api/sessions/" + c.ID + "/actions"

	for _, body := range []string{
		`{"type":"SPIN_FIGURE"}`,
		`{"type":`,
		`{"type":"MOVE_FIGURE","x":true,"y":1}`,
	} {
		resp := env.do(t, http.MethodPost, path, c.Token, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}

	// A non-numeric payload is a valid action that changes nothing.
	resp := env.do(t, http.MethodPost, path, c.Token, `{"type":"CHANGE_WIDTH","width":"abc"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v := decode[store.View](t, resp)
	assert.Equal(t, 200.0, v.Figure.Width)
	assert.Equal(t, 1, v.HistoryLength)
}

func TestAuthIsPerSession(t *testing.T) {
	env := newTestEnv(t)
	a := env.create(t)
	b := env.create(t)

	resp := env.do(t, http.MethodGet, "/api/sessions/"+a.ID, "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/sessions/"+a.ID, b.Token, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDeleteSession(t *testing.T) {
	env := newTestEnv(t)
	c := env.create(t)

	resp := env.do(t, http.MethodDelete, "/api/sessions/"+c.ID, c.Token, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/sessions/"+c.ID, c.Token, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMalformedSessionID(t *testing.T) {
	env := newTestEnv(t)
	token, err := auth.NewService("test-secret").IssueToken("not-a-session")
	require.NoError(t, err)

	resp := env.do(t, http.MethodGet, "/api/sessions/not-a-session", token, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/ws/sessions/not-a-session?token="+token, "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebSocketSync(t *testing.T) {
	env := newTestEnv(t)
	c := env.create(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/ws/sessions/" + c.ID + "?token=" + c.Token
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	read := func() session.Message {
		_, data, err := conn.Read(ctx)
		require.NoError(t, err)
		var msg session.Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	}

	assert.Equal(t, session.TypeWelcome, read().Type)

	// An HTTP dispatch reaches the websocket view.
	resp := env.do(t, http.MethodPost, "/api/sessions/"+c.ID+"/actions", c.Token,
		`{"type":"MOVE_FIGURE","x":300,"y":200,"save":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	msg := read()
	require.Equal(t, session.TypeStateSync, msg.Type)
	var sp session.StateSyncPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &sp))
	assert.Equal(t, 300.0, sp.View.Figure.CX)

	// And a websocket submission is acknowledged.
	payload, err := json.Marshal(session.ActionSubmitPayload{Action: store.ToggleBoundaries(true)})
	require.NoError(t, err)
	out, err := json.Marshal(session.Message{Type: session.TypeActionSubmit, Payload: payload})
	require.NoError(t, err)
	require.NoError(t, conn.Write(ctx, websocket.MessageText, out))

	msg = read()
	require.Equal(t, session.TypeStateSync, msg.Type)
	require.NoError(t, json.Unmarshal(msg.Payload, &sp))
	assert.True(t, sp.View.Boundaries)
	assert.Equal(t, session.TypeActionAck, read().Type)
}

func TestWebSocketRequiresToken(t *testing.T) {
	env := newTestEnv(t)
	c := env.create(t)
	other := env.create(t)

	resp := env.do(t, http.MethodGet, "/ws/sessions/"+c.ID, "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/ws/sessions/"+c.ID+"?token="+other.Token, "", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusAccepted, map[string]int{"n": 1})
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())
}
