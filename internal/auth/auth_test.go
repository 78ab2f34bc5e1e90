package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	svc := NewService("test-secret")

	token, err := svc.IssueToken("sess_abc")
	require.NoError(t, err)

	sessionID, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sess_abc", sessionID)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	token, err := NewService("one").IssueToken("sess_abc")
	require.NoError(t, err)

	_, err = NewService("two").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := NewService("test-secret")
	svc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	token, err := svc.IssueToken("sess_abc")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := NewService("s").ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionMiddleware(t *testing.T) {
	svc := NewService("test-secret")
	token, err := svc.IssueToken("sess_abc")
	require.NoError(t, err)

	r := mux.NewRouter()
	r.Handle("/sessions/{sessionId}", svc.SessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(SessionIDFromContext(r.Context())))
	})))

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"valid", "/sessions/sess_abc", "Bearer " + token, http.StatusOK},
		{"missing header", "/sessions/sess_abc", "", http.StatusUnauthorized},
		{"wrong scheme", "/sessions/sess_abc", "Basic " + token, http.StatusUnauthorized},
		{"bad token", "/sessions/sess_abc", "Bearer nope", http.StatusUnauthorized},
		{"other session", "/sessions/sess_xyz", "Bearer " + token, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "sess_abc", rec.Body.String())
			}
		})
	}
}
