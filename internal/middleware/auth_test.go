package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ride-compare-backend/internal/models"
	"ride-compare-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "ride_session"

func newGuardedHandler(t *testing.T) (http.Handler, storage.SessionStore, *int) {
	t.Helper()

	sessions := storage.NewMemoryStorage().Sessions()
	var seenUserID int
	handler := SessionAuth(sessions, cookieName)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	return handler, sessions, &seenUserID
}

func TestSessionAuthInjectsUserID(t *testing.T) {
	handler, sessions, seenUserID := newGuardedHandler(t)

	require.NoError(t, sessions.Create(t.Context(), &models.Session{
		ID: "token", UserID: 7,
		ExpiresAt: time.Now().Add(time.Hour), CreatedAt: time.Now(),
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, *seenUserID)
}

func TestSessionAuthRejectsMissingCookie(t *testing.T) {
	handler, _, _ := newGuardedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
}

func TestSessionAuthRejectsUnknownAndExpiredSessions(t *testing.T) {
	handler, sessions, _ := newGuardedHandler(t)

	require.NoError(t, sessions.Create(t.Context(), &models.Session{
		ID: "stale", UserID: 7,
		ExpiresAt: time.Now().Add(-time.Minute), CreatedAt: time.Now().Add(-time.Hour),
	}))

	for _, token := range []string{"unknown", "stale"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "token %q", token)
	}
}

func TestGetUserIDWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, 0, GetUserID(req.Context()))
}
