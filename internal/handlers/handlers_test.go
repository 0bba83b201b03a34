package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ride-compare-backend/internal/services"
	"ride-compare-backend/internal/storage"

	"github.com/stretchr/testify/require"
)

const testCookieName = "ride_session"

// newTestRouter builds the full router on a fresh in-memory backend
func newTestRouter(t *testing.T) (http.Handler, *storage.MemoryStorage) {
	t.Helper()

	store := storage.NewMemoryStorage()
	authService := services.NewAuthService(store, time.Hour)

	router := NewRouter(RouterDeps{
		Auth:       NewAuthHandler(authService, testCookieName, false),
		Places:     NewPlaceHandler(services.NewPlaceService(store)),
		Rides:      NewRideHandler(services.NewRideService(store)),
		Sessions:   store.Sessions(),
		CookieName: testCookieName,
	})
	return router, store
}

// doJSON performs a request with an optional JSON body and session cookie
func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// register creates a user through the API and returns its session cookie
func register(t *testing.T, router http.Handler, username, password string) *http.Cookie {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie, "registration must set the session cookie")
	return cookie
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	return nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
