package middleware

import (
	"context"
	"net/http"

	"ride-compare-backend/internal/storage"

	"github.com/rs/zerolog/log"
)

type contextKey string

const userIDKey contextKey = "user_id"

// SessionAuth creates a middleware that validates the session cookie and
// injects the authenticated user id into the request context. Requests
// without a valid session get 401 before any storage access.
func SessionAuth(sessions storage.SessionStore, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				respondUnauthorized(w)
				return
			}

			session, err := sessions.Get(r.Context(), cookie.Value)
			if err != nil {
				log.Error().Err(err).Msg("Failed to look up session")
				respondUnauthorized(w)
				return
			}
			if session == nil {
				respondUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, session.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user id from context. Returns 0 when
// the request did not pass the session middleware.
func GetUserID(ctx context.Context) int {
	userID, ok := ctx.Value(userIDKey).(int)
	if !ok {
		return 0
	}
	return userID
}

// WithUserID injects a user id into a context. Used by tests that call
// handlers without the session transport.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func respondUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"Unauthorized"}`))
}
