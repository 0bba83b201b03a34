package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ride-compare-backend/internal/middleware"
	"ride-compare-backend/internal/models"
	"ride-compare-backend/internal/services"
	"ride-compare-backend/internal/storage"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	authService  *services.AuthService
	cookieName   string
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cookieName string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
	}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	FullName *string `json:"fullName"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if fieldErrs := requireFields(
		requiredField{"username", req.Username},
		requiredField{"password", req.Password},
	); fieldErrs != nil {
		respondValidationError(w, fieldErrs)
		return
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		FullName: req.FullName,
	}

	created, err := h.authService.Register(ctx, user, req.Password)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateUsername) {
			respondError(w, "Username already exists", http.StatusConflict)
			return
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Failed to register user")
		respondError(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	session, err := h.authService.CreateSession(ctx, created.ID)
	if err != nil {
		log.Error().Err(err).Int("user_id", created.ID).Msg("Failed to create session")
		respondError(w, "Failed to create session", http.StatusInternalServerError)
		return
	}
	h.setSessionCookie(w, session)

	log.Info().
		Int("user_id", created.ID).
		Str("username", created.Username).
		Msg("User registered")

	respondJSON(w, http.StatusCreated, created)
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if fieldErrs := requireFields(
		requiredField{"username", req.Username},
		requiredField{"password", req.Password},
	); fieldErrs != nil {
		respondValidationError(w, fieldErrs)
		return
	}

	user, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}
		log.Error().Err(err).Msg("Failed to log in user")
		respondError(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	session, err := h.authService.CreateSession(ctx, user.ID)
	if err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("Failed to create session")
		respondError(w, "Failed to create session", http.StatusInternalServerError)
		return
	}
	h.setSessionCookie(w, session)

	log.Info().
		Int("user_id", user.ID).
		Str("username", user.Username).
		Msg("User logged in")

	respondJSON(w, http.StatusOK, user)
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cookie, err := r.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		if err := h.authService.DeleteSession(ctx, cookie.Value); err != nil {
			log.Error().Err(err).Msg("Failed to delete session")
			respondError(w, "Failed to log out", http.StatusInternalServerError)
			return
		}
	}

	h.clearSessionCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// CurrentUser handles GET /api/user
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	user, err := h.authService.GetUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("Failed to get user")
		respondError(w, "Failed to get user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		respondError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, session *models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
