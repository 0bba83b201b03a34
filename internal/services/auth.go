package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ride-compare-backend/internal/models"
	"ride-compare-backend/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned on login failure. The same error covers
// unknown usernames and wrong passwords so the response cannot be used to
// probe which usernames exist.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService handles registration, login and session lifecycle
type AuthService struct {
	store      storage.Storage
	sessionTTL time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(store storage.Storage, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		store:      store,
		sessionTTL: sessionTTL,
	}
}

// Register creates a new user with a bcrypt-hashed password.
// Returns storage.ErrDuplicateUsername when the username is taken.
func (s *AuthService) Register(ctx context.Context, user *models.User, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hash)
	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// Login verifies credentials and returns the user on success
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CreateSession issues a new opaque session token for a user
func (s *AuthService) CreateSession(ctx context.Context, userID int) (*models.Session, error) {
	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
		CreatedAt: time.Now(),
	}
	if err := s.store.Sessions().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// DeleteSession invalidates a session token
func (s *AuthService) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.store.Sessions().Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// GetUser returns the user for an authenticated id
func (s *AuthService) GetUser(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
