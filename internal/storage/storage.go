package storage

import (
	"context"
	"errors"

	"ride-compare-backend/internal/models"
)

// ErrDuplicateUsername is returned by CreateUser when the username is taken.
var ErrDuplicateUsername = errors.New("username already exists")

// Storage is the persistence contract shared by all backends. Lookups return
// (nil, nil) on a miss; ownership checks are the caller's responsibility.
type Storage interface {
	// User operations
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateProfilePic(ctx context.Context, userID int, url string) error

	// Saved places operations
	GetSavedPlaces(ctx context.Context, userID int) ([]models.SavedPlace, error)
	GetSavedPlace(ctx context.Context, id int) (*models.SavedPlace, error)
	CreateSavedPlace(ctx context.Context, place *models.SavedPlace) (*models.SavedPlace, error)
	// DeleteSavedPlace is idempotent: deleting a missing id is not an error.
	DeleteSavedPlace(ctx context.Context, id int) error

	// Ride history operations
	// GetRideHistory returns the user's rides newest first.
	GetRideHistory(ctx context.Context, userID int) ([]models.RideHistory, error)
	GetRide(ctx context.Context, id int) (*models.RideHistory, error)
	// CreateRideHistory assigns the timestamp; client-supplied values are ignored.
	CreateRideHistory(ctx context.Context, ride *models.RideHistory) (*models.RideHistory, error)

	// Sessions returns the session store bound to this backend.
	Sessions() SessionStore
}

// SessionStore persists login sessions for the auth layer.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	// Get returns (nil, nil) when the session is missing or expired.
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes expired sessions; run periodically.
	DeleteExpired(ctx context.Context) error
}
