package services

import (
	"context"
	"errors"
	"fmt"

	"ride-compare-backend/internal/models"
	"ride-compare-backend/internal/storage"
)

// ErrRideNotFound is returned when the referenced ride does not exist
var ErrRideNotFound = errors.New("ride not found")

// RideService handles ride history and estimate business logic
type RideService struct {
	store storage.Storage
}

// NewRideService creates a new ride service
func NewRideService(store storage.Storage) *RideService {
	return &RideService{store: store}
}

// History returns a user's ride history, newest first
func (s *RideService) History(ctx context.Context, userID int) ([]models.RideHistory, error) {
	rides, err := s.store.GetRideHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ride history: %w", err)
	}
	return rides, nil
}

// Book records a new ride. The storage backend assigns the timestamp; the
// status defaults to booked when the client leaves it empty.
func (s *RideService) Book(ctx context.Context, ride *models.RideHistory) (*models.RideHistory, error) {
	if ride.Status == "" {
		ride.Status = models.RideStatusBooked
	}
	created, err := s.store.CreateRideHistory(ctx, ride)
	if err != nil {
		return nil, fmt.Errorf("failed to create ride: %w", err)
	}
	return created, nil
}

// Get returns a ride after checking existence and ownership
func (s *RideService) Get(ctx context.Context, id, userID int) (*models.RideHistory, error) {
	ride, err := s.store.GetRide(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}
	if ride == nil {
		return nil, ErrRideNotFound
	}
	if ride.UserID != userID {
		return nil, ErrForbidden
	}
	return ride, nil
}
