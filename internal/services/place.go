package services

import (
	"context"
	"errors"
	"fmt"

	"ride-compare-backend/internal/models"
	"ride-compare-backend/internal/storage"
)

// ErrForbidden is returned when a record exists but belongs to another user
var ErrForbidden = errors.New("record belongs to another user")

// ErrPlaceNotFound is returned when the referenced place does not exist
var ErrPlaceNotFound = errors.New("place not found")

// PlaceService handles saved place business logic
type PlaceService struct {
	store storage.Storage
}

// NewPlaceService creates a new place service
func NewPlaceService(store storage.Storage) *PlaceService {
	return &PlaceService{store: store}
}

// List returns all places owned by a user
func (s *PlaceService) List(ctx context.Context, userID int) ([]models.SavedPlace, error) {
	places, err := s.store.GetSavedPlaces(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	return places, nil
}

// Create saves a new place for the given owner
func (s *PlaceService) Create(ctx context.Context, place *models.SavedPlace) (*models.SavedPlace, error) {
	created, err := s.store.CreateSavedPlace(ctx, place)
	if err != nil {
		return nil, fmt.Errorf("failed to create place: %w", err)
	}
	return created, nil
}

// Delete removes a place after checking existence and ownership
func (s *PlaceService) Delete(ctx context.Context, id, userID int) error {
	place, err := s.store.GetSavedPlace(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get place: %w", err)
	}
	if place == nil {
		return ErrPlaceNotFound
	}
	if place.UserID != userID {
		return ErrForbidden
	}
	if err := s.store.DeleteSavedPlace(ctx, id); err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}
	return nil
}
