package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"ride-compare-backend/internal/middleware"
	"ride-compare-backend/internal/models"
	"ride-compare-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PlaceHandler handles saved place HTTP requests
type PlaceHandler struct {
	placeService *services.PlaceService
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(placeService *services.PlaceService) *PlaceHandler {
	return &PlaceHandler{placeService: placeService}
}

// CreatePlaceRequest represents the request body for saving a place
type CreatePlaceRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// List handles GET /api/places
func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	places, err := h.placeService.List(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("Failed to fetch saved places")
		respondError(w, "Failed to fetch saved places", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, places)
}

// Create handles POST /api/places
func (h *PlaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req CreatePlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if fieldErrs := requireFields(
		requiredField{"name", req.Name},
		requiredField{"address", req.Address},
		requiredField{"latitude", req.Latitude},
		requiredField{"longitude", req.Longitude},
	); fieldErrs != nil {
		respondValidationError(w, fieldErrs)
		return
	}

	// owner always comes from the session, never the payload
	place := &models.SavedPlace{
		UserID:    userID,
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	created, err := h.placeService.Create(ctx, place)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("Failed to save place")
		respondError(w, "Failed to save place", http.StatusInternalServerError)
		return
	}

	log.Info().
		Int("user_id", userID).
		Int("place_id", created.ID).
		Str("name", created.Name).
		Msg("Place saved")

	respondJSON(w, http.StatusCreated, created)
}

// Delete handles DELETE /api/places/{id}
func (h *PlaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	placeID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "Invalid place id", http.StatusBadRequest)
		return
	}

	if err := h.placeService.Delete(ctx, placeID, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrPlaceNotFound):
			respondError(w, "Place not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			respondError(w, "Forbidden", http.StatusForbidden)
		default:
			log.Error().Err(err).Int("user_id", userID).Int("place_id", placeID).Msg("Failed to delete place")
			respondError(w, "Failed to delete place", http.StatusInternalServerError)
		}
		return
	}

	log.Info().
		Int("user_id", userID).
		Int("place_id", placeID).
		Msg("Place deleted")

	respondJSON(w, http.StatusOK, map[string]string{"message": "Place deleted successfully"})
}
