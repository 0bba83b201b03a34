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

// RideHandler handles ride history and estimate HTTP requests
type RideHandler struct {
	rideService *services.RideService
}

// NewRideHandler creates a new ride handler
func NewRideHandler(rideService *services.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// BookRideRequest represents the request body for booking a ride. The owner
// and timestamp are server-assigned, so neither field is accepted here.
type BookRideRequest struct {
	PickupLocation   string          `json:"pickupLocation"`
	DropoffLocation  string          `json:"dropoffLocation"`
	PickupLatitude   string          `json:"pickupLatitude"`
	PickupLongitude  string          `json:"pickupLongitude"`
	DropoffLatitude  string          `json:"dropoffLatitude"`
	DropoffLongitude string          `json:"dropoffLongitude"`
	Service          string          `json:"service"`
	RideType         string          `json:"rideType"`
	Fare             string          `json:"fare"`
	Distance         string          `json:"distance"`
	Duration         string          `json:"duration"`
	Status           string          `json:"status"`
	PaymentMethod    *string         `json:"paymentMethod"`
	DriverDetails    json.RawMessage `json:"driverDetails"`
}

// EstimateRequest represents the request body for ride estimates
type EstimateRequest struct {
	PickupLatitude   string `json:"pickupLatitude"`
	PickupLongitude  string `json:"pickupLongitude"`
	DropoffLatitude  string `json:"dropoffLatitude"`
	DropoffLongitude string `json:"dropoffLongitude"`
}

// History handles GET /api/rides
func (h *RideHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	rides, err := h.rideService.History(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("Failed to fetch ride history")
		respondError(w, "Failed to fetch ride history", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, rides)
}

// Book handles POST /api/rides
func (h *RideHandler) Book(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req BookRideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if fieldErrs := requireFields(
		requiredField{"pickupLocation", req.PickupLocation},
		requiredField{"dropoffLocation", req.DropoffLocation},
		requiredField{"pickupLatitude", req.PickupLatitude},
		requiredField{"pickupLongitude", req.PickupLongitude},
		requiredField{"dropoffLatitude", req.DropoffLatitude},
		requiredField{"dropoffLongitude", req.DropoffLongitude},
		requiredField{"service", req.Service},
		requiredField{"rideType", req.RideType},
		requiredField{"fare", req.Fare},
		requiredField{"distance", req.Distance},
		requiredField{"duration", req.Duration},
	); fieldErrs != nil {
		respondValidationError(w, fieldErrs)
		return
	}

	ride := &models.RideHistory{
		UserID:           userID,
		PickupLocation:   req.PickupLocation,
		DropoffLocation:  req.DropoffLocation,
		PickupLatitude:   req.PickupLatitude,
		PickupLongitude:  req.PickupLongitude,
		DropoffLatitude:  req.DropoffLatitude,
		DropoffLongitude: req.DropoffLongitude,
		Service:          req.Service,
		RideType:         req.RideType,
		Fare:             req.Fare,
		Distance:         req.Distance,
		Duration:         req.Duration,
		Status:           req.Status,
		PaymentMethod:    req.PaymentMethod,
		DriverDetails:    req.DriverDetails,
	}

	created, err := h.rideService.Book(ctx, ride)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("Failed to save ride")
		respondError(w, "Failed to save ride", http.StatusInternalServerError)
		return
	}

	log.Info().
		Int("user_id", userID).
		Int("ride_id", created.ID).
		Str("service", created.Service).
		Msg("Ride booked")

	respondJSON(w, http.StatusCreated, created)
}

// Get handles GET /api/rides/{id}
func (h *RideHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	rideID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "Invalid ride id", http.StatusBadRequest)
		return
	}

	ride, err := h.rideService.Get(ctx, rideID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRideNotFound):
			respondError(w, "Ride not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			respondError(w, "Forbidden", http.StatusForbidden)
		default:
			log.Error().Err(err).Int("user_id", userID).Int("ride_id", rideID).Msg("Failed to fetch ride")
			respondError(w, "Failed to fetch ride details", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, http.StatusOK, ride)
}

// Estimates handles POST /api/ride-estimates. No auth required: estimates
// are requested before the user decides to book.
func (h *RideHandler) Estimates(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if fieldErrs := requireFields(
		requiredField{"pickupLatitude", req.PickupLatitude},
		requiredField{"pickupLongitude", req.PickupLongitude},
		requiredField{"dropoffLatitude", req.DropoffLatitude},
		requiredField{"dropoffLongitude", req.DropoffLongitude},
	); fieldErrs != nil {
		respondValidationError(w, fieldErrs)
		return
	}

	estimates := h.rideService.Estimates(
		req.PickupLatitude, req.PickupLongitude,
		req.DropoffLatitude, req.DropoffLongitude,
	)

	respondJSON(w, http.StatusOK, estimates)
}
