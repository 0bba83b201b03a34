package handlers

import (
	"encoding/json"
	"net/http"

	"ride-compare-backend/internal/middleware"
	"ride-compare-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// UploadPictureRequest represents the request body for a picture upload
type UploadPictureRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// UploadPicture handles POST /api/profile/picture
func (h *ProfileHandler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req UploadPictureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Filename == "" {
		respondValidationError(w, []FieldError{{Field: "filename", Message: "filename is required"}})
		return
	}
	if req.ContentType == "" {
		req.ContentType = "image/jpeg"
	}

	response, err := h.profileService.PictureUploadURL(ctx, userID, req.Filename, req.ContentType)
	if err != nil {
		log.Error().
			Err(err).
			Int("user_id", userID).
			Str("filename", req.Filename).
			Msg("Failed to generate pre-signed URL")
		respondError(w, "Failed to prepare picture upload", http.StatusInternalServerError)
		return
	}

	log.Info().
		Int("user_id", userID).
		Str("filename", req.Filename).
		Msg("Profile picture upload prepared")

	respondJSON(w, http.StatusOK, response)
}
