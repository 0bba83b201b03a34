package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError describes a single invalid request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Message: message})
}

// respondValidationError sends a 400 with field-level details
func respondValidationError(w http.ResponseWriter, fieldErrors []FieldError) {
	respondJSON(w, http.StatusBadRequest, ErrorResponse{
		Message: "Invalid input data",
		Errors:  fieldErrors,
	})
}

type requiredField struct {
	name  string
	value string
}

// requireFields collects a FieldError for every empty value, in order
func requireFields(fields ...requiredField) []FieldError {
	var errs []FieldError
	for _, f := range fields {
		if f.value == "" {
			errs = append(errs, FieldError{Field: f.name, Message: f.name + " is required"})
		}
	}
	return errs
}
