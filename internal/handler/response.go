package handler

// RESPONSE HELPERS:
// Every endpoint answers through writeJSON or writeError so the JSON shape and
// the status-code mapping live in one place.
//
// CONSISTENT ERROR FORMAT:
//   {"error": "not_found", "message": "book request not found with id 99"}

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/book-requests/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // Machine-readable error type (e.g., "not_found")
	Message string `json:"message"` // Human-readable description
}

// writeJSON sends a JSON response with the given status code.
// Headers and status must be written before the body; 204 never carries one.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to the appropriate HTTP status code and sends it.
//
//	ErrBadRequest  → 400  (no usable JSON body)
//	ErrValidation  → 422  (schema violation; message names the constraint)
//	ErrNotFound    → 404
//	ErrUnavailable → 204  (book not in the catalog; no body)
//	anything else  → 500  (message echoes the error text)
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError

	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrBadRequest):
			status = http.StatusBadRequest // 400
			errorType = "bad_request"
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusUnprocessableEntity // 422
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound // 404
			errorType = "not_found"
		case errors.Is(err, apperror.ErrUnavailable):
			status = http.StatusNoContent // 204
			errorType = "unavailable"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	// This service is not security-sensitive, so the raw error text is passed
	// through to make failures diagnosable from the client side.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}
