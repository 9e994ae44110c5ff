package handler

// RESPONSE HELPERS:
// Every endpoint answers with the same envelope so clients never have to
// guess the shape:
//
//	success: {"success":true,"message":"...","data":{...},"timestamp":"...","statusCode":200}
//	failure: {"success":false,"message":"...","path":"/api/users/42","timestamp":"...","statusCode":404}
//
// writeError is the single place domain errors become status codes. The
// service layer returns apperror values; errors.Is walks the wrapped chain
// and picks the status. Anything unrecognised — including store failures —
// collapses to a generic 500 so driver internals never reach the client.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/studygen/backend/internal/apperror"
)

// apiResponse is the success envelope shared by all endpoints.
type apiResponse struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	Data       any       `json:"data,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	StatusCode int       `json:"statusCode"`
}

// errorResponse is the failure envelope shared by all endpoints.
type errorResponse struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	Path       string    `json:"path"`
	Timestamp  time.Time `json:"timestamp"`
	StatusCode int       `json:"statusCode"`
}

// writeSuccess sends the success envelope with the given status code.
// Headers and status must be written before the body — once Encode writes,
// header changes are silently ignored.
func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(apiResponse{
		Success:    true,
		Message:    message,
		Data:       data,
		Timestamp:  time.Now().UTC(),
		StatusCode: status,
	}); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError maps a domain error to an HTTP status and sends the failure
// envelope. The request is needed for the path field.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "An unexpected error occurred. Please try again later."

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			message = appErr.Message
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			message = appErr.Message
		case errors.Is(err, apperror.ErrDuplicate):
			status = http.StatusConflict
			message = appErr.Message
		case errors.Is(err, apperror.ErrDatabase):
			// AppError.Message is already generic ("Failed to ...");
			// the driver cause stays on the chain for logs only.
			status = http.StatusInternalServerError
			message = appErr.Message
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(errorResponse{
		Success:    false,
		Message:    message,
		Path:       r.URL.Path,
		Timestamp:  time.Now().UTC(),
		StatusCode: status,
	}); encErr != nil {
		slog.Error("failed to encode JSON error response", slog.String("error", encErr.Error()))
	}
}
