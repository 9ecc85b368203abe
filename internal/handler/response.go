package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/upadhyay-sonu/Task-Manager/internal/model"
	"github.com/upadhyay-sonu/Task-Manager/pkg/apierror"
)

// ErrorResponse is the uniform wire shape for every non-2xx response.
type ErrorResponse struct {
	Message    string            `json:"message"`
	StatusCode int               `json:"statusCode"`
	Timestamp  string            `json:"timestamp"`
	Details    map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError is the single place where domain errors become HTTP responses.
// Anything unclassified is a 500 with a generic message; internals stay out
// of the response body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"
	var details map[string]string

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.StatusCode
		message = apiErr.Message
		details = apiErr.Details
	case errors.Is(err, model.ErrTaskNotFound):
		status = http.StatusNotFound
		message = "Task not found"
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		message = "User not found"
	case errors.Is(err, model.ErrEmailTaken):
		status = http.StatusConflict
		message = "Email already registered"
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Invalid credentials"
	case errors.Is(err, model.ErrTokenNotFound), errors.Is(err, model.ErrTokenExpired):
		status = http.StatusUnauthorized
		message = "Invalid or expired token"
	default:
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	writeJSON(w, status, ErrorResponse{
		Message:    message,
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Details:    details,
	})
}

func writeErrorStatus(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{
		Message:    message,
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}
