// Package apierror defines the error type carried from the service layer to
// the HTTP boundary, where it is translated exactly once into the wire shape
// {message, statusCode, timestamp, details?}.
package apierror

import (
	"fmt"
	"net/http"
)

type APIError struct {
	StatusCode int               `json:"statusCode"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

func New(status int, message string) *APIError {
	return &APIError{StatusCode: status, Message: message}
}

func BadRequest(message string, details map[string]string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Message: message, Details: details}
}

func Unauthorized(message string) *APIError {
	return New(http.StatusUnauthorized, message)
}

func NotFound(message string) *APIError {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *APIError {
	return New(http.StatusConflict, message)
}

func Internal(message string) *APIError {
	return New(http.StatusInternalServerError, message)
}
