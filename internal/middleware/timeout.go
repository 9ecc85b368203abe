package middleware

import (
	"encoding/json"
	"net/http"
	"time"
)

// Timeout cuts off handlers that run past the deadline with a 503 in the
// standard error shape. It only wraps JSON subtrees, so the content type is
// set up front; handlers that finish in time overwrite nothing.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			body, _ := json.Marshal(errorBody{
				Message:    "Request timed out",
				StatusCode: http.StatusServiceUnavailable,
				Timestamp:  time.Now().UTC().Format(time.RFC3339),
			})

			http.TimeoutHandler(next, timeout, string(body)).ServeHTTP(w, r)
		})
	}
}
