package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/upadhyay-sonu/Task-Manager/internal/model"
)

type stubVerifier struct {
	identity model.Identity
	err      error
}

func (s stubVerifier) VerifyAccessToken(string) (model.Identity, error) {
	return s.identity, s.err
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		_ = json.NewEncoder(w).Encode(identity)
	})

	t.Run("rejects a missing header without consulting the verifier", func(t *testing.T) {
		verifier := stubVerifier{err: errors.New("must not be called")}
		handler := NewAuthMiddleware(verifier).RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("next handler must not run")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var body errorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "Missing or invalid authorization header", body.Message)
		require.Equal(t, http.StatusUnauthorized, body.StatusCode)
	})

	t.Run("rejects a non-bearer scheme", func(t *testing.T) {
		handler := NewAuthMiddleware(stubVerifier{}).RequireAuth(next)

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("maps any verification failure to a generic 401", func(t *testing.T) {
		verifier := stubVerifier{err: errors.New("expired")}
		handler := NewAuthMiddleware(verifier).RequireAuth(next)

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var body errorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "Invalid or expired token", body.Message)
	})

	t.Run("attaches the identity to the request context", func(t *testing.T) {
		verifier := stubVerifier{identity: model.Identity{UserID: "u-1", Email: "jane@example.com"}}
		handler := NewAuthMiddleware(verifier).RequireAuth(next)

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var identity model.Identity
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &identity))
		require.Equal(t, "u-1", identity.UserID)
		require.Equal(t, "jane@example.com", identity.Email)
	})
}
