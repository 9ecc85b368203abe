package validation

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/upadhyay-sonu/Task-Manager/pkg/apierror"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("collects every failing field instead of stopping at the first", func(t *testing.T) {
		body := map[string]any{
			"email":    "not-an-email",
			"password": "abc",
		}

		err := Validate(body, RegisterRules)
		require.Error(t, err)

		var apiErr *apierror.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		require.Equal(t, "Validation failed", apiErr.Message)
		require.Len(t, apiErr.Details, 3)
		require.Equal(t, "Invalid email format", apiErr.Details["email"])
		require.Equal(t, "Password must be at least 6 characters", apiErr.Details["password"])
		require.Contains(t, apiErr.Details, "name")
	})

	t.Run("passes a valid register body", func(t *testing.T) {
		body := map[string]any{
			"email":    "jane@example.com",
			"password": "secret1",
			"name":     "Jane",
		}

		require.NoError(t, Validate(body, RegisterRules))
	})

	t.Run("login only requires the password to be present", func(t *testing.T) {
		body := map[string]any{
			"email":    "jane@example.com",
			"password": "a",
		}

		require.NoError(t, Validate(body, LoginRules))
	})

	t.Run("update rules accept a fully absent body", func(t *testing.T) {
		require.NoError(t, Validate(map[string]any{}, UpdateTaskRules))
	})

	t.Run("explicit null for an optional field is rejected", func(t *testing.T) {
		err := Validate(map[string]any{"description": nil, "status": nil}, UpdateTaskRules)
		require.Error(t, err)

		var apiErr *apierror.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Contains(t, apiErr.Details, "description")
		require.Contains(t, apiErr.Details, "status")
	})

	t.Run("update rules reject an unknown status", func(t *testing.T) {
		err := Validate(map[string]any{"status": "DONE"}, UpdateTaskRules)
		require.Error(t, err)

		var apiErr *apierror.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, "Status must be PENDING or COMPLETED", apiErr.Details["status"])
	})

	t.Run("create task rejects an empty title and a present-but-empty description", func(t *testing.T) {
		err := Validate(map[string]any{"title": "", "description": ""}, CreateTaskRules)
		require.Error(t, err)

		var apiErr *apierror.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Contains(t, apiErr.Details, "title")
		require.Contains(t, apiErr.Details, "description")
	})
}

func TestValidators(t *testing.T) {
	t.Parallel()

	require.True(t, IsEmail("a@b.co", true))
	require.False(t, IsEmail("a@b", true))
	require.False(t, IsEmail("a b@c.d", true))
	require.False(t, IsEmail(42, true))

	require.True(t, IsPassword("123456", true))
	require.False(t, IsPassword("12345", true))

	require.True(t, IsOptionalString(nil, false))
	require.False(t, IsOptionalString(nil, true))
	require.False(t, IsOptionalString("", true))
	require.True(t, IsOptionalString("x", true))

	require.True(t, IsTaskStatus("PENDING", true))
	require.True(t, IsTaskStatus("COMPLETED", true))
	require.False(t, IsTaskStatus("pending", true))

	require.True(t, IsOptionalTaskStatus(nil, false))
	require.False(t, IsOptionalTaskStatus(nil, true))
}
