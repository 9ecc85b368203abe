package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/upadhyay-sonu/Task-Manager/internal/config"
	"github.com/upadhyay-sonu/Task-Manager/internal/handler"
	"github.com/upadhyay-sonu/Task-Manager/internal/middleware"
	"github.com/upadhyay-sonu/Task-Manager/internal/repository"
	"github.com/upadhyay-sonu/Task-Manager/internal/router"
	"github.com/upadhyay-sonu/Task-Manager/internal/service"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	users := repository.NewMemoryUserRepository()
	tokens := repository.NewMemoryTokenRepository()
	tasks := repository.NewMemoryTaskRepository()

	authService := service.NewAuthService("test-access-secret", "test-refresh-secret", 15*time.Minute, 7*24*time.Hour, users, tokens)
	taskService := service.NewTaskService(tasks)

	cfg := &config.Config{
		FrontendOrigin:   "http://localhost:3001",
		RateLimitRPM:     10000,
		AuthRateLimitRPM: 10000,
		RequestTimeout:   30 * time.Second,
	}

	handlers := router.Handlers{
		Auth:   handler.NewAuthHandler(authService, 7*24*time.Hour, false),
		Task:   handler.NewTaskHandler(taskService),
		Health: handler.NewHealthHandler(nil),
	}

	server := httptest.NewServer(router.New(cfg, middleware.NewAuthMiddleware(authService), handlers))
	t.Cleanup(server.Close)
	return server
}

// doRequest sends a JSON request. A non-nil body is marshalled; token, when
// set, goes into the Authorization header; cookies are attached as-is.
func doRequest(t *testing.T, method string, url string, token string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type authBody struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	AccessToken string `json:"accessToken"`
}

func registerUser(t *testing.T, server *httptest.Server, email string) (authBody, *http.Cookie) {
	t.Helper()

	resp := doRequest(t, http.MethodPost, server.URL+"/auth/register", "", map[string]string{
		"email":    email,
		"password": "secret1",
		"name":     "Test User",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	return decodeBody[authBody](t, resp), refreshCookie(t, resp)
}

func refreshCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "refreshToken" {
			return cookie
		}
	}
	t.Fatal("refreshToken cookie not set")
	return nil
}
