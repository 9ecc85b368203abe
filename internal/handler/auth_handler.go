package handler

import (
	"net/http"
	"time"

	"github.com/upadhyay-sonu/Task-Manager/internal/model"
	"github.com/upadhyay-sonu/Task-Manager/internal/service"
	"github.com/upadhyay-sonu/Task-Manager/internal/validation"
)

const refreshCookieName = "refreshToken"

type AuthHandler struct {
	service      *service.AuthService
	refreshTTL   time.Duration
	secureCookie bool
}

func NewAuthHandler(service *service.AuthService, refreshTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{service: service, refreshTTL: refreshTTL, secureCookie: secureCookie}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload model.RegisterRequest
	if err := decodeValidated(r, validation.RegisterRules, &payload); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.Register(r.Context(), payload.Email, payload.Password, payload.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	refreshToken, err := h.service.CreateRefreshToken(r.Context(), result.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setRefreshCookie(w, refreshToken)
	writeJSON(w, http.StatusCreated, result)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload model.LoginRequest
	if err := decodeValidated(r, validation.LoginRules, &payload); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	refreshToken, err := h.service.CreateRefreshToken(r.Context(), result.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setRefreshCookie(w, refreshToken)
	writeJSON(w, http.StatusOK, result)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		writeErrorStatus(w, http.StatusUnauthorized, "Refresh token not found")
		return
	}

	accessToken, err := h.service.RefreshAccessToken(r.Context(), cookie.Value)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"accessToken": accessToken})
}

// Logout always succeeds: the cookie is cleared whether or not a stored
// token existed.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(refreshCookieName); err == nil && cookie.Value != "" {
		if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
			writeError(w, err)
			return
		}
	}

	h.clearRefreshCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}
