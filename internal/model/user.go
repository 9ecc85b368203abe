package model

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is the decoded access-token payload the auth middleware attaches
// to the request context.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type RefreshToken struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthResult is the register/login response body. The refresh token travels
// separately as an HTTP-only cookie.
type AuthResult struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	AccessToken string `json:"accessToken"`
}
