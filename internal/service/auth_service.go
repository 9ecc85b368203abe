package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/upadhyay-sonu/Task-Manager/internal/model"
	"github.com/upadhyay-sonu/Task-Manager/pkg/apierror"
)

const bcryptCost = 12

type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u model.User) error
}

type TokenStore interface {
	Store(ctx context.Context, token string, userID string, expiresAt time.Time) error
	Find(ctx context.Context, token string) (model.RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

// AuthService owns the credential lifecycle: registration, login, and the
// access/refresh token pair. Access tokens are stateless HS256 JWTs signed
// with the access secret; refresh tokens are JWTs signed with a distinct
// refresh secret and additionally persisted, so they can be revoked.
type AuthService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	users         UserStore
	tokens        TokenStore
}

func NewAuthService(accessSecret string, refreshSecret string, accessTTL time.Duration, refreshTTL time.Duration, users UserStore, tokens TokenStore) *AuthService {
	return &AuthService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		users:         users,
		tokens:        tokens,
	}
}

func (s *AuthService) Register(ctx context.Context, email string, password string, name string) (model.AuthResult, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return model.AuthResult{}, err
	}
	if exists {
		return model.AuthResult{}, apierror.Conflict("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return model.AuthResult{}, err
	}

	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.AuthResult{}, err
	}

	accessToken, err := s.generateAccessToken(user.ID, user.Email)
	if err != nil {
		return model.AuthResult{}, err
	}

	return model.AuthResult{UserID: user.ID, Email: user.Email, Name: user.Name, AccessToken: accessToken}, nil
}

// Login deliberately reports the same error for an unknown email and a wrong
// password, so callers cannot probe which addresses are registered.
func (s *AuthService) Login(ctx context.Context, email string, password string) (model.AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.AuthResult{}, apierror.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return model.AuthResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.AuthResult{}, apierror.Unauthorized("Invalid credentials")
	}

	accessToken, err := s.generateAccessToken(user.ID, user.Email)
	if err != nil {
		return model.AuthResult{}, err
	}

	return model.AuthResult{UserID: user.ID, Email: user.Email, Name: user.Name, AccessToken: accessToken}, nil
}

// CreateRefreshToken replaces whatever tokens the user holds with a single
// fresh one. The delete-then-insert pair is not atomic; concurrent logins for
// the same user race and the last writer wins.
func (s *AuthService) CreateRefreshToken(ctx context.Context, userID string) (string, error) {
	if err := s.tokens.DeleteAllForUser(ctx, userID); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.refreshTTL)

	token, err := s.signToken(s.refreshSecret, jwt.MapClaims{
		"sub": userID,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	})
	if err != nil {
		return "", err
	}

	if err := s.tokens.Store(ctx, token, userID, expiresAt); err != nil {
		return "", err
	}

	return token, nil
}

// RefreshAccessToken mints a new access token against a valid refresh token.
// The refresh token itself is not rotated.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	if _, err := s.parseToken(refreshToken, s.refreshSecret); err != nil {
		return "", apierror.Unauthorized("Invalid refresh token")
	}

	stored, err := s.tokens.Find(ctx, refreshToken)
	if errors.Is(err, model.ErrTokenNotFound) {
		return "", apierror.Unauthorized("Refresh token expired")
	}
	if err != nil {
		return "", err
	}
	if stored.ExpiresAt.Before(time.Now().UTC()) {
		return "", apierror.Unauthorized("Refresh token expired")
	}

	user, err := s.users.FindByID(ctx, stored.UserID)
	if errors.Is(err, model.ErrUserNotFound) {
		return "", apierror.Unauthorized("User not found")
	}
	if err != nil {
		return "", err
	}

	return s.generateAccessToken(user.ID, user.Email)
}

// Logout revokes the stored refresh token. Revoking an unknown token is a
// no-op.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Delete(ctx, refreshToken)
}

func (s *AuthService) VerifyAccessToken(tokenString string) (model.Identity, error) {
	claims, err := s.parseToken(tokenString, s.accessSecret)
	if err != nil {
		return model.Identity{}, apierror.Unauthorized("Invalid or expired token")
	}

	userID, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if userID == "" {
		return model.Identity{}, apierror.Unauthorized("Invalid or expired token")
	}

	return model.Identity{UserID: userID, Email: email}, nil
}

func (s *AuthService) generateAccessToken(userID string, email string) (string, error) {
	now := time.Now().UTC()
	return s.signToken(s.accessSecret, jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.accessTTL).Unix(),
	})
}

func (s *AuthService) signToken(secret []byte, claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (s *AuthService) parseToken(tokenString string, secret []byte) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
