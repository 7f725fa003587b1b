package service

import (
	"time"

	"github.com/google/uuid"
)

// TokenClaims is what a validated token resolves back to.
type TokenClaims struct {
	UserID   uuid.UUID // Token subject.
	UserType string    // Account type carried by access tokens.
	Type     string    // "access" or "refresh".
}

// TokenService defines the interface for issuing and validating the token
// pair. It owns signing keys and lifetimes; callers only see opaque strings.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a user.
	GenerateTokens(userID uuid.UUID, userType string) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken checks an access token and returns its claims.
	ValidateAccessToken(tokenString string) (*TokenClaims, error)

	// ValidateRefreshToken checks a refresh token and returns its claims.
	ValidateRefreshToken(tokenString string) (*TokenClaims, error)

	// HashToken returns the hash under which a refresh token is persisted.
	HashToken(tokenString string) string

	// RefreshTokenDuration returns the configured refresh token lifetime.
	RefreshTokenDuration() time.Duration
}
