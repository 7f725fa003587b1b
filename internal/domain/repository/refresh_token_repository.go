package repository

import (
	"context"
	"errors"

	"jobdesk/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRefreshTokenNotFound is returned when a refresh token is not found,
// including tokens that were already revoked.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository defines the interface for session persistence.
// Presence of a row means the session is valid; deleting the row revokes it.
type RefreshTokenRepository interface {
	// CreateRefreshToken persists a new refresh token, representing a session.
	CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error

	// FindRefreshTokenByHash retrieves a refresh token record by its stored hash.
	FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// DeleteRefreshTokenByHash deletes a refresh token by its hash, ending the
	// session. Returns ErrRefreshTokenNotFound when no such session exists,
	// which makes revocation observably idempotent.
	DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error

	// DeleteRefreshTokensByUserID removes every session of a user
	// ("logout from all devices").
	DeleteRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteExpiredRefreshTokens removes all expired rows; invoked
	// opportunistically after a successful token rotation.
	DeleteExpiredRefreshTokens(ctx context.Context) error
}
