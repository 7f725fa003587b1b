// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"jobdesk/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterInput carries the data needed to register a local account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	UserType  entity.UserType
}

// LoginInput carries local login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// GoogleLoginInput carries federated login credentials. Exactly one of
// Credential (OIDC ID token) or AccessToken must be set.
type GoogleLoginInput struct {
	Credential  string
	AccessToken string
}

// AuthOutput is the result of any operation that establishes a session.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RefreshTokenInput carries the refresh token presented for rotation.
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput carries the refresh token whose session should end.
type LogoutInput struct {
	RefreshToken string
}

// AuthUsecase defines the interface for authentication operations.
type AuthUsecase interface {
	// Register creates a local account and logs it in.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login authenticates an email/password pair.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// GoogleLogin authenticates a Google credential, creating the local
	// account on first sight.
	GoogleLogin(ctx context.Context, input *GoogleLoginInput) (*AuthOutput, error)

	// RefreshToken rotates a session: the presented refresh token is revoked
	// and a new token pair is issued.
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*AuthOutput, error)

	// Logout ends the session for the presented refresh token.
	Logout(ctx context.Context, input *LogoutInput) error

	// LogoutAllDevices ends every session of a user.
	LogoutAllDevices(ctx context.Context, userID uuid.UUID) error
}
