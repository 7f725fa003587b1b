package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderType identifies how a credential was established.
type ProviderType string

const (
	// ProviderTypeEmail is the local email/password provider.
	ProviderTypeEmail ProviderType = "email"
	// ProviderTypeGoogle is Google Sign-In.
	ProviderTypeGoogle ProviderType = "google"
)

// Authentication represents a single method of logging in (a credential).
// A user's email/password is one record; a linked Google account is another.
// Accounts created by federated login carry no email-provider record and
// therefore no local password.
type Authentication struct {
	ID             uuid.UUID    // The unique ID for this authentication record.
	UserID         uuid.UUID    // The user this credential belongs to.
	Provider       ProviderType // "email" or "google".
	ProviderUserID string       // Email address for local accounts, Google 'sub' for federated ones.
	PasswordHash   string       // bcrypt hash, populated only for the email provider.
	CreatedAt      time.Time    // When this method was linked to the account.
}

// RefreshToken represents a long-lived, revocable user session. Only a
// SHA-256 hash of the raw token is stored; deleting the row revokes the
// session.
type RefreshToken struct {
	ID        uuid.UUID // The unique ID for this session record.
	UserID    uuid.UUID // The user this session belongs to.
	TokenHash string    // SHA-256 hash of the raw refresh token.
	ExpiresAt time.Time // When this session stops being usable.
	CreatedAt time.Time // When the session was created (login time).
}
