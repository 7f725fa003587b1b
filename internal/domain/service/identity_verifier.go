package service

import (
	"context"
	"errors"

	"jobdesk/internal/domain/entity"
)

// ErrVerificationFailed is returned when the identity provider rejects a
// token or cannot be reached within the call's deadline. Network errors,
// non-200 responses, issuer/audience mismatches and timeouts all collapse
// into this one error; the caller does not retry.
var ErrVerificationFailed = errors.New("external identity verification failed")

// ExternalIdentity is the profile a provider vouches for. It is transient:
// used to resolve or create a local User, never persisted as its own entity.
type ExternalIdentity struct {
	Subject       string              // Provider-specific user ID (e.g., Google's 'sub' claim).
	Email         string              // Verified email address; may be empty if the provider withheld it.
	GivenName     string              // First name.
	FamilyName    string              // Last name.
	Name          string              // Full display name.
	Picture       string              // Profile picture URL.
	Locale        string              // Locale/language preference.
	EmailVerified bool                // Whether the provider verified the email.
	Provider      entity.ProviderType // Which provider vouched for this identity.
}

// IdentityVerifier verifies federated login credentials with the external
// identity provider. The core performs no cryptographic validation of its
// own; the provider (or its client library) owns that.
type IdentityVerifier interface {
	// VerifyIDToken verifies an OIDC ID token ("credential") and returns the
	// identity it asserts.
	VerifyIDToken(ctx context.Context, idToken string) (*ExternalIdentity, error)

	// VerifyAccessToken resolves an OAuth access token to the identity it was
	// issued for, via the provider's userinfo endpoint.
	VerifyAccessToken(ctx context.Context, accessToken string) (*ExternalIdentity, error)

	// Provider returns the provider this verifier talks to.
	Provider() entity.ProviderType
}
