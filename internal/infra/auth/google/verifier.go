// Package google verifies Google Sign-In credentials against Google's
// public endpoints.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"google.golang.org/api/idtoken"

	"jobdesk/config"
	"jobdesk/internal/domain/entity"
	"jobdesk/internal/domain/service"
)

const (
	issuerHTTPS = "https://accounts.google.com"
	issuerBare  = "accounts.google.com"

	userinfoEndpoint = "https://www.googleapis.com/oauth2/v3/userinfo"

	defaultTimeout = 10 * time.Second
)

// validateFunc matches idtoken.Validate so tests can stub the network call.
type validateFunc func(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)

// userinfoResponse is the payload of Google's OpenID userinfo endpoint.
type userinfoResponse struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Locale        string `json:"locale"`
}

// Verifier is a concrete implementation of the IdentityVerifier interface
// backed by Google's token verification.
type Verifier struct {
	clientID string
	timeout  time.Duration
	client   *http.Client
	validate validateFunc
	logger   *slog.Logger
}

// NewVerifier is the constructor for Verifier.
func NewVerifier(cfg *config.Config, logger *slog.Logger) (service.IdentityVerifier, error) {
	if cfg.GoogleOAuth == nil || cfg.GoogleOAuth.ClientID == "" {
		return nil, errors.New("google oauth client id must be provided")
	}

	timeout := cfg.GoogleOAuth.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Verifier{
		clientID: cfg.GoogleOAuth.ClientID,
		timeout:  timeout,
		client:   &http.Client{Timeout: timeout},
		validate: idtoken.Validate,
		logger:   logger,
	}, nil
}

// VerifyIDToken verifies a Google ID token's signature, audience and issuer
// and returns the identity it asserts.
func (v *Verifier) VerifyIDToken(ctx context.Context, idToken string) (*service.ExternalIdentity, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	payload, err := v.validate(ctx, idToken, v.clientID)
	if err != nil {
		v.logger.Warn("google id token validation failed", slog.Any("error", err))
		return nil, errors.Wrap(service.ErrVerificationFailed, err.Error())
	}

	if payload.Issuer != issuerHTTPS && payload.Issuer != issuerBare {
		v.logger.Warn("google id token has unexpected issuer", slog.String("issuer", payload.Issuer))
		return nil, errors.Wrap(service.ErrVerificationFailed, "unexpected issuer")
	}

	identity := &service.ExternalIdentity{
		Subject:       payload.Subject,
		Email:         claimString(payload.Claims, "email"),
		GivenName:     claimString(payload.Claims, "given_name"),
		FamilyName:    claimString(payload.Claims, "family_name"),
		Name:          claimString(payload.Claims, "name"),
		Picture:       claimString(payload.Claims, "picture"),
		Locale:        claimString(payload.Claims, "locale"),
		EmailVerified: claimBool(payload.Claims, "email_verified"),
		Provider:      entity.ProviderTypeGoogle,
	}

	if identity.Subject == "" {
		return nil, errors.Wrap(service.ErrVerificationFailed, "token has no subject")
	}

	v.logger.Info("google id token verified",
		slog.String("subject", identity.Subject))

	return identity, nil
}

// VerifyAccessToken resolves an OAuth access token against Google's userinfo
// endpoint and returns the identity it was issued for.
func (v *Verifier) VerifyAccessToken(ctx context.Context, accessToken string) (*service.ExternalIdentity, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userinfoEndpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build userinfo request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Warn("google userinfo request failed", slog.Any("error", err))
		return nil, errors.Wrap(service.ErrVerificationFailed, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.logger.Warn("google userinfo rejected token", slog.Int("status", resp.StatusCode))
		return nil, errors.Wrap(service.ErrVerificationFailed, fmt.Sprintf("userinfo returned %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.Wrap(service.ErrVerificationFailed, err.Error())
	}

	var info userinfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, errors.Wrap(service.ErrVerificationFailed, "malformed userinfo response")
	}

	if info.Sub == "" {
		return nil, errors.Wrap(service.ErrVerificationFailed, "userinfo response has no subject")
	}

	v.logger.Info("google access token verified",
		slog.String("subject", info.Sub))

	return &service.ExternalIdentity{
		Subject:       info.Sub,
		Email:         info.Email,
		GivenName:     info.GivenName,
		FamilyName:    info.FamilyName,
		Name:          info.Name,
		Picture:       info.Picture,
		Locale:        info.Locale,
		EmailVerified: info.EmailVerified,
		Provider:      entity.ProviderTypeGoogle,
	}, nil
}

// Provider returns the provider this verifier talks to.
func (v *Verifier) Provider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}

func claimString(claims map[string]any, key string) string {
	s, _ := claims[key].(string)
	return s
}

func claimBool(claims map[string]any, key string) bool {
	switch val := claims[key].(type) {
	case bool:
		return val
	case string:
		// Google occasionally serializes this claim as a string.
		return val == "true"
	default:
		return false
	}
}
