package google

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"google.golang.org/api/idtoken"

	"jobdesk/config"
	"jobdesk/internal/domain/entity"
	"jobdesk/internal/domain/service"
)

func testVerifier(t *testing.T) *Verifier {
	t.Helper()

	cfg := &config.Config{
		GoogleOAuth: &config.GoogleOAuthConfig{ClientID: "test_client_id"},
	}
	v, err := NewVerifier(cfg, slog.Default())
	assert.NoError(t, err)

	verifier, ok := v.(*Verifier)
	assert.True(t, ok)
	return verifier
}

func TestNewVerifier_RequiresClientID(t *testing.T) {
	_, err := NewVerifier(&config.Config{}, slog.Default())
	assert.Error(t, err)

	_, err = NewVerifier(&config.Config{GoogleOAuth: &config.GoogleOAuthConfig{}}, slog.Default())
	assert.Error(t, err)
}

func TestVerifier_Provider(t *testing.T) {
	v := testVerifier(t)
	assert.Equal(t, entity.ProviderTypeGoogle, v.Provider())
}

func TestVerifier_VerifyIDToken(t *testing.T) {
	v := testVerifier(t)
	v.validate = func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error) {
		assert.Equal(t, "test_client_id", audience)
		return &idtoken.Payload{
			Issuer:  "https://accounts.google.com",
			Subject: "google-sub-123",
			Claims: map[string]any{
				"email":          "user@example.com",
				"email_verified": true,
				"given_name":     "Test",
				"family_name":    "User",
				"name":           "Test User",
				"picture":        "https://example.com/p.png",
			},
		}, nil
	}

	identity, err := v.VerifyIDToken(context.Background(), "some-token")
	assert.NoError(t, err)
	assert.Equal(t, "google-sub-123", identity.Subject)
	assert.Equal(t, "user@example.com", identity.Email)
	assert.Equal(t, "Test", identity.GivenName)
	assert.Equal(t, "User", identity.FamilyName)
	assert.True(t, identity.EmailVerified)
	assert.Equal(t, entity.ProviderTypeGoogle, identity.Provider)
}

func TestVerifier_VerifyIDToken_RejectedByProvider(t *testing.T) {
	v := testVerifier(t)
	v.validate = func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error) {
		return nil, errors.New("signature mismatch")
	}

	identity, err := v.VerifyIDToken(context.Background(), "bad-token")
	assert.Nil(t, identity)
	assert.True(t, errors.Is(err, service.ErrVerificationFailed))
}

func TestVerifier_VerifyIDToken_WrongIssuer(t *testing.T) {
	v := testVerifier(t)
	v.validate = func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error) {
		return &idtoken.Payload{
			Issuer:  "https://evil.example.com",
			Subject: "google-sub-123",
			Claims:  map[string]any{},
		}, nil
	}

	identity, err := v.VerifyIDToken(context.Background(), "some-token")
	assert.Nil(t, identity)
	assert.True(t, errors.Is(err, service.ErrVerificationFailed))
}

func TestVerifier_VerifyAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer valid-access-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(userinfoResponse{
			Sub:           "google-sub-456",
			Email:         "user@example.com",
			EmailVerified: true,
			GivenName:     "Test",
			FamilyName:    "User",
		})
	}))
	defer srv.Close()

	v := testVerifier(t)
	v.client = srv.Client()
	v.client.Transport = rewriteTransport{target: srv.URL}

	identity, err := v.VerifyAccessToken(context.Background(), "valid-access-token")
	assert.NoError(t, err)
	assert.Equal(t, "google-sub-456", identity.Subject)
	assert.Equal(t, "user@example.com", identity.Email)
	assert.True(t, identity.EmailVerified)
}

func TestVerifier_VerifyAccessToken_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	v := testVerifier(t)
	v.client = srv.Client()
	v.client.Transport = rewriteTransport{target: srv.URL}

	identity, err := v.VerifyAccessToken(context.Background(), "expired-token")
	assert.Nil(t, identity)
	assert.True(t, errors.Is(err, service.ErrVerificationFailed))
}

func TestVerifier_VerifyAccessToken_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	v := testVerifier(t)
	v.timeout = 50 * time.Millisecond
	v.client = srv.Client()
	v.client.Transport = rewriteTransport{target: srv.URL}

	identity, err := v.VerifyAccessToken(context.Background(), "any-token")
	assert.Nil(t, identity)
	assert.True(t, errors.Is(err, service.ErrVerificationFailed))
}

// rewriteTransport redirects every request to the test server.
type rewriteTransport struct {
	target string
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	target := req.Clone(req.Context())
	target.URL.Scheme = "http"
	target.URL.Host = req.URL.Host
	u := rt.target + req.URL.Path
	parsed, err := target.URL.Parse(u)
	if err != nil {
		return nil, err
	}
	target.URL = parsed
	return http.DefaultTransport.RoundTrip(target)
}
