// Package payment provides the Stripe-backed implementation of the
// PaymentProvider domain service.
package payment

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"jobdesk/config"
	"jobdesk/internal/domain/service"
)

const defaultTimeout = 15 * time.Second

// stripeProvider is a concrete implementation of the PaymentProvider
// interface backed by the Stripe API.
type stripeProvider struct {
	api     *client.API
	timeout time.Duration
	logger  *slog.Logger
}

// NewStripeProvider is the constructor for stripeProvider.
func NewStripeProvider(cfg *config.Config, logger *slog.Logger) (service.PaymentProvider, error) {
	if cfg.Stripe == nil || cfg.Stripe.SecretKey == "" {
		return nil, errors.New("stripe secret key must be provided")
	}

	timeout := cfg.Stripe.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	api := &client.API{}
	api.Init(cfg.Stripe.SecretKey, nil)

	return &stripeProvider{
		api:     api,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// newStripeProviderWithAPI wires an already-initialized client, used by tests.
func newStripeProviderWithAPI(api *client.API, logger *slog.Logger) *stripeProvider {
	return &stripeProvider{api: api, timeout: defaultTimeout, logger: logger}
}

// CreateIntent registers a new payment intent with Stripe.
func (p *stripeProvider) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*service.PaymentIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context:  ctx,
			Metadata: metadata,
		},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, p.mapError(err, "create payment intent")
	}

	p.logger.Info("stripe payment intent created",
		slog.String("paymentIntentID", intent.ID),
		slog.Int64("amount", intent.Amount),
		slog.String("currency", string(intent.Currency)))

	return toPaymentIntent(intent), nil
}

// RetrieveIntent fetches the current state of a payment intent from Stripe.
func (p *stripeProvider) RetrieveIntent(ctx context.Context, paymentIntentID string) (*service.PaymentIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	}

	intent, err := p.api.PaymentIntents.Get(paymentIntentID, params)
	if err != nil {
		return nil, p.mapError(err, "retrieve payment intent")
	}

	return toPaymentIntent(intent), nil
}

// mapError translates Stripe client errors into domain errors. Provider
// rejections (declined cards, unknown intents, bad parameters) become
// ErrProviderRejected; everything else surfaces as an internal failure.
func (p *stripeProvider) mapError(err error, op string) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		p.logger.Warn("stripe rejected request",
			slog.String("op", op),
			slog.String("code", string(stripeErr.Code)),
			slog.String("type", string(stripeErr.Type)))
		switch stripeErr.Type {
		case stripe.ErrorTypeCard, stripe.ErrorTypeInvalidRequest:
			return errors.Wrap(service.ErrProviderRejected, stripeErr.Msg)
		}
	}

	p.logger.Error("stripe request failed", slog.String("op", op), slog.Any("error", err))

	return errors.Wrapf(err, "%s", op)
}

func toPaymentIntent(intent *stripe.PaymentIntent) *service.PaymentIntent {
	return &service.PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     string(intent.Currency),
		Status:       string(intent.Status),
	}
}
