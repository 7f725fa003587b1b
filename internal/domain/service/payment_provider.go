package service

import (
	"context"
	"errors"
)

// ErrProviderRejected is returned when the payment provider refuses a
// request (declined card, bad parameters, unknown intent). It maps to a
// client error, never a 500.
var ErrProviderRejected = errors.New("payment provider rejected the request")

// PaymentIntent is the provider-side handle a client needs to complete a
// payment.
type PaymentIntent struct {
	ID           string // Provider payment-intent ID.
	ClientSecret string // Secret the browser uses to confirm the payment.
	Amount       int64  // Amount in minor currency units.
	Currency     string // ISO currency code, lower case.
	Status       string // Provider-reported status.
}

// PaymentProvider abstracts the third-party payment processor. All calls
// take a context and are bounded by it.
type PaymentProvider interface {
	// CreateIntent registers a new payment of amount minor units with the
	// provider. Metadata travels with the intent for reconciliation.
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error)

	// RetrieveIntent fetches the current state of a payment intent.
	RetrieveIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error)
}
