package usecase

import (
	"context"

	"github.com/google/uuid"
)

// CreateIntentInput starts a payment. Amount is in major currency units as
// the client sends it; conversion to minor units happens inside.
type CreateIntentInput struct {
	UserID   uuid.UUID
	Amount   float64
	Currency string
	JobID    *uuid.UUID
}

// CreateIntentOutput is what the browser needs to complete the payment.
type CreateIntentOutput struct {
	ClientSecret    string
	PaymentIntentID string
	Amount          int64
	Currency        string
}

// ConfirmPaymentInput finalizes a payment after the client-side flow.
type ConfirmPaymentInput struct {
	UserID          uuid.UUID
	PaymentIntentID string
}

// ConfirmPaymentOutput reports the settled payment.
type ConfirmPaymentOutput struct {
	PaymentIntentID string
	Status          string
	IsPremium       bool
}

// PaymentStatusOutput proxies the provider-side intent status.
type PaymentStatusOutput struct {
	PaymentIntentID string
	Status          string
	Amount          int64
	Currency        string
}

// PaymentUsecase defines the interface for payment operations.
type PaymentUsecase interface {
	// CreateIntent registers a payment with the provider and records it locally.
	CreateIntent(ctx context.Context, input *CreateIntentInput) (*CreateIntentOutput, error)

	// ConfirmPayment checks the provider-side outcome and, on success, marks
	// the payment completed and upgrades the payer to premium.
	ConfirmPayment(ctx context.Context, input *ConfirmPaymentInput) (*ConfirmPaymentOutput, error)

	// PaymentStatus returns the provider-reported status of an intent.
	PaymentStatus(ctx context.Context, paymentIntentID string) (*PaymentStatusOutput, error)
}
