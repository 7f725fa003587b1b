package repository

import (
	"context"
	"errors"

	"jobdesk/internal/domain/entity"
)

// ErrPaymentNotFound is returned when a payment record is not found.
var ErrPaymentNotFound = errors.New("payment not found")

// PaymentRepository defines the standard operations for payment persistence.
type PaymentRepository interface {
	// Create persists a new payment record.
	Create(ctx context.Context, payment *entity.Payment) error

	// FindByPaymentID retrieves the record for a provider payment-intent ID.
	FindByPaymentID(ctx context.Context, paymentID string) (*entity.Payment, error)

	// Update modifies an existing payment record.
	Update(ctx context.Context, payment *entity.Payment) error
}
