package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus mirrors the lifecycle of a payment record.
type PaymentStatus string

const (
	PaymentStatusCreated          PaymentStatus = "created"
	PaymentStatusCompleted        PaymentStatus = "completed"
	PaymentStatusFailed           PaymentStatus = "failed"
	PaymentStatusCompletedOffline PaymentStatus = "completed_offline"
)

// Payment is the local record of a payment-provider transaction. The
// provider owns the money movement; this row tracks what we asked for and
// what we last observed.
type Payment struct {
	ID        uuid.UUID
	UserID    uuid.UUID     // The paying account.
	OrderID   string        // Our unique order reference.
	PaymentID string        // The provider's payment-intent ID; empty until created remotely.
	Amount    int64         // Amount in minor currency units.
	Currency  string        // ISO currency code, lower case.
	JobID     *uuid.UUID    // Listing being promoted, when applicable.
	Status    PaymentStatus // Defaults to "created".
	CreatedAt time.Time
	UpdatedAt time.Time
}
