package service

import (
	"context"
)

// Event types published by the application.
const (
	EventTypePaymentCompleted = "payment.completed"
	EventTypeJobApplied       = "job.applied"
)

// Event is a domain occurrence worth telling other systems about.
type Event struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing.
	Type      string `json:"type"`                 // One of the EventType constants.
	UserID    string `json:"user_id"`
	JobID     string `json:"job_id,omitempty"`
	PaymentID string `json:"payment_id,omitempty"`
	Amount    int64  `json:"amount,omitempty"` // Minor units, payment events only.
}

// EventPublisher defines the interface for publishing events to a message
// queue. Publishing is best-effort: the business operation has already
// committed when an event goes out.
type EventPublisher interface {
	// Publish sends an event for async processing.
	Publish(ctx context.Context, event *Event) error

	// Close releases any resources held by the publisher.
	Close() error
}
