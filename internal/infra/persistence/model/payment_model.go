package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentModel mirrors the 'payments' table. Amounts are stored in minor
// currency units.
type PaymentModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderID   string     `gorm:"type:varchar(100);unique;not null"`
	PaymentID string     `gorm:"type:varchar(255);uniqueIndex"`
	Amount    int64      `gorm:"not null"`
	Currency  string     `gorm:"type:varchar(10);not null"`
	JobID     *uuid.UUID `gorm:"type:uuid"`
	Status    string     `gorm:"type:varchar(30);not null;default:'created'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PaymentModel) TableName() string {
	return "payments"
}
