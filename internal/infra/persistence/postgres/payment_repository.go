package postgres

import (
	"context"

	"jobdesk/internal/domain/entity"
	domainerrors "jobdesk/internal/domain/errors"
	"jobdesk/internal/domain/repository"
	"jobdesk/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// paymentRepository implements the domain.PaymentRepository interface.
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository is the constructor for paymentRepository.
func NewPaymentRepository(db *gorm.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

// Create persists a new payment record.
func (repo *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	paymentM := fromPaymentDomain(payment)

	if err := repo.db.WithContext(ctx).Create(paymentM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "payment already recorded")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create payment")
	}

	payment.ID = paymentM.ID
	payment.CreatedAt = paymentM.CreatedAt
	payment.UpdatedAt = paymentM.UpdatedAt

	return nil
}

// FindByPaymentID retrieves the record for a provider payment-intent ID.
func (repo *paymentRepository) FindByPaymentID(ctx context.Context, paymentID string) (*entity.Payment, error) {
	var paymentM model.PaymentModel
	err := repo.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		First(&paymentM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPaymentNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment")
	}

	return toPaymentDomain(&paymentM), nil
}

// Update modifies an existing payment record.
func (repo *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	paymentM := fromPaymentDomain(payment)

	if err := repo.db.WithContext(ctx).Save(paymentM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update payment")
	}

	payment.UpdatedAt = paymentM.UpdatedAt

	return nil
}

// toPaymentDomain maps a persistence model to a pure domain entity.
func toPaymentDomain(m *model.PaymentModel) *entity.Payment {
	return &entity.Payment{
		ID:        m.ID,
		UserID:    m.UserID,
		OrderID:   m.OrderID,
		PaymentID: m.PaymentID,
		Amount:    m.Amount,
		Currency:  m.Currency,
		JobID:     m.JobID,
		Status:    entity.PaymentStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// fromPaymentDomain maps a domain entity to a persistence model.
func fromPaymentDomain(p *entity.Payment) *model.PaymentModel {
	return &model.PaymentModel{
		ID:        p.ID,
		UserID:    p.UserID,
		OrderID:   p.OrderID,
		PaymentID: p.PaymentID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		JobID:     p.JobID,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
