package impl

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"jobdesk/config"
	deliverycontext "jobdesk/internal/delivery/context"
	"jobdesk/internal/domain/entity"
	domainerrors "jobdesk/internal/domain/errors"
	"jobdesk/internal/domain/repository"
	"jobdesk/internal/domain/service"
	"jobdesk/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultCurrency = "usd"

// paymentService implements the PaymentUsecase interface.
type paymentService struct {
	txManager       repository.TransactionManager
	paymentRepo     repository.PaymentRepository
	userRepo        repository.UserRepository
	provider        service.PaymentProvider
	publisher       service.EventPublisher
	defaultCurrency string
	logger          *slog.Logger
}

// PaymentServiceParams holds dependencies for PaymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	PaymentRepo repository.PaymentRepository
	UserRepo    repository.UserRepository
	Provider    service.PaymentProvider
	Publisher   service.EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	currency := defaultCurrency
	if params.Config != nil && params.Config.Stripe != nil && params.Config.Stripe.DefaultCurrency != "" {
		currency = strings.ToLower(params.Config.Stripe.DefaultCurrency)
	}

	return &paymentService{
		txManager:       params.TxManager,
		paymentRepo:     params.PaymentRepo,
		userRepo:        params.UserRepo,
		provider:        params.Provider,
		publisher:       params.Publisher,
		defaultCurrency: currency,
		logger:          params.Logger,
	}
}

func (srv *paymentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateIntent registers a payment with the provider and records it locally.
func (srv *paymentService) CreateIntent(ctx context.Context, input *usecase.CreateIntentInput) (*usecase.CreateIntentOutput, error) {
	if input.Amount <= 0 {
		return nil, errors.Wrap(domainerrors.ErrInvalidFormat, "amount must be positive")
	}

	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load payer")
	}

	currency := strings.ToLower(input.Currency)
	if currency == "" {
		currency = srv.defaultCurrency
	}

	// The client sends major units; the provider expects minor units.
	amountMinor := int64(math.Round(input.Amount * 100))

	metadata := map[string]string{
		"user_id":    user.ID.String(),
		"user_email": user.Email,
	}
	if input.JobID != nil {
		metadata["job_id"] = input.JobID.String()
	}

	intent, err := srv.provider.CreateIntent(ctx, amountMinor, currency, metadata)
	if err != nil {
		srv.log(ctx).Warn("Payment intent creation failed", slog.Any("error", err))

		if errors.Is(err, service.ErrProviderRejected) {
			return nil, errors.Wrap(domainerrors.ErrPaymentFailed, "intent creation rejected")
		}

		return nil, errors.Wrap(err, "failed to create payment intent")
	}

	payment := &entity.Payment{
		UserID:    user.ID,
		OrderID:   uuid.NewString(),
		PaymentID: intent.ID,
		Amount:    amountMinor,
		Currency:  currency,
		JobID:     input.JobID,
		Status:    entity.PaymentStatusCreated,
	}
	if err := srv.paymentRepo.Create(ctx, payment); err != nil {
		return nil, errors.Wrap(err, "failed to record payment")
	}

	srv.log(ctx).Info("Payment intent created",
		slog.String("paymentIntentID", intent.ID),
		slog.Int64("amount", amountMinor))

	return &usecase.CreateIntentOutput{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		Amount:          amountMinor,
		Currency:        currency,
	}, nil
}

// ConfirmPayment checks the provider-side outcome. A succeeded intent marks
// the payment completed and upgrades the payer to premium; anything else is
// a client-visible payment error, never a 500.
func (srv *paymentService) ConfirmPayment(ctx context.Context, input *usecase.ConfirmPaymentInput) (*usecase.ConfirmPaymentOutput, error) {
	intent, err := srv.provider.RetrieveIntent(ctx, input.PaymentIntentID)
	if err != nil {
		srv.log(ctx).Warn("Payment intent retrieval failed", slog.Any("error", err))

		if errors.Is(err, service.ErrProviderRejected) {
			return nil, errors.Wrap(domainerrors.ErrPaymentFailed, "unknown payment intent")
		}

		return nil, errors.Wrap(err, "failed to retrieve payment intent")
	}

	if intent.Status != "succeeded" {
		return nil, errors.Wrap(domainerrors.ErrPaymentNotCompleted, "payment intent status: "+intent.Status)
	}

	var isPremium bool
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		paymentRepo := repoFactory.PaymentRepo()
		userRepo := repoFactory.UserRepo()

		payment, err := paymentRepo.FindByPaymentID(ctx, input.PaymentIntentID)
		if err != nil {
			if errors.Is(err, repository.ErrPaymentNotFound) {
				return errors.Wrap(domainerrors.ErrPaymentFailed, "payment not recorded")
			}

			return errors.Wrap(err, "failed to find payment")
		}

		if payment.UserID != input.UserID {
			return errors.Wrap(domainerrors.ErrForbidden, "payment belongs to another user")
		}

		alreadyCompleted := payment.Status == entity.PaymentStatusCompleted
		if !alreadyCompleted {
			payment.Status = entity.PaymentStatusCompleted
			if err := paymentRepo.Update(ctx, payment); err != nil {
				return errors.Wrap(err, "failed to update payment")
			}
		}

		user, err := userRepo.FindByID(ctx, payment.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to load payer")
		}
		if !user.IsPremium {
			user.IsPremium = true
			if err := userRepo.Update(ctx, user); err != nil {
				return errors.Wrap(err, "failed to upgrade payer")
			}
		}
		isPremium = user.IsPremium

		// Publish only on the transition, so retried confirms stay silent.
		if !alreadyCompleted {
			srv.publishPaymentEvent(ctx, payment)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Payment confirmed", slog.String("paymentIntentID", input.PaymentIntentID))

	return &usecase.ConfirmPaymentOutput{
		PaymentIntentID: input.PaymentIntentID,
		Status:          string(entity.PaymentStatusCompleted),
		IsPremium:       isPremium,
	}, nil
}

// PaymentStatus returns the provider-reported status of an intent.
func (srv *paymentService) PaymentStatus(ctx context.Context, paymentIntentID string) (*usecase.PaymentStatusOutput, error) {
	intent, err := srv.provider.RetrieveIntent(ctx, paymentIntentID)
	if err != nil {
		if errors.Is(err, service.ErrProviderRejected) {
			return nil, errors.Wrap(domainerrors.ErrPaymentFailed, "unknown payment intent")
		}

		return nil, errors.Wrap(err, "failed to retrieve payment intent")
	}

	return &usecase.PaymentStatusOutput{
		PaymentIntentID: intent.ID,
		Status:          intent.Status,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
	}, nil
}

// publishPaymentEvent emits a best-effort event; failures are only logged.
func (srv *paymentService) publishPaymentEvent(ctx context.Context, payment *entity.Payment) {
	event := &service.Event{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Type:      service.EventTypePaymentCompleted,
		UserID:    payment.UserID.String(),
		PaymentID: payment.PaymentID,
		Amount:    payment.Amount,
	}
	if payment.JobID != nil {
		event.JobID = payment.JobID.String()
	}

	if err := srv.publisher.Publish(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish payment event",
			slog.String("paymentIntentID", payment.PaymentID),
			slog.Any("error", err))
	}
}
