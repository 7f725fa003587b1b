package impl

import (
	"context"
	"testing"

	"jobdesk/config"
	"jobdesk/internal/domain/entity"
	domainerrors "jobdesk/internal/domain/errors"
	"jobdesk/internal/domain/repository"
	"jobdesk/internal/domain/service"
	"jobdesk/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// paymentServiceFixtures holds the service under test and all its mocks.
type paymentServiceFixtures struct {
	service     usecase.PaymentUsecase
	paymentRepo *MockPaymentRepository
	userRepo    *MockUserRepository
	provider    *MockPaymentProvider
	publisher   *MockEventPublisher
}

func createTestPaymentService(t *testing.T) *paymentServiceFixtures {
	t.Helper()

	paymentRepo := new(MockPaymentRepository)
	userRepo := new(MockUserRepository)
	provider := new(MockPaymentProvider)
	publisher := new(MockEventPublisher)

	txManager := &fakeTxManager{factory: &fakeRepoFactory{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
	}}

	paymentUsecase := NewPaymentService(PaymentServiceParams{
		TxManager:   txManager,
		PaymentRepo: paymentRepo,
		UserRepo:    userRepo,
		Provider:    provider,
		Publisher:   publisher,
		Config:      &config.Config{},
		Logger:      testLogger(),
	})

	return &paymentServiceFixtures{
		service:     paymentUsecase,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		provider:    provider,
		publisher:   publisher,
	}
}

func TestPaymentService_CreateIntent(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	payer := &entity.User{ID: userID, Email: "payer@example.com"}

	t.Run("converts major units to minor units", func(t *testing.T) {
		f := createTestPaymentService(t)
		jobID := uuid.New()

		f.userRepo.On("FindByID", mock.Anything, userID).Return(payer, nil)
		f.provider.On("CreateIntent", mock.Anything, int64(1999), "usd", mock.AnythingOfType("map[string]string")).
			Return(&service.PaymentIntent{
				ID:           "pi_123",
				ClientSecret: "pi_123_secret",
				Amount:       1999,
				Currency:     "usd",
				Status:       "requires_payment_method",
			}, nil)
		f.paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Payment")).Return(nil)

		output, err := f.service.CreateIntent(ctx, &usecase.CreateIntentInput{
			UserID: userID,
			Amount: 19.99,
			JobID:  &jobID,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1999), output.Amount)
		assert.Equal(t, "pi_123", output.PaymentIntentID)
		assert.Equal(t, "pi_123_secret", output.ClientSecret)

		metadata := f.provider.Calls[0].Arguments.Get(3).(map[string]string)
		assert.Equal(t, userID.String(), metadata["user_id"])
		assert.Equal(t, "payer@example.com", metadata["user_email"])
		assert.Equal(t, jobID.String(), metadata["job_id"])

		recorded := f.paymentRepo.Calls[0].Arguments.Get(1).(*entity.Payment)
		assert.Equal(t, entity.PaymentStatusCreated, recorded.Status)
		assert.Equal(t, int64(1999), recorded.Amount)
		assert.NotEmpty(t, recorded.OrderID)
	})

	t.Run("rejects non-positive amounts before touching the provider", func(t *testing.T) {
		f := createTestPaymentService(t)

		output, err := f.service.CreateIntent(ctx, &usecase.CreateIntentInput{UserID: userID, Amount: 0})

		assert.Nil(t, output)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidFormat)
		f.provider.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("provider rejections surface as payment failures", func(t *testing.T) {
		f := createTestPaymentService(t)

		f.userRepo.On("FindByID", mock.Anything, userID).Return(payer, nil)
		f.provider.On("CreateIntent", mock.Anything, int64(500), "usd", mock.AnythingOfType("map[string]string")).
			Return(nil, service.ErrProviderRejected)

		output, err := f.service.CreateIntent(ctx, &usecase.CreateIntentInput{UserID: userID, Amount: 5})

		assert.Nil(t, output)
		assert.ErrorIs(t, err, domainerrors.ErrPaymentFailed)
		f.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPaymentService_ConfirmPayment(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	succeededIntent := &service.PaymentIntent{ID: "pi_123", Amount: 1999, Currency: "usd", Status: "succeeded"}

	t.Run("marks the payment completed and upgrades the payer", func(t *testing.T) {
		f := createTestPaymentService(t)
		payment := &entity.Payment{UserID: userID, PaymentID: "pi_123", Amount: 1999, Status: entity.PaymentStatusCreated}

		f.provider.On("RetrieveIntent", mock.Anything, "pi_123").Return(succeededIntent, nil)
		f.paymentRepo.On("FindByPaymentID", mock.Anything, "pi_123").Return(payment, nil)
		f.paymentRepo.On("Update", mock.Anything, payment).Return(nil)
		f.userRepo.On("FindByID", mock.Anything, userID).
			Return(&entity.User{ID: userID, IsPremium: false}, nil)
		f.userRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.AnythingOfType("*service.Event")).Return(nil)

		output, err := f.service.ConfirmPayment(ctx, &usecase.ConfirmPaymentInput{
			UserID:          userID,
			PaymentIntentID: "pi_123",
		})

		require.NoError(t, err)
		assert.True(t, output.IsPremium)
		assert.Equal(t, string(entity.PaymentStatusCompleted), output.Status)
		assert.Equal(t, entity.PaymentStatusCompleted, payment.Status)

		upgraded := f.userRepo.Calls[1].Arguments.Get(1).(*entity.User)
		assert.True(t, upgraded.IsPremium)

		event := f.publisher.Calls[0].Arguments.Get(1).(*service.Event)
		assert.Equal(t, service.EventTypePaymentCompleted, event.Type)
		assert.Equal(t, int64(1999), event.Amount)
	})

	t.Run("a repeated confirm is quiet", func(t *testing.T) {
		f := createTestPaymentService(t)
		payment := &entity.Payment{UserID: userID, PaymentID: "pi_123", Status: entity.PaymentStatusCompleted}

		f.provider.On("RetrieveIntent", mock.Anything, "pi_123").Return(succeededIntent, nil)
		f.paymentRepo.On("FindByPaymentID", mock.Anything, "pi_123").Return(payment, nil)
		f.userRepo.On("FindByID", mock.Anything, userID).
			Return(&entity.User{ID: userID, IsPremium: true}, nil)

		output, err := f.service.ConfirmPayment(ctx, &usecase.ConfirmPaymentInput{
			UserID:          userID,
			PaymentIntentID: "pi_123",
		})

		require.NoError(t, err)
		assert.True(t, output.IsPremium)
		f.paymentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("a not-yet-succeeded intent is not completed", func(t *testing.T) {
		f := createTestPaymentService(t)

		f.provider.On("RetrieveIntent", mock.Anything, "pi_123").
			Return(&service.PaymentIntent{ID: "pi_123", Status: "requires_payment_method"}, nil)

		output, err := f.service.ConfirmPayment(ctx, &usecase.ConfirmPaymentInput{
			UserID:          userID,
			PaymentIntentID: "pi_123",
		})

		assert.Nil(t, output)
		assert.ErrorIs(t, err, domainerrors.ErrPaymentNotCompleted)
		f.paymentRepo.AssertNotCalled(t, "FindByPaymentID", mock.Anything, mock.Anything)
	})

	t.Run("someone else's payment is forbidden", func(t *testing.T) {
		f := createTestPaymentService(t)
		payment := &entity.Payment{UserID: uuid.New(), PaymentID: "pi_123", Status: entity.PaymentStatusCreated}

		f.provider.On("RetrieveIntent", mock.Anything, "pi_123").Return(succeededIntent, nil)
		f.paymentRepo.On("FindByPaymentID", mock.Anything, "pi_123").Return(payment, nil)

		output, err := f.service.ConfirmPayment(ctx, &usecase.ConfirmPaymentInput{
			UserID:          userID,
			PaymentIntentID: "pi_123",
		})

		assert.Nil(t, output)
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("an unrecorded intent is a payment failure", func(t *testing.T) {
		f := createTestPaymentService(t)

		f.provider.On("RetrieveIntent", mock.Anything, "pi_unknown").
			Return(&service.PaymentIntent{ID: "pi_unknown", Status: "succeeded"}, nil)
		f.paymentRepo.On("FindByPaymentID", mock.Anything, "pi_unknown").
			Return(nil, repository.ErrPaymentNotFound)

		output, err := f.service.ConfirmPayment(ctx, &usecase.ConfirmPaymentInput{
			UserID:          userID,
			PaymentIntentID: "pi_unknown",
		})

		assert.Nil(t, output)
		assert.ErrorIs(t, err, domainerrors.ErrPaymentFailed)
	})

	t.Run("provider rejections surface as payment failures", func(t *testing.T) {
		f := createTestPaymentService(t)

		f.provider.On("RetrieveIntent", mock.Anything, "pi_bogus").
			Return(nil, service.ErrProviderRejected)

		output, err := f.service.ConfirmPayment(ctx, &usecase.ConfirmPaymentInput{
			UserID:          userID,
			PaymentIntentID: "pi_bogus",
		})

		assert.Nil(t, output)
		assert.ErrorIs(t, err, domainerrors.ErrPaymentFailed)
	})
}

func TestPaymentService_PaymentStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("reports the provider status", func(t *testing.T) {
		f := createTestPaymentService(t)

		f.provider.On("RetrieveIntent", mock.Anything, "pi_123").
			Return(&service.PaymentIntent{ID: "pi_123", Amount: 1999, Currency: "usd", Status: "processing"}, nil)

		output, err := f.service.PaymentStatus(ctx, "pi_123")

		require.NoError(t, err)
		assert.Equal(t, "processing", output.Status)
		assert.Equal(t, int64(1999), output.Amount)
	})

	t.Run("unknown intents are payment failures", func(t *testing.T) {
		f := createTestPaymentService(t)

		f.provider.On("RetrieveIntent", mock.Anything, "pi_unknown").
			Return(nil, service.ErrProviderRejected)

		output, err := f.service.PaymentStatus(ctx, "pi_unknown")

		assert.Nil(t, output)
		assert.ErrorIs(t, err, domainerrors.ErrPaymentFailed)
	})
}
