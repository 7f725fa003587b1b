package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"jobdesk/internal/domain/entity"
	"jobdesk/internal/domain/repository"
	"jobdesk/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTxManager runs the callback against a fixed repository factory,
// standing in for a real transaction.
type fakeTxManager struct {
	factory repository.RepositoryFactory
	err     error
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	if m.err != nil {
		return m.err
	}

	return fn(m.factory)
}

// fakeRepoFactory hands out the repositories the test wired in.
type fakeRepoFactory struct {
	userRepo         repository.UserRepository
	authRepo         repository.AuthRepository
	refreshTokenRepo repository.RefreshTokenRepository
	paymentRepo      repository.PaymentRepository
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository { return f.userRepo }
func (f *fakeRepoFactory) AuthRepo() repository.AuthRepository { return f.authRepo }
func (f *fakeRepoFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return f.refreshTokenRepo
}
func (f *fakeRepoFactory) PaymentRepo() repository.PaymentRepository { return f.paymentRepo }

// MockUserRepository is a testify mock for repository.UserRepository.
type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

// MockAuthRepository is a testify mock for repository.AuthRepository.
type MockAuthRepository struct{ mock.Mock }

func (m *MockAuthRepository) CreateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	args := m.Called(ctx, auth)

	return args.Error(0)
}

func (m *MockAuthRepository) FindAuthentication(ctx context.Context, provider entity.ProviderType, providerUserID string) (*entity.Authentication, error) {
	args := m.Called(ctx, provider, providerUserID)
	if auth, ok := args.Get(0).(*entity.Authentication); ok {
		return auth, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthRepository) FindAuthenticationByUserIDAndProvider(ctx context.Context, userID uuid.UUID, provider entity.ProviderType) (*entity.Authentication, error) {
	args := m.Called(ctx, userID, provider)
	if auth, ok := args.Get(0).(*entity.Authentication); ok {
		return auth, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthRepository) ListAuthenticationsByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Authentication, error) {
	args := m.Called(ctx, userID)
	if auths, ok := args.Get(0).([]*entity.Authentication); ok {
		return auths, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockRefreshTokenRepository is a testify mock for repository.RefreshTokenRepository.
type MockRefreshTokenRepository struct{ mock.Mock }

func (m *MockRefreshTokenRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	args := m.Called(ctx, token)

	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if token, ok := args.Get(0).(*entity.RefreshToken); ok {
		return token, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)

	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpiredRefreshTokens(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

// MockJobRepository is a testify mock for repository.JobRepository.
type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	args := m.Called(ctx, id)
	if job, ok := args.Get(0).(*entity.Job); ok {
		return job, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockJobRepository) ListActive(ctx context.Context, filter repository.JobFilter) ([]*entity.Job, int64, error) {
	args := m.Called(ctx, filter)
	jobs, _ := args.Get(0).([]*entity.Job)

	return jobs, args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepository) Create(ctx context.Context, job *entity.Job) error {
	args := m.Called(ctx, job)

	return args.Error(0)
}

func (m *MockJobRepository) Update(ctx context.Context, job *entity.Job) error {
	args := m.Called(ctx, job)

	return args.Error(0)
}

// MockSavedJobRepository is a testify mock for repository.SavedJobRepository.
type MockSavedJobRepository struct{ mock.Mock }

func (m *MockSavedJobRepository) GetOrCreate(ctx context.Context, userID, jobID uuid.UUID) (*entity.SavedJob, bool, error) {
	args := m.Called(ctx, userID, jobID)
	saved, _ := args.Get(0).(*entity.SavedJob)

	return saved, args.Bool(1), args.Error(2)
}

func (m *MockSavedJobRepository) Delete(ctx context.Context, userID, jobID uuid.UUID) error {
	args := m.Called(ctx, userID, jobID)

	return args.Error(0)
}

func (m *MockSavedJobRepository) Exists(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, jobID)

	return args.Bool(0), args.Error(1)
}

func (m *MockSavedJobRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SavedJob, error) {
	args := m.Called(ctx, userID)
	saved, _ := args.Get(0).([]*entity.SavedJob)

	return saved, args.Error(1)
}

func (m *MockSavedJobRepository) ExistsForJobs(ctx context.Context, userID uuid.UUID, jobIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	args := m.Called(ctx, userID, jobIDs)
	saved, _ := args.Get(0).(map[uuid.UUID]bool)

	return saved, args.Error(1)
}

// MockApplicationRepository is a testify mock for repository.ApplicationRepository.
type MockApplicationRepository struct{ mock.Mock }

func (m *MockApplicationRepository) Create(ctx context.Context, application *entity.JobApplication) error {
	args := m.Called(ctx, application)

	return args.Error(0)
}

func (m *MockApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*entity.JobApplication, error) {
	args := m.Called(ctx, applicantID)
	apps, _ := args.Get(0).([]*entity.JobApplication)

	return apps, args.Error(1)
}

// MockPaymentRepository is a testify mock for repository.PaymentRepository.
type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	args := m.Called(ctx, payment)

	return args.Error(0)
}

func (m *MockPaymentRepository) FindByPaymentID(ctx context.Context, paymentID string) (*entity.Payment, error) {
	args := m.Called(ctx, paymentID)
	if payment, ok := args.Get(0).(*entity.Payment); ok {
		return payment, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPaymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	args := m.Called(ctx, payment)

	return args.Error(0)
}

// MockPasswordHasher is a testify mock for service.PasswordHasher.
type MockPasswordHasher struct{ mock.Mock }

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// MockTokenService is a testify mock for service.TokenService.
type MockTokenService struct{ mock.Mock }

func (m *MockTokenService) GenerateTokens(userID uuid.UUID, userType string) (string, string, error) {
	args := m.Called(userID, userType)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) ValidateAccessToken(tokenString string) (*service.TokenClaims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.TokenClaims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTokenService) ValidateRefreshToken(tokenString string) (*service.TokenClaims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.TokenClaims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockTokenService) HashToken(tokenString string) string {
	args := m.Called(tokenString)

	return args.String(0)
}

func (m *MockTokenService) RefreshTokenDuration() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}

// MockIdentityVerifier is a testify mock for service.IdentityVerifier.
type MockIdentityVerifier struct{ mock.Mock }

func (m *MockIdentityVerifier) VerifyIDToken(ctx context.Context, idToken string) (*service.ExternalIdentity, error) {
	args := m.Called(ctx, idToken)
	if identity, ok := args.Get(0).(*service.ExternalIdentity); ok {
		return identity, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockIdentityVerifier) VerifyAccessToken(ctx context.Context, accessToken string) (*service.ExternalIdentity, error) {
	args := m.Called(ctx, accessToken)
	if identity, ok := args.Get(0).(*service.ExternalIdentity); ok {
		return identity, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockIdentityVerifier) Provider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}

// MockPaymentProvider is a testify mock for service.PaymentProvider.
type MockPaymentProvider struct{ mock.Mock }

func (m *MockPaymentProvider) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*service.PaymentIntent, error) {
	args := m.Called(ctx, amount, currency, metadata)
	if intent, ok := args.Get(0).(*service.PaymentIntent); ok {
		return intent, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockPaymentProvider) RetrieveIntent(ctx context.Context, paymentIntentID string) (*service.PaymentIntent, error) {
	args := m.Called(ctx, paymentIntentID)
	if intent, ok := args.Get(0).(*service.PaymentIntent); ok {
		return intent, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockEventPublisher is a testify mock for service.EventPublisher.
type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event *service.Event) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}
