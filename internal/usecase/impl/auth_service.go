// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

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

// authService implements the AuthUsecase interface.
type authService struct {
	txManager            repository.TransactionManager
	userRepo             repository.UserRepository
	authRepo             repository.AuthRepository
	refreshTokenRepo     repository.RefreshTokenRepository
	hasher               service.PasswordHasher
	tokenService         service.TokenService
	googleVerifier       service.IdentityVerifier
	syncFederatedProfile bool
	logger               *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	AuthRepo         repository.AuthRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	GoogleVerifier   service.IdentityVerifier
	Config           *config.Config
	Logger           *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	syncProfile := false
	if params.Config != nil && params.Config.Auth != nil {
		syncProfile = params.Config.Auth.SyncFederatedProfile
	}

	return &authService{
		txManager:            params.TxManager,
		userRepo:             params.UserRepo,
		authRepo:             params.AuthRepo,
		refreshTokenRepo:     params.RefreshTokenRepo,
		hasher:               params.Hasher,
		tokenService:         params.TokenService,
		googleVerifier:       params.GoogleVerifier,
		syncFederatedProfile: syncProfile,
		logger:               params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a local account and logs it in.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	// Hash outside the transaction (bcrypt is CPU-bound).
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	userType := input.UserType
	if userType == "" {
		userType = entity.UserTypeJobSeeker
	}

	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()

		if _, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email); err == nil {
			return errors.Wrap(domainerrors.ErrEmailTaken, "registration failed")
		} else if !errors.Is(err, repository.ErrAuthNotFound) {
			return errors.Wrap(err, "failed to check existing authentication")
		}

		newUser := &entity.User{
			Email:     input.Email,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			UserType:  userType,
			IsActive:  true,
		}
		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		newAuth := &entity.Authentication{
			UserID:         newUser.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: input.Email,
			PasswordHash:   hashedPassword,
		}
		if err := authRepo.CreateAuthentication(ctx, newAuth); err != nil {
			return errors.Wrap(err, "failed to create email authentication")
		}

		registeredUser = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("User registered", slog.Any("userID", registeredUser.ID))

	// Auto-login: issue the same payload as a successful login.
	return srv.establishSession(ctx, registeredUser)
}

// Login authenticates an email/password pair. The "unknown email" and
// "wrong password" paths return the same error so responses never reveal
// whether an address is registered. Nothing is mutated before the
// credentials check succeeds.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting user login")

	authRecord, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			srv.log(ctx).Warn("Login failed: unknown email")

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find authentication")
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, authRecord.PasswordHash) {
		srv.log(ctx).Warn("Login failed: password mismatch", slog.Any("userID", authRecord.UserID))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	loggedInUser, err := srv.userRepo.FindByID(ctx, authRecord.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	if !loggedInUser.IsActive {
		srv.log(ctx).Warn("Login rejected: inactive account", slog.Any("userID", loggedInUser.ID))

		return nil, errors.Wrap(domainerrors.ErrAccountInactive, "login failed")
	}

	output, err := srv.establishSession(ctx, loggedInUser)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", loggedInUser.ID))

	return output, nil
}

// GoogleLogin authenticates a Google credential, creating the local account
// on first sight.
func (srv *authService) GoogleLogin(ctx context.Context, input *usecase.GoogleLoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Handling Google login")

	if input.Credential == "" && input.AccessToken == "" {
		return nil, errors.Wrap(domainerrors.ErrMissingFields, "either credential or access_token is required")
	}

	// 1. Verify the credential with Google. Any provider-side failure
	// (bad token, network error, timeout) collapses into one typed error.
	var identity *service.ExternalIdentity
	var err error
	if input.Credential != "" {
		identity, err = srv.googleVerifier.VerifyIDToken(ctx, input.Credential)
	} else {
		identity, err = srv.googleVerifier.VerifyAccessToken(ctx, input.AccessToken)
	}
	if err != nil {
		srv.log(ctx).Warn("Google verification failed", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrExternalVerificationFailed, "google login failed")
	}

	if identity.Email == "" {
		return nil, errors.Wrap(domainerrors.ErrProviderDataIncomplete, "google login failed")
	}

	// 2. Resolve the identity to a local user and establish the session in
	// one transaction. A concurrent first login for the same identity can
	// lose the insert race on the unique constraints; the loser retries the
	// lookup once and finds the winner's rows.
	output, err := srv.resolveFederatedSession(ctx, identity)
	if err == nil {
		return output, nil
	}
	if !isUniqueConflict(err) {
		return nil, err
	}

	srv.log(ctx).Info("Concurrent federated signup detected, retrying lookup")

	return srv.resolveFederatedSession(ctx, identity)
}

// resolveFederatedSession runs the atomic find-or-create plus session
// establishment for a verified external identity.
func (srv *authService) resolveFederatedSession(ctx context.Context, identity *service.ExternalIdentity) (*usecase.AuthOutput, error) {
	var loggedInUser *entity.User
	var accessToken, refreshTokenString string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := srv.findOrCreateFederatedUser(ctx, repoFactory, identity)
		if err != nil {
			return err
		}

		if !user.IsActive {
			return errors.Wrap(domainerrors.ErrAccountInactive, "google login failed")
		}
		loggedInUser = user

		accessToken, refreshTokenString, err = srv.tokenService.GenerateTokens(user.ID, string(user.UserType))
		if err != nil {
			return errors.Wrap(err, "failed to generate tokens")
		}

		return srv.storeRefreshToken(ctx, repoFactory.RefreshTokenRepo(), user.ID, refreshTokenString)
	})
	if err != nil {
		return nil, err
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         loggedInUser,
	}, nil
}

// findOrCreateFederatedUser resolves an external identity to a local user.
// Resolution order: (provider, sub) credential, then unique email, then a
// fresh account. Uniqueness is enforced by the database, not by this read.
func (srv *authService) findOrCreateFederatedUser(ctx context.Context, repoFactory repository.RepositoryFactory, identity *service.ExternalIdentity) (*entity.User, error) {
	authRepo := repoFactory.AuthRepo()
	userRepo := repoFactory.UserRepo()

	authRecord, err := authRepo.FindAuthentication(ctx, identity.Provider, identity.Subject)
	if err == nil {
		return srv.loadFederatedUser(ctx, userRepo, authRecord.UserID, identity)
	}
	if !errors.Is(err, repository.ErrAuthNotFound) {
		return nil, errors.Wrap(err, "failed to find authentication")
	}

	// No credential yet. Link to an existing account with the same email,
	// or create a new one.
	user, err := userRepo.FindByEmail(ctx, identity.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Info("Federated user not found, creating new account")

		user = &entity.User{
			Email:     identity.Email,
			FirstName: identity.GivenName,
			LastName:  identity.FamilyName,
			Picture:   identity.Picture,
			UserType:  entity.UserTypeJobSeeker,
			IsActive:  true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return nil, errors.Wrap(err, "failed to create user for federated login")
		}
	} else {
		// The account may already be linked to this provider under another
		// subject. A second credential for the same provider would leave two
		// external identities claiming one account.
		if _, err := authRepo.FindAuthenticationByUserIDAndProvider(ctx, user.ID, identity.Provider); err == nil {
			srv.log(ctx).Warn("Federated login rejected: provider already linked", slog.Any("userID", user.ID))

			return nil, errors.Wrap(domainerrors.ErrEmailTaken, "account already linked to a different provider identity")
		} else if !errors.Is(err, repository.ErrAuthNotFound) {
			return nil, errors.Wrap(err, "failed to check linked providers")
		}
	}

	newAuth := &entity.Authentication{
		UserID:         user.ID,
		Provider:       identity.Provider,
		ProviderUserID: identity.Subject,
	}
	if err := authRepo.CreateAuthentication(ctx, newAuth); err != nil {
		return nil, errors.Wrap(err, "failed to create federated authentication")
	}

	return user, nil
}

// loadFederatedUser fetches a known federated user and optionally syncs the
// profile fields the provider vouches for.
func (srv *authService) loadFederatedUser(ctx context.Context, userRepo repository.UserRepository, userID uuid.UUID, identity *service.ExternalIdentity) (*entity.User, error) {
	user, err := userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by id for federated login")
	}

	if !srv.syncFederatedProfile {
		return user, nil
	}

	changed := false
	if identity.GivenName != "" && user.FirstName != identity.GivenName {
		user.FirstName = identity.GivenName
		changed = true
	}
	if identity.FamilyName != "" && user.LastName != identity.FamilyName {
		user.LastName = identity.FamilyName
		changed = true
	}
	if identity.Picture != "" && user.Picture != identity.Picture {
		user.Picture = identity.Picture
		changed = true
	}
	if changed {
		if err := userRepo.Update(ctx, user); err != nil {
			return nil, errors.Wrap(err, "failed to sync federated profile")
		}
	}

	return user, nil
}

// RefreshToken rotates a session: the presented token's row is deleted and a
// new pair is issued. Invalid, expired and revoked tokens are rejected alike.
func (srv *authService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Attempting to refresh session")

	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "refresh failed")
	}

	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	var refreshedUser *entity.User
	var newAccessToken, newRefreshToken string

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		refreshRepo := repoFactory.RefreshTokenRepo()

		// The stored row must still exist; a deleted row means the session
		// was revoked.
		if _, err := refreshRepo.FindRefreshTokenByHash(ctx, tokenHash); err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				return errors.Wrap(domainerrors.ErrInvalidToken, "refresh token revoked or expired")
			}

			return errors.Wrap(err, "failed to find refresh token")
		}

		user, err := userRepo.FindByID(ctx, claims.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}
		if !user.IsActive {
			return errors.Wrap(domainerrors.ErrAccountInactive, "refresh failed")
		}
		refreshedUser = user

		// Rotate: revoke the presented token before issuing its successor.
		if err := refreshRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil {
			return errors.Wrap(err, "failed to revoke refresh token")
		}

		newAccessToken, newRefreshToken, err = srv.tokenService.GenerateTokens(user.ID, string(user.UserType))
		if err != nil {
			return errors.Wrap(err, "failed to generate tokens")
		}

		return srv.storeRefreshToken(ctx, refreshRepo, user.ID, newRefreshToken)
	})
	if err != nil {
		srv.log(ctx).Warn("Refresh failed", slog.Any("error", err))

		return nil, err
	}

	// Piggyback expired-row cleanup on successful rotations, outside the
	// transaction. A failed sweep must not break the refresh.
	if err := srv.refreshTokenRepo.DeleteExpiredRefreshTokens(ctx); err != nil {
		srv.log(ctx).Warn("Failed to prune expired refresh tokens", slog.Any("error", err))
	}

	return &usecase.AuthOutput{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
		User:         refreshedUser,
	}, nil
}

// Logout ends the session for the presented refresh token. Deleting an
// already-deleted session reports an invalid token, which makes repeated
// logouts observably idempotent.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	srv.log(ctx).Info("Attempting to log out")

	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	if err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return errors.Wrap(domainerrors.ErrInvalidToken, "logout failed")
		}

		return errors.Wrap(err, "failed to delete refresh token")
	}

	srv.log(ctx).Info("Successfully logged out")

	return nil
}

// LogoutAllDevices invalidates all user sessions by deleting all refresh tokens.
func (srv *authService) LogoutAllDevices(ctx context.Context, userID uuid.UUID) error {
	srv.log(ctx).Info("Logging out from all devices", slog.Any("userID", userID))

	if err := srv.refreshTokenRepo.DeleteRefreshTokensByUserID(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to delete refresh tokens")
	}

	return nil
}

// establishSession issues a token pair for the user and persists the hashed
// refresh token.
func (srv *authService) establishSession(ctx context.Context, user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, refreshTokenString, err := srv.tokenService.GenerateTokens(user.ID, string(user.UserType))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	if err := srv.storeRefreshToken(ctx, srv.refreshTokenRepo, user.ID, refreshTokenString); err != nil {
		return nil, err
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         user,
	}, nil
}

// storeRefreshToken persists the hash of a refresh token; the raw token
// never reaches the database.
func (srv *authService) storeRefreshToken(ctx context.Context, refreshRepo repository.RefreshTokenRepository, userID uuid.UUID, refreshTokenString string) error {
	newRefreshToken := &entity.RefreshToken{
		UserID:    userID,
		TokenHash: srv.tokenService.HashToken(refreshTokenString),
		ExpiresAt: time.Now().Add(srv.tokenService.RefreshTokenDuration()),
	}

	if err := refreshRepo.CreateRefreshToken(ctx, newRefreshToken); err != nil {
		return errors.Wrap(err, "failed to store refresh token")
	}

	return nil
}

// isUniqueConflict reports whether the error chain contains a
// uniqueness-related conflict worth one lookup retry.
func isUniqueConflict(err error) bool {
	return errors.Is(err, domainerrors.ErrEmailTaken)
}
