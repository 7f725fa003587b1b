package handler

import (
	"log/slog"
	"net/http"

	"jobdesk/internal/delivery/http/middleware"
	"jobdesk/internal/delivery/http/response"
	"jobdesk/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for profile handlers.
type UserHandler struct {
	profileUC usecase.ProfileUsecase
	authUC    usecase.AuthUsecase
	logger    *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(profileUC usecase.ProfileUsecase, authUC usecase.AuthUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		profileUC: profileUC,
		authUC:    authUC,
		logger:    logger,
	}
}

// GetProfile returns the caller's account data.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	user, err := h.profileUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserView(user), "Profile retrieved successfully")
}

// UpdateProfile modifies the caller's own profile fields.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var input usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_FORMAT", "Invalid profile input")
	}

	user, err := h.profileUC.UpdateProfile(c.Request().Context(), userID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserView(user), "Profile updated successfully")
}

// ListAuthMethods returns the login providers linked to the caller's account.
func (h *UserHandler) ListAuthMethods(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	auths, err := h.profileUC.ListAuthMethods(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAuthMethodViews(auths), "Authentication methods retrieved")
}

// LogoutAllDevices ends every session of the caller.
func (h *UserHandler) LogoutAllDevices(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	if err := h.authUC.LogoutAllDevices(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Logged out from all devices"}, "Logout successful")
}
