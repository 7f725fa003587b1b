// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"jobdesk/internal/delivery/http/response"
	"jobdesk/internal/delivery/http/validator"
	"jobdesk/internal/domain/entity"
	"jobdesk/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

type registerRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	UserType        string `json:"user_type" validate:"omitempty,oneof=job_seeker employer"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type googleLoginRequest struct {
	Credential  string `json:"credential"`
	AccessToken string `json:"access_token"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// authPayload is the session envelope every successful auth operation returns.
type authPayload struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         *userView `json:"user"`
	Name         string    `json:"name,omitempty"`
	Picture      string    `json:"picture,omitempty"`
}

func newAuthPayload(output *usecase.AuthOutput) *authPayload {
	return &authPayload{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         newUserView(output.User),
	}
}

// Register handles local account creation with auto-login.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_FORMAT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return bindValidationError(c, err)
	}
	if req.Password != req.PasswordConfirm {
		return response.BadRequest(c, "VALIDATION", "Passwords do not match")
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserType:  entity.UserType(req.UserType),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newAuthPayload(output), "User registered successfully")
}

// Login handles the local login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_FORMAT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return bindValidationError(c, err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAuthPayload(output), "Login successful")
}

// GoogleLogin handles federated login with a Google credential.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req googleLoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_FORMAT", "Invalid Google login input")
	}

	output, err := h.uc.GoogleLogin(c.Request().Context(), &usecase.GoogleLoginInput{
		Credential:  req.Credential,
		AccessToken: req.AccessToken,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	payload := newAuthPayload(output)
	payload.Name = output.User.DisplayName()
	payload.Picture = output.User.Picture

	return response.Success(c, http.StatusOK, payload, "Google login successful")
}

// RefreshToken rotates the presented refresh token.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_FORMAT", "Invalid refresh input")
	}
	if err := c.Validate(&req); err != nil {
		return bindValidationError(c, err)
	}

	output, err := h.uc.RefreshToken(c.Request().Context(), &usecase.RefreshTokenInput{
		RefreshToken: req.Refresh,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAuthPayload(output), "Token refreshed successfully")
}

// Logout ends the session of the presented refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_FORMAT", "Invalid logout input")
	}
	if err := c.Validate(&req); err != nil {
		return bindValidationError(c, err)
	}

	if err := h.uc.Logout(c.Request().Context(), &usecase.LogoutInput{RefreshToken: req.Refresh}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// bindValidationError maps struct validation failures onto the stable error
// codes: absent fields report MISSING_FIELDS, malformed values INVALID_FORMAT.
func bindValidationError(c echo.Context, err error) error {
	if validator.IsMissingField(err) {
		return response.BadRequest(c, "MISSING_FIELDS", "Required fields are missing")
	}

	return response.BadRequest(c, "INVALID_FORMAT", "One or more fields are malformed")
}
