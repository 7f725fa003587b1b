package handler

import (
	"log/slog"
	"net/http"

	"jobdesk/internal/delivery/http/middleware"
	"jobdesk/internal/delivery/http/response"
	"jobdesk/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PaymentHandler holds dependencies for payment handlers.
type PaymentHandler struct {
	uc     usecase.PaymentUsecase
	logger *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler, injected by Fx.
func NewPaymentHandler(uc usecase.PaymentUsecase, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		uc:     uc,
		logger: logger,
	}
}

type createIntentRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"omitempty,len=3"`
	JobID    string  `json:"job_id" validate:"omitempty,uuid"`
}

type confirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
}

// CreateIntent starts a premium purchase for the caller.
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var req createIntentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_FORMAT", "Invalid payment input")
	}
	if err := c.Validate(&req); err != nil {
		return bindValidationError(c, err)
	}

	input := &usecase.CreateIntentInput{
		UserID:   userID,
		Amount:   req.Amount,
		Currency: req.Currency,
	}
	if req.JobID != "" {
		jobID, err := uuid.Parse(req.JobID)
		if err != nil {
			return response.BadRequest(c, "INVALID_FORMAT", "Invalid job ID")
		}
		input.JobID = &jobID
	}

	output, err := h.uc.CreateIntent(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"client_secret":     output.ClientSecret,
		"payment_intent_id": output.PaymentIntentID,
		"amount":            output.Amount,
		"currency":          output.Currency,
	}, "Payment intent created")
}

// ConfirmPayment finalizes a payment after the client-side flow.
func (h *PaymentHandler) ConfirmPayment(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var req confirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_FORMAT", "Invalid confirmation input")
	}
	if err := c.Validate(&req); err != nil {
		return bindValidationError(c, err)
	}

	output, err := h.uc.ConfirmPayment(c.Request().Context(), &usecase.ConfirmPaymentInput{
		UserID:          userID,
		PaymentIntentID: req.PaymentIntentID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"payment_intent_id": output.PaymentIntentID,
		"status":            output.Status,
		"is_premium":        output.IsPremium,
	}, "Payment confirmed")
}

// PaymentStatus proxies the provider-side intent status.
func (h *PaymentHandler) PaymentStatus(c echo.Context) error {
	if _, ok := middleware.UserID(c); !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	paymentIntentID := c.Param("payment_intent_id")
	if paymentIntentID == "" {
		return response.BadRequest(c, "MISSING_FIELDS", "Payment intent ID is required")
	}

	output, err := h.uc.PaymentStatus(c.Request().Context(), paymentIntentID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"payment_intent_id": output.PaymentIntentID,
		"status":            output.Status,
		"amount":            output.Amount,
		"currency":          output.Currency,
	}, "Payment status retrieved")
}
