// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"jobdesk/internal/delivery/http/middleware"
	"jobdesk/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	JobHandler     *handler.JobHandler
	PaymentHandler *handler.PaymentHandler
	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	jobHandler     *handler.JobHandler
	paymentHandler *handler.PaymentHandler
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		jobHandler:     params.JobHandler,
		paymentHandler: params.PaymentHandler,
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/google", r.authHandler.GoogleLogin)
		authGroup.POST("/refresh", r.authHandler.RefreshToken)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	jobGroup := e.Group("/jobs")
	{
		// Public reads resolve the viewer when a token is present.
		jobGroup.GET("", r.jobHandler.ListJobs, r.authMiddleware.OptionalAuthenticate)
		jobGroup.GET("/:id", r.jobHandler.GetJob, r.authMiddleware.OptionalAuthenticate)

		jobGroup.POST("", r.jobHandler.CreateJob, r.authMiddleware.Authenticate)
		jobGroup.PUT("/:id", r.jobHandler.UpdateJob, r.authMiddleware.Authenticate)
		jobGroup.DELETE("/:id", r.jobHandler.DeactivateJob, r.authMiddleware.Authenticate)

		jobGroup.POST("/save", r.jobHandler.SaveJob, r.authMiddleware.Authenticate)
		jobGroup.GET("/saved", r.jobHandler.ListSavedJobs, r.authMiddleware.Authenticate)
		jobGroup.DELETE("/:id/unsave", r.jobHandler.UnsaveJob, r.authMiddleware.Authenticate)
		jobGroup.GET("/:id/check-saved", r.jobHandler.CheckSaved, r.authMiddleware.Authenticate)

		jobGroup.POST("/:id/apply", r.jobHandler.Apply, r.authMiddleware.Authenticate)
		jobGroup.GET("/applications", r.jobHandler.ListMyApplications, r.authMiddleware.Authenticate)
	}

	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.userHandler.GetProfile)
		userGroup.PUT("/profile", r.userHandler.UpdateProfile)
		userGroup.GET("/auth-methods", r.userHandler.ListAuthMethods)
		userGroup.POST("/logout-all", r.userHandler.LogoutAllDevices)
	}

	paymentGroup := e.Group("/payments")
	paymentGroup.Use(r.authMiddleware.Authenticate)
	{
		paymentGroup.POST("/intent", r.paymentHandler.CreateIntent)
		paymentGroup.POST("/confirm", r.paymentHandler.ConfirmPayment)
		paymentGroup.GET("/:payment_intent_id/status", r.paymentHandler.PaymentStatus)
	}
}
