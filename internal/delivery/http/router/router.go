// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"addrbook/internal/delivery/http/middleware"
	"addrbook/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds everything the router needs, injected by Fx.
type RouterParams struct {
	fx.In

	AddressHandler      *handler.AddressHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	addressHandler      *handler.AddressHandler
	authMiddleware      *middleware.AuthMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		addressHandler:      params.AddressHandler,
		authMiddleware:      params.AuthMiddleware,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint, outside the versioned and authenticated surface
	e.GET("/health", handler.HealthCheck)

	v1 := e.Group("/v1")
	v1.Use(r.requestIDMiddleware.Process)
	v1.Use(r.authMiddleware.Authenticate)
	{
		addresses := v1.Group("/users/:userId/addresses")
		addresses.POST("", r.addressHandler.CreateAddress)
		addresses.GET("", r.addressHandler.ListAddresses)
		addresses.PATCH("/:addressId", r.addressHandler.UpdateAddress)
		addresses.DELETE("/:addressId", r.addressHandler.DeleteAddress)
	}
}
