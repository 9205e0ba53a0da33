// Package middleware contains the HTTP middleware chain.
package middleware

import (
	"net/http"

	deliverycontext "addrbook/internal/delivery/context"
	"addrbook/internal/delivery/http/response"
	domainerrors "addrbook/internal/domain/errors"
	"addrbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware gates every business route behind Basic authentication.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authUC usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC}
}

// Authenticate verifies the Authorization header through the authorization
// engine. Denials produce the uniform 401 body no matter which step
// failed; only a credential-store outage surfaces differently, as a
// generic server error.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, err := m.authUC.Authorize(
			c.Request().Context(),
			c.Request().Header.Get(echo.HeaderAuthorization),
			c.Request().URL.Path,
		)
		if err != nil {
			var appErr domainerrors.AppError
			if errors.As(err, &appErr) && appErr.HTTPCode() != http.StatusUnauthorized {
				return err
			}

			return response.Unauthorized(c)
		}

		c.Set(string(deliverycontext.KeyClientID), principal.ClientID)

		return next(c)
	}
}
