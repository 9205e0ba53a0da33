package middleware

import (
	"log/slog"
	"net/http"

	deliverycontext "addrbook/internal/delivery/context"
	"addrbook/internal/delivery/http/response"
	domainerrors "addrbook/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware converts errors escaping the handlers into the service's
// error response shape.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware.
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		m.writeAppError(appErr, c)

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message, _ := httpErr.Message.(string)
		_ = response.Error(c, httpErr.Code, "", message)

		return
	}

	m.requestLogger(c).Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = response.Error(c, http.StatusInternalServerError, "", "Internal server error")
}

func (m *ErrorMiddleware) writeAppError(appErr domainerrors.AppError, c echo.Context) {
	switch {
	case appErr.HTTPCode() == http.StatusUnauthorized:
		// Deliberately undifferentiated; see the authorization engine.
		_ = response.Unauthorized(c)

	case appErr.HTTPCode() >= http.StatusInternalServerError:
		// Storage and other server-side failures reach the client as a
		// generic message; the raw detail is for operators only.
		m.requestLogger(c).Error("Server-side failure",
			slog.String("code", appErr.ErrorCode()),
			slog.String("details", appErr.Details()),
			slog.String("path", c.Request().URL.Path),
			slog.String("method", c.Request().Method),
		)
		_ = response.Error(c, appErr.HTTPCode(), "", "Internal server error")

	default:
		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message())
	}
}

// requestLogger prefers the request-scoped logger so error logs carry the
// request ID alongside the access log entries.
func (m *ErrorMiddleware) requestLogger(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
}
