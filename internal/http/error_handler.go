package http

import (
	"errors"
	"fmt"
	"net/http"

	"shree-admin/internal/http/middleware"
	apperrors "shree-admin/pkg/errors"
	"shree-admin/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CustomHTTPErrorHandler handles all errors returned by handlers and middleware.
// It maps sentinel errors to HTTP status codes, hides internal errors and
// logs with the request id.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = fmt.Sprintf("%v", httpErr.Message)
	} else {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			code = http.StatusNotFound
			message = "Resource not found"
		case errors.Is(err, apperrors.ErrUnauthorized):
			code = http.StatusUnauthorized
			message = "Unauthorized"
		case errors.Is(err, apperrors.ErrBadRequest):
			code = http.StatusBadRequest
			message = "Bad request"
		case errors.Is(err, apperrors.ErrValidation):
			code = http.StatusBadRequest
			message = "Validation error"
		case errors.Is(err, apperrors.ErrConfiguration):
			code = http.StatusServiceUnavailable
			message = "Backend not configured"
		case errors.Is(err, apperrors.ErrNetwork):
			code = http.StatusBadGateway
			message = "Backend unreachable"
		case errors.Is(err, apperrors.ErrHTTP):
			code = apperrors.StatusOf(err)
			if code < http.StatusBadRequest {
				code = http.StatusBadGateway
			}
			message = http.StatusText(code)
		}

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Message != "" && code != http.StatusInternalServerError {
			message = appErr.Message
		}
	}

	requestID := middleware.GetRequestID(c)
	if requestID == "" {
		requestID = "unknown"
	}

	if code >= http.StatusInternalServerError {
		c.Logger().Errorf("request_id=%s status=%d error=%s", requestID, code, logger.SanitizeLogMessage(err.Error()))
		if code == http.StatusInternalServerError {
			message = "Internal server error"
		}
	} else {
		c.Logger().Warnf("request_id=%s status=%d error=%s", requestID, code, logger.SanitizeLogMessage(err.Error()))
	}

	if err := c.JSON(code, map[string]interface{}{
		"error":      message,
		"request_id": requestID,
	}); err != nil {
		c.Logger().Error(err)
	}
}
