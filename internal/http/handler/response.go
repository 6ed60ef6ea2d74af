package handler

import (
	"errors"
	"net/http"

	"shree-admin/internal/mutation"
	apperrors "shree-admin/pkg/errors"
	"shree-admin/pkg/logger"

	"github.com/labstack/echo/v4"
)

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyMessage: message})
}

func handleHTTPError(c echo.Context, err error) error {
	if he, ok := err.(*echo.HTTPError); ok {
		msg, _ := he.Message.(string)
		if msg == "" {
			msg = http.StatusText(he.Code)
		}
		return respondError(c, he.Code, msg)
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.Logger().Error(logger.SanitizeLogMessage(err.Error()))
		return respondError(c, status, http.StatusText(status))
	}
	return respondError(c, status, apperrors.Message(err, http.StatusText(status)))
}

// statusFor maps backend and validation errors onto the status the
// dashboard should see.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrConfiguration):
		return http.StatusServiceUnavailable
	case errors.Is(err, apperrors.ErrNetwork):
		return http.StatusBadGateway
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	}
	if status := apperrors.StatusOf(err); status >= http.StatusBadRequest {
		return status
	}
	return http.StatusInternalServerError
}

// ListResponse is the view of one resource list after an operation. A
// failed mutation still answers 200 so the caller always gets the
// reconciled list.
type ListResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Stale   bool   `json:"stale"`
	Items   []T    `json:"items"`
}

func respondList[T mutation.Item](c echo.Context, ctrl *mutation.Controller[T], out mutation.Outcome, keep func(T) bool) error {
	items := ctrl.Items()
	if keep != nil {
		filtered := make([]T, 0, len(items))
		for _, it := range items {
			if keep(it) {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}
	return c.JSON(http.StatusOK, ListResponse[T]{
		Success: out.Success,
		Message: out.Message,
		Stale:   ctrl.Stale(),
		Items:   items,
	})
}
