package handler

import (
	"net/http"
	"strconv"

	"shree-admin/internal/audit"

	"github.com/labstack/echo/v4"
)

type AuditHandler struct {
	recorder audit.Recorder
}

func NewAuditHandler(recorder audit.Recorder) *AuditHandler {
	if recorder == nil {
		recorder = audit.Nop{}
	}
	return &AuditHandler{recorder: recorder}
}

// Recent lists the latest audit events, newest first.
func (h *AuditHandler) Recent(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam(queryLimit))

	events, err := h.recorder.Recent(c.Request().Context(), limit)
	if err != nil {
		c.Logger().Errorf("audit query failed: %v", err)
		return respondError(c, http.StatusInternalServerError, msgAuditUnavailable)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"events": events,
	})
}
