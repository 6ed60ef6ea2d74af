package handler

import (
	"net/http"

	"shree-admin/internal/domain/dashboard"

	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	base
}

func NewDashboardHandler(workspaces Workspaces) *DashboardHandler {
	return &DashboardHandler{base: newBase(workspaces, nil)}
}

// Stats answers with zero counts and offline set when the backend cannot
// be reached, so the landing page still renders.
func (h *DashboardHandler) Stats(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	stats, err := ws.API.DashboardStats(c.Request().Context())
	if err != nil {
		c.Logger().Warnf("dashboard stats unavailable: %v", err)
		return c.JSON(http.StatusOK, dashboard.Stats{Offline: true})
	}
	return c.JSON(http.StatusOK, stats)
}
