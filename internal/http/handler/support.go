package handler

import (
	"context"
	"net/http"
	"strings"

	"shree-admin/internal/audit"
	"shree-admin/internal/domain/support"
	"shree-admin/internal/session"

	"github.com/labstack/echo/v4"
)

type SupportHandler struct {
	base
}

func NewSupportHandler(workspaces Workspaces, recorder audit.Recorder) *SupportHandler {
	return &SupportHandler{base: newBase(workspaces, recorder)}
}

func (h *SupportHandler) List(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	out := ws.Support.Refresh(c.Request().Context())

	var keep func(support.Ticket) bool
	if q := strings.TrimSpace(c.QueryParam(queryText)); q != "" {
		keep = func(t support.Ticket) bool { return t.Matches(q) }
	}
	return respondList(c, ws.Support, out, keep)
}

func (h *SupportHandler) UpdateStatus(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	var req support.UpdateStatusInput
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}
	if err := req.Status.Validate(); err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidStatus)
	}

	key := session.Int64Key(id)
	out := ws.Support.Patch(c.Request().Context(), key,
		func(t support.Ticket) support.Ticket {
			t.Status = req.Status
			return t
		},
		func(ctx context.Context) (*support.Ticket, error) {
			return nil, ws.API.UpdateSupportStatus(ctx, id, req.Status)
		})
	h.record(c, audit.ResourceTypeSupport, key, audit.ActionStatus, out)
	return respondList(c, ws.Support, out, nil)
}

func (h *SupportHandler) Delete(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	key := session.Int64Key(id)
	out := ws.Support.Delete(c.Request().Context(), key, func(ctx context.Context) error {
		return ws.API.DeleteSupport(ctx, id)
	})
	h.record(c, audit.ResourceTypeSupport, key, audit.ActionDelete, out)
	return respondList(c, ws.Support, out, nil)
}
