package handler

import (
	"context"
	"net/http"
	"strings"

	"shree-admin/internal/audit"
	"shree-admin/internal/domain/enquiry"
	"shree-admin/internal/session"

	"github.com/labstack/echo/v4"
)

type EnquiryHandler struct {
	base
}

func NewEnquiryHandler(workspaces Workspaces, recorder audit.Recorder) *EnquiryHandler {
	return &EnquiryHandler{base: newBase(workspaces, recorder)}
}

func (h *EnquiryHandler) List(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	out := ws.Enquiries.Refresh(c.Request().Context())

	var keep func(enquiry.Enquiry) bool
	if q := strings.TrimSpace(c.QueryParam(queryText)); q != "" {
		keep = func(e enquiry.Enquiry) bool { return e.Matches(q) }
	}
	return respondList(c, ws.Enquiries, out, keep)
}

func (h *EnquiryHandler) UpdateStatus(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	var req enquiry.UpdateStatusInput
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}
	if err := req.Status.Validate(); err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidStatus)
	}

	key := session.Int64Key(id)
	out := ws.Enquiries.Patch(c.Request().Context(), key,
		func(e enquiry.Enquiry) enquiry.Enquiry {
			e.Status = req.Status
			return e
		},
		func(ctx context.Context) (*enquiry.Enquiry, error) {
			return nil, ws.API.UpdateEnquiryStatus(ctx, id, req.Status)
		})
	h.record(c, audit.ResourceTypeEnquiry, key, audit.ActionStatus, out)
	return respondList(c, ws.Enquiries, out, nil)
}

func (h *EnquiryHandler) Delete(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	key := session.Int64Key(id)
	out := ws.Enquiries.Delete(c.Request().Context(), key, func(ctx context.Context) error {
		return ws.API.DeleteEnquiry(ctx, id)
	})
	h.record(c, audit.ResourceTypeEnquiry, key, audit.ActionDelete, out)
	return respondList(c, ws.Enquiries, out, nil)
}
