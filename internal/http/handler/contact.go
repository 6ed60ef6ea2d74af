package handler

import (
	"net/http"

	"shree-admin/internal/audit"
	"shree-admin/internal/domain/contact"
	apperrors "shree-admin/pkg/errors"

	"github.com/labstack/echo/v4"
)

type ContactHandler struct {
	base
}

func NewContactHandler(workspaces Workspaces, recorder audit.Recorder) *ContactHandler {
	return &ContactHandler{base: newBase(workspaces, recorder)}
}

func (h *ContactHandler) Get(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	details, err := ws.API.Contact(c.Request().Context())
	if err != nil {
		return handleHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

// Update is not optimistic: the form keeps its values until the backend
// answers.
func (h *ContactHandler) Update(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	var req contact.Details
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}
	if err := req.Validate(); err != nil {
		return handleHTTPError(c, err)
	}

	saved, err := ws.API.UpdateContact(c.Request().Context(), req)
	if err != nil {
		h.audit.Record(c, audit.ResourceTypeContact, "", audit.ActionUpdate, audit.StatusFailure, apperrors.Message(err, ""))
		return handleHTTPError(c, err)
	}
	h.audit.Record(c, audit.ResourceTypeContact, "", audit.ActionUpdate, audit.StatusSuccess, "")
	return c.JSON(http.StatusOK, saved)
}
