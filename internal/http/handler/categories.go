package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"shree-admin/internal/audit"
	"shree-admin/internal/domain/category"
	"shree-admin/internal/session"
	"shree-admin/pkg/validator"

	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	base
}

func NewCategoryHandler(workspaces Workspaces, recorder audit.Recorder) *CategoryHandler {
	return &CategoryHandler{base: newBase(workspaces, recorder)}
}

func (h *CategoryHandler) List(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	out := ws.Categories.Refresh(c.Request().Context())
	return respondList(c, ws.Categories, out, categoryFilter(c.QueryParam(queryText)))
}

func (h *CategoryHandler) Create(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	var req category.CreateCategoryInput
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validator.Title("title", req.Title); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	out := ws.Categories.Create(c.Request().Context(), func(ctx context.Context) (*category.Category, error) {
		return ws.API.CreateCategory(ctx, req)
	})
	h.record(c, audit.ResourceTypeCategory, "", audit.ActionCreate, out)
	return respondList(c, ws.Categories, out, nil)
}

func (h *CategoryHandler) Update(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	var req category.UpdateCategoryInput
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validator.Title("title", req.Title); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	key := session.Int64Key(id)
	out := ws.Categories.Update(c.Request().Context(), key, func(ctx context.Context) (*category.Category, error) {
		return nil, ws.API.UpdateCategory(ctx, id, req)
	})
	h.record(c, audit.ResourceTypeCategory, key, audit.ActionUpdate, out)
	return respondList(c, ws.Categories, out, nil)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	key := session.Int64Key(id)
	out := ws.Categories.Delete(c.Request().Context(), key, func(ctx context.Context) error {
		return ws.API.DeleteCategory(ctx, id)
	})
	h.record(c, audit.ResourceTypeCategory, key, audit.ActionDelete, out)
	return respondList(c, ws.Categories, out, nil)
}

// Reorder applies a drag-and-drop order at once and persists it.
func (h *CategoryHandler) Reorder(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	var req category.ReorderInput
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}
	if len(req.OrderedIDs) == 0 {
		return respondError(c, http.StatusBadRequest, msgInvalidRequestBody)
	}

	keys := make([]string, len(req.OrderedIDs))
	for i, id := range req.OrderedIDs {
		keys[i] = strconv.FormatInt(id, 10)
	}

	out := ws.Categories.Reorder(c.Request().Context(), keys, func(ctx context.Context) error {
		return ws.API.ReorderCategories(ctx, req.OrderedIDs)
	})
	h.record(c, audit.ResourceTypeCategory, "", audit.ActionReorder, out)
	return respondList(c, ws.Categories, out, nil)
}

func categoryFilter(q string) func(category.Category) bool {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	return func(cat category.Category) bool { return cat.Matches(q) }
}
