package handler

import (
	"context"
	"net/http"

	"shree-admin/internal/audit"
	"shree-admin/internal/domain/review"
	"shree-admin/internal/session"

	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	base
}

func NewReviewHandler(workspaces Workspaces, recorder audit.Recorder) *ReviewHandler {
	return &ReviewHandler{base: newBase(workspaces, recorder)}
}

func (h *ReviewHandler) List(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	out := ws.Reviews.Refresh(c.Request().Context())
	return respondList(c, ws.Reviews, out, nil)
}

func (h *ReviewHandler) Create(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	var req review.CreateReviewInput
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}
	if err := req.Validate(); err != nil {
		return handleHTTPError(c, err)
	}

	out := ws.Reviews.Create(c.Request().Context(), func(ctx context.Context) (*review.Review, error) {
		return ws.API.CreateReview(ctx, req)
	})
	h.record(c, audit.ResourceTypeReview, "", audit.ActionCreate, out)
	return respondList(c, ws.Reviews, out, nil)
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	key := session.Int64Key(id)
	out := ws.Reviews.Delete(c.Request().Context(), key, func(ctx context.Context) error {
		return ws.API.DeleteReview(ctx, id)
	})
	h.record(c, audit.ResourceTypeReview, key, audit.ActionDelete, out)
	return respondList(c, ws.Reviews, out, nil)
}

// Hide flips visibility optimistically and then adopts whatever is_hidden
// the backend reports.
func (h *ReviewHandler) Hide(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	key := session.Int64Key(id)
	current, found, lookup := ws.Reviews.Lookup(c.Request().Context(), key)
	if !lookup.Success {
		return respondList(c, ws.Reviews, lookup, nil)
	}
	if !found {
		return respondError(c, http.StatusNotFound, msgItemNotFound)
	}
	target := !current.IsHidden

	out := ws.Reviews.Patch(c.Request().Context(), key,
		func(r review.Review) review.Review {
			r.IsHidden = target
			return r
		},
		func(ctx context.Context) (*review.Review, error) {
			res, err := ws.API.ToggleReviewHidden(ctx, id)
			if err != nil {
				return nil, err
			}
			canonical, ok := ws.Reviews.Find(key)
			if !ok {
				return nil, nil
			}
			canonical.IsHidden = res.IsHidden
			return &canonical, nil
		})
	h.record(c, audit.ResourceTypeReview, key, audit.ActionToggle, out)
	return respondList(c, ws.Reviews, out, nil)
}
