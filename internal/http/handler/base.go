package handler

import (
	"context"
	"net/http"

	"shree-admin/internal/audit"
	"shree-admin/internal/auth"
	"shree-admin/internal/mutation"
	"shree-admin/internal/session"
	apperrors "shree-admin/pkg/errors"
	"shree-admin/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// Workspaces resolves the session workspace for a credential.
type Workspaces interface {
	Open(credential string) *session.Workspace
	Resolve(ctx context.Context, credential string) (*session.Workspace, error)
	Remove(credential string)
}

// base carries what every dashboard handler needs.
type base struct {
	workspaces Workspaces
	audit      audit.Recorder
}

func newBase(workspaces Workspaces, recorder audit.Recorder) base {
	if recorder == nil {
		recorder = audit.Nop{}
	}
	return base{workspaces: workspaces, audit: recorder}
}

// workspace returns the caller's workspace. The gate guarantees a
// credential on dashboard routes; a missing one, or one the backend
// rejects, is a 401.
func (b base) workspace(c echo.Context) (*session.Workspace, error) {
	credential, err := auth.GetCredential(c)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	ws, err := b.workspaces.Resolve(c.Request().Context(), credential)
	if err != nil {
		// Drop the cookie too, or the gate keeps bouncing the login page
		// back to the dashboard.
		c.SetCookie(auth.ExpiredSessionCookie(auth.CookieOptions{Secure: c.Scheme() == "https"}))
		return nil, echo.NewHTTPError(http.StatusUnauthorized, apperrors.Message(err, http.StatusText(http.StatusUnauthorized))).SetInternal(err)
	}
	return ws, nil
}

// record counts the outcome and writes it to the audit trail.
func (b base) record(c echo.Context, resource audit.ResourceType, id string, action audit.Action, out mutation.Outcome) {
	metrics.GetMetrics().RecordMutation(string(resource), out.Success)

	status := audit.StatusSuccess
	if !out.Success {
		status = audit.StatusFailure
	}
	b.audit.Record(c, resource, id, action, status, out.Message)
}
