package backend

import (
	"context"
	"net/http"

	"shree-admin/internal/domain/contact"
	"shree-admin/internal/domain/dashboard"
	"shree-admin/internal/domain/notification"
	apperrors "shree-admin/pkg/errors"
)

// Notifications returns the unseen counts. The backend's total field is
// dropped; Counts.Total derives it.
func (a *API) Notifications(ctx context.Context) (notification.Counts, error) {
	var out notification.Counts
	if err := a.doJSON(ctx, http.MethodGet, pathNotifications, nil, &out, "Failed to load notifications"); err != nil {
		return notification.Counts{}, err
	}
	return out, nil
}

func (a *API) MarkNotificationsSeen(ctx context.Context, t notification.Type) error {
	if err := t.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	return a.doJSON(ctx, http.MethodPatch, pathNotifications+"/"+string(t), nil, nil, "Failed to mark notifications as seen")
}

func (a *API) Contact(ctx context.Context) (contact.Details, error) {
	var out contact.Details
	if err := a.doJSON(ctx, http.MethodGet, pathContact, nil, &out, "Failed to fetch contact"); err != nil {
		return contact.Details{}, err
	}
	return out, nil
}

// UpdateContact returns the details as stored by the backend.
func (a *API) UpdateContact(ctx context.Context, in contact.Details) (contact.Details, error) {
	out := in
	if err := a.doJSON(ctx, http.MethodPut, pathContact, in, &out, "Failed to update contact"); err != nil {
		return contact.Details{}, err
	}
	return out, nil
}

func (a *API) DashboardStats(ctx context.Context) (dashboard.Stats, error) {
	var out dashboard.Stats
	if err := a.doJSON(ctx, http.MethodGet, pathDashboard, nil, &out, "Failed to load dashboard"); err != nil {
		return dashboard.Stats{}, err
	}
	return out, nil
}
