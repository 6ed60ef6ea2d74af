package backend

import (
	"context"
	"net/http"
	"strconv"

	"shree-admin/internal/domain/support"
	apperrors "shree-admin/pkg/errors"
)

func (a *API) ListSupport(ctx context.Context) ([]support.Ticket, error) {
	var out []support.Ticket
	if err := a.doJSON(ctx, http.MethodGet, pathSupport, nil, &out, "Failed to load support requests"); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) UpdateSupportStatus(ctx context.Context, id int64, status support.Status) error {
	if err := status.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	in := support.UpdateStatusInput{Status: status}
	return a.doJSON(ctx, http.MethodPatch, supportPath(id)+"/status", in, nil, "Failed to update support status")
}

func (a *API) DeleteSupport(ctx context.Context, id int64) error {
	return a.doJSON(ctx, http.MethodDelete, supportPath(id), nil, nil, "Failed to delete support request")
}

func supportPath(id int64) string {
	return pathSupport + "/" + strconv.FormatInt(id, 10)
}
