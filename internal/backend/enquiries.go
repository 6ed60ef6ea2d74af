package backend

import (
	"context"
	"net/http"
	"strconv"

	"shree-admin/internal/domain/enquiry"
	apperrors "shree-admin/pkg/errors"
)

func (a *API) ListEnquiries(ctx context.Context) ([]enquiry.Enquiry, error) {
	var out []enquiry.Enquiry
	if err := a.doJSON(ctx, http.MethodGet, pathEnquiries, nil, &out, "Failed to load enquiries"); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) UpdateEnquiryStatus(ctx context.Context, id int64, status enquiry.Status) error {
	if err := status.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	in := enquiry.UpdateStatusInput{Status: status}
	return a.doJSON(ctx, http.MethodPatch, enquiryPath(id)+"/status", in, nil, "Failed to update enquiry status")
}

func (a *API) DeleteEnquiry(ctx context.Context, id int64) error {
	return a.doJSON(ctx, http.MethodDelete, enquiryPath(id), nil, nil, "Failed to delete enquiry")
}

func enquiryPath(id int64) string {
	return pathEnquiries + "/" + strconv.FormatInt(id, 10)
}
