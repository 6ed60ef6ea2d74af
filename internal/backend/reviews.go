package backend

import (
	"context"
	"net/http"
	"strconv"

	"shree-admin/internal/domain/review"
)

func (a *API) ListReviews(ctx context.Context) ([]review.Review, error) {
	var out []review.Review
	if err := a.doJSON(ctx, http.MethodGet, pathReviews, nil, &out, "Failed to load reviews"); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReview returns the stored review from the {"review": ...} envelope,
// or nil when the envelope is empty.
func (a *API) CreateReview(ctx context.Context, in review.CreateReviewInput) (*review.Review, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out struct {
		Review *review.Review `json:"review"`
	}
	if err := a.doJSON(ctx, http.MethodPost, pathReviews, in, &out, "Failed to create review"); err != nil {
		return nil, err
	}
	return out.Review, nil
}

func (a *API) DeleteReview(ctx context.Context, id int64) error {
	return a.doJSON(ctx, http.MethodDelete, reviewPath(id), nil, nil, "Failed to delete review")
}

// ToggleReviewHidden flips visibility and reports the state the backend
// stored.
func (a *API) ToggleReviewHidden(ctx context.Context, id int64) (review.HideResult, error) {
	var out review.HideResult
	if err := a.doJSON(ctx, http.MethodPatch, reviewPath(id)+"/hide", nil, &out, "Failed to update review visibility"); err != nil {
		return review.HideResult{}, err
	}
	return out, nil
}

func reviewPath(id int64) string {
	return pathReviews + "/" + strconv.FormatInt(id, 10)
}
