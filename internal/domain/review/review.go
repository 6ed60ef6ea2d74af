package review

import (
	"strconv"
	"strings"
	"time"

	apperrors "shree-admin/pkg/errors"
)

const (
	minRating = 1
	maxRating = 5
)

type Review struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Review    string    `json:"review"`
	Rating    int       `json:"rating"`
	IsHidden  bool      `json:"is_hidden"`
	CreatedAt time.Time `json:"created_at"`
}

func (r Review) ItemKey() string {
	return strconv.FormatInt(r.ID, 10)
}

// CreateReviewInput omits is_hidden; the backend always creates visible
// reviews.
type CreateReviewInput struct {
	Name   string `json:"name"`
	Review string `json:"review"`
	Rating int    `json:"rating"`
}

func (in CreateReviewInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperrors.Validation("Name is required")
	}
	if strings.TrimSpace(in.Review) == "" {
		return apperrors.Validation("Review text is required")
	}
	if in.Rating < minRating || in.Rating > maxRating {
		return apperrors.Validation("Rating must be between 1 and 5")
	}
	return nil
}

// HideResult is the visibility the backend actually stored.
type HideResult struct {
	IsHidden bool `json:"is_hidden"`
}
