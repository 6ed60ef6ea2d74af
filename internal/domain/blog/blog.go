package blog

import (
	"strings"
	"time"

	apperrors "shree-admin/pkg/errors"
	"shree-admin/pkg/validator"
)

type Blog struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       *string   `json:"image"`
	CoverImage  *string   `json:"cover_image"`
	Slug        string    `json:"slug"`
	Content     string    `json:"content"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

func (b Blog) ItemKey() string {
	return b.ID
}

func (b Blog) Matches(q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(b.Title), q) || strings.Contains(strings.ToLower(b.Slug), q)
}

// Payload is the body of create and update calls. Image fields hold the
// URL returned by the asset uploader.
type Payload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	CoverImage  string `json:"cover_image,omitempty"`
	Slug        string `json:"slug"`
	Content     string `json:"content"`
}

func (p Payload) Validate() error {
	if err := validator.Title("title", p.Title); err != nil {
		return apperrors.Validation(err.Error())
	}
	if err := validator.Slug(p.Slug); err != nil {
		return apperrors.Validation(err.Error())
	}
	return nil
}
