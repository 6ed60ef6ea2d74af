package service

import (
	"io"
	"strconv"
	"strings"
	"time"

	apperrors "shree-admin/pkg/errors"
)

// GallerySize is the exact number of gallery images a service carries.
const GallerySize = 5

const msgGallerySize = "Exactly 5 images are required"

type Service struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	LongDescription string    `json:"long_description"`
	CategoryID      int64     `json:"category_id"`
	Category        string    `json:"category,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
	Gallery         []string  `json:"gallery,omitempty"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

func (s Service) ItemKey() string {
	return strconv.FormatInt(s.ID, 10)
}

// Matches filters by free text over title and category name, and by exact
// category name when category is not empty.
func (s Service) Matches(q, category string) bool {
	if category != "" && category != s.Category {
		return false
	}
	haystack := strings.ToLower(s.Title + " " + s.Category)
	return strings.Contains(haystack, strings.ToLower(q))
}

// Upload is one file forwarded to the backend in a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type CreateServiceInput struct {
	Title           string
	LongDescription string
	CategoryID      int64
	Image           *Upload
	Gallery         []Upload
}

// UpdateServiceInput keeps the current gallery when Gallery is empty.
type UpdateServiceInput struct {
	Title           string
	LongDescription string
	CategoryID      int64
	Image           *Upload
	Gallery         []Upload
}

// ValidateGalleryForCreate requires exactly GallerySize images.
func ValidateGalleryForCreate(n int) error {
	if n != GallerySize {
		return apperrors.Validation(msgGallerySize)
	}
	return nil
}

// ValidateGalleryForUpdate allows keeping the gallery (0) or replacing it
// entirely (GallerySize). Partial replacement is rejected.
func ValidateGalleryForUpdate(n int) error {
	if n != 0 && n != GallerySize {
		return apperrors.Validation(msgGallerySize)
	}
	return nil
}

func (in CreateServiceInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return apperrors.Validation("Title is required")
	}
	if in.CategoryID <= 0 {
		return apperrors.Validation("Category is required")
	}
	return ValidateGalleryForCreate(len(in.Gallery))
}

func (in UpdateServiceInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return apperrors.Validation("Title is required")
	}
	if in.CategoryID <= 0 {
		return apperrors.Validation("Category is required")
	}
	return ValidateGalleryForUpdate(len(in.Gallery))
}
