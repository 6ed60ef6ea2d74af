package contact

import (
	apperrors "shree-admin/pkg/errors"
	"shree-admin/pkg/validator"
)

type Details struct {
	Address       string `json:"address"`
	Phone1        string `json:"phone1"`
	Phone2        string `json:"phone2"`
	Email         string `json:"email"`
	BusinessHours string `json:"business_hours"`
	FacebookURL   string `json:"facebook_url"`
	InstagramURL  string `json:"instagram_url"`
	GoogleURL     string `json:"google_url"`
	MapEmbedURL   string `json:"map_embed_url"`
}

// Validate checks the fields the public site renders as links.
func (d Details) Validate() error {
	if d.Email != "" {
		if err := validator.Email(d.Email); err != nil {
			return apperrors.Validation(err.Error())
		}
	}
	for _, phone := range []string{d.Phone1, d.Phone2} {
		if err := validator.Phone(phone); err != nil {
			return apperrors.Validation(err.Error())
		}
	}
	for _, u := range []string{d.FacebookURL, d.InstagramURL, d.GoogleURL, d.MapEmbedURL} {
		if err := validator.URL(u); err != nil {
			return apperrors.Validation(err.Error())
		}
	}
	return nil
}
