package validator

import (
	"fmt"
	"mime"
	"net/url"
	"regexp"
	"strings"
)

const (
	minEmailLength    = 3
	maxEmailLength    = 255
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt ignores anything longer
	maxTitleLength    = 200
	maxSlugLength     = 200
	maxFileNameLen    = 255
	maxContentTypeLen = 255
	maxURLLength      = 2048
	minPhoneDigits    = 6
	maxUploadBytes    = int64(10 * 1024 * 1024)
	asciiControlStart = 32
	asciiDelete       = 127

	errEmailEmptyFmt           = "email cannot be empty"
	errEmailLengthFmt          = "email must be between %d and %d characters"
	errEmailInvalidFmt         = "invalid email format"
	errPasswordMinLengthFmt    = "password must be at least %d characters"
	errPasswordMaxLengthFmt    = "password must not exceed %d characters"
	errTitleEmptyFmt           = "%s cannot be empty"
	errTitleMaxLengthFmt       = "%s must not exceed %d characters"
	errTitleControlCharsFmt    = "%s cannot contain control characters"
	errSlugInvalidFmt          = "slug may only contain lowercase letters, digits and single hyphens"
	errSlugMaxLengthFmt        = "slug must not exceed %d characters"
	errPhoneInvalidFmt         = "invalid phone number: %s"
	errURLInvalidFmt           = "invalid URL: %s"
	errFileNameEmptyFmt        = "file name cannot be empty"
	errFileNameMaxLengthFmt    = "file name must not exceed %d characters"
	errFileNamePathSepFmt      = "file name cannot contain path separators"
	errFileNameControlCharsFmt = "file name cannot contain control characters"
	errContentTypeMaxLengthFmt = "content type must not exceed %d characters"
	errContentTypeInvalidFmt   = "invalid content type"
	errFileSizeMaxFmt          = "file exceeds the %dMB upload limit"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	// Digits with optional leading +, spaces, dashes and parentheses.
	phoneRegex = regexp.MustCompile(`^\+?[0-9(][0-9 ()-]{5,19}$`)
)

func Email(email string) error {
	if email == "" {
		return fmt.Errorf(errEmailEmptyFmt)
	}

	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return fmt.Errorf(errEmailLengthFmt, minEmailLength, maxEmailLength)
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf(errEmailInvalidFmt)
	}

	return nil
}

func Password(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf(errPasswordMinLengthFmt, minPasswordLength)
	}

	if len(password) > maxPasswordLength {
		return fmt.Errorf(errPasswordMaxLengthFmt, maxPasswordLength)
	}

	return nil
}

// Title checks a short display text such as a category or service name.
// field names the value in the error message.
func Title(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf(errTitleEmptyFmt, field)
	}

	if len(value) > maxTitleLength {
		return fmt.Errorf(errTitleMaxLengthFmt, field, maxTitleLength)
	}

	for _, char := range value {
		if char < asciiControlStart || char == asciiDelete {
			return fmt.Errorf(errTitleControlCharsFmt, field)
		}
	}

	return nil
}

func Slug(slug string) error {
	if len(slug) > maxSlugLength {
		return fmt.Errorf(errSlugMaxLengthFmt, maxSlugLength)
	}

	if !slugRegex.MatchString(slug) {
		return fmt.Errorf(errSlugInvalidFmt)
	}

	return nil
}

// Phone accepts an empty value; contact numbers are optional.
func Phone(phone string) error {
	if phone == "" {
		return nil
	}

	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf(errPhoneInvalidFmt, phone)
	}

	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < minPhoneDigits {
		return fmt.Errorf(errPhoneInvalidFmt, phone)
	}

	return nil
}

// URL accepts an empty value or an absolute http(s) URL.
func URL(raw string) error {
	if raw == "" {
		return nil
	}

	if len(raw) > maxURLLength {
		return fmt.Errorf(errURLInvalidFmt, raw)
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf(errURLInvalidFmt, raw)
	}

	return nil
}

func FileName(name string) error {
	if name == "" {
		return fmt.Errorf(errFileNameEmptyFmt)
	}

	if len(name) > maxFileNameLen {
		return fmt.Errorf(errFileNameMaxLengthFmt, maxFileNameLen)
	}

	if strings.Contains(name, "..") || strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf(errFileNamePathSepFmt)
	}

	for _, char := range name {
		if char < asciiControlStart || char == asciiDelete {
			return fmt.Errorf(errFileNameControlCharsFmt)
		}
	}

	return nil
}

// FileSize enforces the per-image upload limit.
func FileSize(size int64) error {
	if size > maxUploadBytes {
		return fmt.Errorf(errFileSizeMaxFmt, maxUploadBytes>>20)
	}

	return nil
}

func ContentType(contentType string) error {
	if contentType == "" {
		return nil
	}

	if len(contentType) > maxContentTypeLen {
		return fmt.Errorf(errContentTypeMaxLengthFmt, maxContentTypeLen)
	}

	if _, _, err := mime.ParseMediaType(contentType); err != nil {
		return fmt.Errorf(errContentTypeInvalidFmt)
	}

	return nil
}
