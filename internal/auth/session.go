package auth

import (
	"net/http"
	"strings"
	"time"
	"unicode"

	apperrors "shree-admin/pkg/errors"

	"github.com/labstack/echo/v4"
)

// CookieOptions controls the attributes of the session cookie.
type CookieOptions struct {
	Secure bool
	MaxAge time.Duration
}

// CredentialFromRequest returns the session credential carried by r, or ""
// when the cookie is absent or malformed.
func CredentialFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return NormalizeCredential(cookie.Value)
}

// NormalizeCredential validates the shape of a raw cookie value. Anything
// that is not a plausible opaque token yields "".
func NormalizeCredential(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" || len(v) > maxCredentialLength {
		return ""
	}
	for _, r := range v {
		if unicode.IsSpace(r) || unicode.IsControl(r) || r == ';' || r == ',' {
			return ""
		}
	}
	return v
}

// NewSessionCookie builds the cookie issued after a successful login.
func NewSessionCookie(token string, opts CookieOptions) *http.Cookie {
	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = CookieTTL
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     CookiePath,
		MaxAge:   int(maxAge.Seconds()),
		Expires:  time.Now().Add(maxAge),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie clears the session cookie on the client.
func ExpiredSessionCookie(opts CookieOptions) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     CookiePath,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// SetCredential stores the credential for downstream handlers.
func SetCredential(c echo.Context, credential string) {
	c.Set(ContextKeyCredential, credential)
	c.Set(ContextKeySessionID, SessionID(credential))
}

func GetCredential(c echo.Context) (string, error) {
	credential, ok := c.Get(ContextKeyCredential).(string)
	if !ok || credential == "" {
		return "", apperrors.Unauthorized(msgCredentialMissing)
	}
	return credential, nil
}

func GetSessionID(c echo.Context) string {
	id, _ := c.Get(ContextKeySessionID).(string)
	return id
}

// BearerHeader formats a credential for the backend's Authorization header.
func BearerHeader(credential string) (string, string) {
	return headerAuthorization, bearerScheme + " " + credential
}
