package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"shree-admin/internal/auth"

	"github.com/labstack/echo/v4"
)

const msgCrossOriginRejected = "cross-origin request rejected"

// SameOrigin rejects state-changing requests that carry the session cookie
// but come from another origin. Requests without Origin or Referer (curl,
// older beacons) pass; the cookie's SameSite=Lax covers browsers.
func SameOrigin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if safeMethod(req.Method) || auth.CredentialFromRequest(req) == "" {
				return next(c)
			}

			source := req.Header.Get("Origin")
			if source == "" {
				source = req.Header.Get("Referer")
			}
			if source == "" {
				return next(c)
			}

			u, err := url.Parse(source)
			if err != nil || !strings.EqualFold(u.Host, req.Host) {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": msgCrossOriginRejected,
				})
			}
			return next(c)
		}
	}
}

func safeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}
