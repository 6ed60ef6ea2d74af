package gate

import (
	"net/http"
	"strings"

	"shree-admin/internal/auth"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	headerRequestedWith = "X-Requested-With"
	mimeJSON            = "application/json"

	msgLoginRequired   = "authentication required"
	msgAlreadySignedIn = "already signed in"
)

// MiddlewareConfig tunes the echo adapter.
type MiddlewareConfig struct {
	Skipper middleware.Skipper
	// OnDecision observes every decision, e.g. for metrics.
	OnDecision func(Decision)
}

// Middleware enforces g on every request. Browsers get a 302; API-style
// callers get a JSON body so client code can follow the redirect itself.
// An allowed request carrying a credential has it stored on the context.
func Middleware(g *Gate, cfg MiddlewareConfig) echo.MiddlewareFunc {
	if cfg.Skipper == nil {
		cfg.Skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}

			req := c.Request()
			credential := auth.CredentialFromRequest(req)
			decision := decideRequest(g, req, credential != "")
			if cfg.OnDecision != nil {
				cfg.OnDecision(decision)
			}

			if decision.Allowed() {
				if credential != "" {
					auth.SetCredential(c, credential)
				}
				return next(c)
			}

			if !wantsJSON(req) {
				return c.Redirect(http.StatusFound, decision.Location)
			}

			if decision.Action == ActionRedirectLogin {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error":    msgLoginRequired,
					"redirect": decision.Location,
				})
			}
			c.Response().Header().Set(echo.HeaderLocation, decision.Location)
			return c.JSON(http.StatusSeeOther, map[string]string{
				"message":  msgAlreadySignedIn,
				"redirect": decision.Location,
			})
		}
	}
}

// decideRequest classifies the path the router will match. When the
// decoded path differs (encoded slashes or dots), the stricter of the two
// decisions wins.
func decideRequest(g *Gate, req *http.Request, hasCredential bool) Decision {
	routed := echo.GetPath(req)
	decision := g.Decide(routed, hasCredential)
	if decoded := req.URL.Path; decoded != routed && decision.Allowed() {
		if alt := g.Decide(decoded, hasCredential); !alt.Allowed() {
			return alt
		}
	}
	return decision
}

func wantsJSON(r *http.Request) bool {
	if r.Header.Get(headerRequestedWith) != "" {
		return true
	}
	if strings.Contains(r.Header.Get(echo.HeaderAccept), mimeJSON) {
		return true
	}
	return strings.HasPrefix(r.Header.Get(echo.HeaderContentType), mimeJSON)
}
