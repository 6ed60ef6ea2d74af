package middleware

import (
	"fmt"
	"net/http"
	"sync"

	"shree-admin/internal/auth"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// SessionRegistry tells which session ids belong to a live workspace.
type SessionRegistry interface {
	Has(sessionID string) bool
}

// RateLimiter implements token bucket rate limiting per admin session, or
// per client IP for anyone without a live session.
type RateLimiter struct {
	limiters sync.Map // key -> *rate.Limiter
	rate     rate.Limit
	burst    int
	sessions SessionRegistry
}

// NewRateLimiter creates a new rate limiter
// requestsPerSecond: number of requests allowed per second
// burst: maximum burst size
func NewRateLimiter(requestsPerSecond int, burst int) *RateLimiter {
	return &RateLimiter{
		rate:  rate.Limit(requestsPerSecond),
		burst: burst,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	limiter, _ := rl.limiters.LoadOrStore(key, rate.NewLimiter(rl.rate, rl.burst))
	return limiter.(*rate.Limiter)
}

// Allow checks if a request should be allowed for the given key
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Forget drops the bucket for key, e.g. when its session ends.
func (rl *RateLimiter) Forget(key string) {
	rl.limiters.Delete(key)
}

// TrackSessions keys requests by session once the session is known to
// sessions. Without a registry every request is keyed by IP, since a cookie
// value alone proves nothing.
func (rl *RateLimiter) TrackSessions(sessions SessionRegistry) {
	rl.sessions = sessions
}

// ForgetSession drops the bucket of an ended session.
func (rl *RateLimiter) ForgetSession(sessionID string) {
	rl.Forget(SessionKey(sessionID))
}

func SessionKey(sessionID string) string {
	return "session:" + sessionID
}

// Middleware returns an Echo middleware function for rate limiting. It must
// run after the session gate so signed-in callers are keyed by session.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := rl.key(c)
			limiter := rl.getLimiter(key)

			if !limiter.Allow() {
				c.Response().Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.burst))
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				c.Response().Header().Set("Retry-After", "1")

				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "rate limit exceeded",
				})
			}

			tokens := int(limiter.Tokens())
			c.Response().Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.burst))
			c.Response().Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", tokens))

			return next(c)
		}
	}
}

func (rl *RateLimiter) key(c echo.Context) string {
	if id := auth.GetSessionID(c); id != "" && rl.sessions != nil && rl.sessions.Has(id) {
		return SessionKey(id)
	}
	return "ip:" + c.RealIP()
}

// StrictRateLimiter guards the credential exchange.
type StrictRateLimiter struct {
	*RateLimiter
}

func NewStrictRateLimiter() *StrictRateLimiter {
	return &StrictRateLimiter{
		RateLimiter: NewRateLimiter(1, 5), // 1 req/sec, burst of 5
	}
}

// GlobalRateLimiter is a lenient rate limiter for general dashboard usage
type GlobalRateLimiter struct {
	*RateLimiter
}

func NewGlobalRateLimiter() *GlobalRateLimiter {
	return &GlobalRateLimiter{
		RateLimiter: NewRateLimiter(50, 100), // 50 req/sec, burst of 100
	}
}
