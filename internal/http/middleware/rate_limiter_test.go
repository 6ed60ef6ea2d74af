package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"shree-admin/internal/auth"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, 2) // 2 req/sec, burst of 2

	// First two requests should succeed
	assert.True(t, rl.Allow("test-key"))
	assert.True(t, rl.Allow("test-key"))

	// Third request should be rate limited
	assert.False(t, rl.Allow("test-key"))
}

func TestRateLimiter_Middleware(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(2, 2)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	middleware := rl.Middleware()

	// First request should succeed
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := middleware(handler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))

	// Second request should succeed
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	err = middleware(handler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Third request should be rate limited
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	err = middleware(handler)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestRateLimiter_DifferentKeys(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	// Different keys should have independent rate limits
	assert.True(t, rl.Allow("key1"))
	assert.True(t, rl.Allow("key2"))

	// Both keys should now be rate limited
	assert.False(t, rl.Allow("key1"))
	assert.False(t, rl.Allow("key2"))
}

type knownSessions map[string]bool

func (k knownSessions) Has(id string) bool { return k[id] }

func TestRateLimiter_KeysBySession(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(1, 1)
	rl.TrackSessions(knownSessions{
		auth.SessionID("token-a"): true,
		auth.SessionID("token-b"): true,
	})
	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
	mw := rl.Middleware()

	serve := func(credential, ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if credential != "" {
			auth.SetCredential(c, credential)
		}
		assert.NoError(t, mw(handler)(c))
		return rec.Code
	}

	// Same IP, different sessions: independent buckets.
	assert.Equal(t, http.StatusOK, serve("token-a", "10.0.0.1"))
	assert.Equal(t, http.StatusOK, serve("token-b", "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, serve("token-a", "10.0.0.1"))

	// Anonymous traffic falls back to the IP bucket.
	assert.Equal(t, http.StatusOK, serve("", "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, serve("", "10.0.0.1"))

	// Unknown cookie values share the IP bucket, so rotating them gains nothing.
	assert.Equal(t, http.StatusOK, serve("forged-1", "10.0.0.2"))
	assert.Equal(t, http.StatusTooManyRequests, serve("forged-2", "10.0.0.2"))
	assert.Equal(t, http.StatusTooManyRequests, serve("forged-3", "10.0.0.2"))
}

func TestRateLimiter_UntrackedKeysByIP(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(1, 1)
	mw := rl.Middleware()

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.RemoteAddr = "10.0.0.3:1234"
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		auth.SetCredential(c, fmt.Sprintf("token-%d", i))
		assert.NoError(t, mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c))
		assert.Equal(t, want, rec.Code)
	}
}

func TestRateLimiter_ForgetSession(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	key := SessionKey("abc")

	assert.True(t, rl.Allow(key))
	assert.False(t, rl.Allow(key))

	rl.ForgetSession("abc")
	assert.True(t, rl.Allow(key))
}
