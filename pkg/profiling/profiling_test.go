package profiling

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoute(t *testing.T) {
	e := echo.New()
	RegisterMemoryRoute(e)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics/memory", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats MemoryStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Positive(t, stats.Goroutines)
	assert.NotEmpty(t, stats.Timestamp)
}

func TestPprofRoutes(t *testing.T) {
	e := echo.New()
	RegisterPprofRoutes(e)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/goroutine?debug=1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "goroutine")
}
