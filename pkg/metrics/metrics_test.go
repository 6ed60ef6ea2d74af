package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware_CountsByRoutePattern(t *testing.T) {
	m := GetMetrics()
	m.Reset()

	e := echo.New()
	e.Use(MetricsMiddleware())
	e.GET("/dashboard/reviews/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/reviews/"+id, nil))
	}

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.TotalRequests)
	assert.Equal(t, int64(2), snap.TotalErrors)
	assert.Equal(t, int64(2), snap.EndpointCounts["GET /dashboard/reviews/:id"])
	assert.Equal(t, int64(2), snap.StatusCodes[http.StatusNotFound])
}

func TestRecordGateDecisionAndMutation(t *testing.T) {
	m := newMetrics()

	m.RecordGateDecision("redirect_login")
	m.RecordGateDecision("redirect_login")
	m.RecordMutation("reviews", true)
	m.RecordMutation("reviews", false)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.GateDecisions["redirect_login"])
	assert.Equal(t, int64(1), snap.Mutations["reviews:success"])
	assert.Equal(t, int64(1), snap.Mutations["reviews:failure"])
}
