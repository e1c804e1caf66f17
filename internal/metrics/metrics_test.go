package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepFinished(t *testing.T) {
	m := New()

	m.SweepFinished(3, time.Millisecond, nil)
	m.SweepFinished(0, time.Millisecond, nil)
	m.SweepFinished(5, time.Millisecond, errors.New("db locked"))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.passesSwept))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.sweepRuns.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sweepRuns.WithLabelValues("error")))
}

func TestCounters(t *testing.T) {
	m := New()

	m.PassIssued()
	m.PassIssued()
	m.PassesRevoked(2)
	m.PassesRevoked(0)
	m.HTTPRequest("GET /v1/passes", http.StatusOK, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.passesIssued))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.passesRevoked))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET /v1/passes", "200")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.PassIssued()
		m.PassesRevoked(1)
		m.SweepFinished(1, time.Second, nil)
		m.HTTPRequest("x", 200, time.Second)
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerExposesFrontdeskSeries(t *testing.T) {
	m := New()
	m.PassIssued()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "frontdesk_passes_issued_total 1"))
}
