package observability

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

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAPI("GET", "/x", 200, time.Millisecond)
		m.ApiInflightInc()
		m.ApiInflightDec()
		m.ObserveDuplicateCheck(3, nil)
		m.ObserveMerge("merged", time.Millisecond)
		m.IncTagCache(true)
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsRecordDomainEvents(t *testing.T) {
	m := NewMetrics()

	m.ObserveDuplicateCheck(2, nil)
	m.ObserveDuplicateCheck(0, errors.New("boom"))
	m.ObserveMerge("merged", 10*time.Millisecond)
	m.ObserveMerge("invalid", 0)
	m.IncTagCache(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.duplicateChecks.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.duplicateChecks.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.merges.WithLabelValues("merged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.merges.WithLabelValues("invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tagCache.WithLabelValues("miss")))
}

func TestMetricsHandlerExposesAPICounters(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("POST", "/api/v1/places", 201, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `myspot_api_requests_total{method="POST",route="/api/v1/places",status="201"} 1`), body)
}
