package service

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

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()

	m.RecordLogin("staff", true)
	m.RecordLogin("staff", false)
	m.RecordLogin("staff", false)
	m.RecordShareOutcome("native", "cancelled")
	m.ObserveStoreOperation("set", time.Millisecond, errors.New("disk full"))
	m.ObserveHTTPRequest("GET", "/api/v1/students", http.StatusOK, 5*time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.logins.WithLabelValues("staff", "success")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.logins.WithLabelValues("staff", "failure")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.shareOutcomes.WithLabelValues("native", "cancelled")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.storeErrors.WithLabelValues("set")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "/api/v1/students", "200")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "logins_total"))
}

func TestNilMetricsServiceIsSafe(t *testing.T) {
	var m *MetricsService
	m.RecordLogin("student", true)
	m.ObserveStoreOperation("get", time.Millisecond, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
