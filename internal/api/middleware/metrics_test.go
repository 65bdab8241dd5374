package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "github.com/donaldgifford/ebay-lister/internal/api/middleware"
	"github.com/donaldgifford/ebay-lister/internal/metrics"
)

func TestMetricsMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		handler    echo.HandlerFunc
		wantStatus int
	}{
		{
			name:   "records 200 response",
			method: http.MethodGet,
			path:   "/api/v1/accounts",
			handler: func(c echo.Context) error {
				return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "records 404 response",
			method: http.MethodGet,
			path:   "/notfound",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "records POST request",
			method: http.MethodPost,
			path:   "/api/v1/listings",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusAccepted)
			},
			wantStatus: http.StatusAccepted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Use(mw.Metrics())
			e.Add(tt.method, tt.path, tt.handler)

			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			statusStr := strconv.Itoa(tt.wantStatus)

			// Verify the counter was incremented.
			counter, err := metrics.HTTPRequestsTotal.GetMetricWithLabelValues(
				tt.method, tt.path, statusStr,
			)
			require.NoError(t, err)

			m := &io_prometheus_client.Metric{}
			require.NoError(t, counter.Write(m))
			assert.Greater(t, m.GetCounter().GetValue(), float64(0))

			// Verify histogram was observed.
			observer, err := metrics.HTTPRequestDuration.GetMetricWithLabelValues(
				tt.method, tt.path, statusStr,
			)
			require.NoError(t, err)

			hm := &io_prometheus_client.Metric{}
			require.NoError(t, observer.(prometheus.Metric).Write(hm))
			assert.Positive(t, hm.GetHistogram().GetSampleCount())
		})
	}
}

func TestMetricsMiddleware_HealthGauge(t *testing.T) {
	e := echo.New()
	e.Use(mw.Metrics())
	status := http.StatusOK
	e.GET("/readyz", func(c echo.Context) error { return c.NoContent(status) })

	serve := func() {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody))
	}

	serve()
	assert.InDelta(t, 1.0, ptestutil.ToFloat64(metrics.ReadyzUp), 0.001)

	status = http.StatusServiceUnavailable
	serve()
	assert.InDelta(t, 0.0, ptestutil.ToFloat64(metrics.ReadyzUp), 0.001)
}

func TestMetricsMiddleware_RouteTemplateLabel(t *testing.T) {
	e := echo.New()
	e.Use(mw.Metrics())
	e.GET("/api/v1/listings/:sku", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	before := ptestutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/listings/:sku", "200"))
	for _, sku := range []string{"A-1", "B-2"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/listings/"+sku, http.NoBody))
	}
	after := ptestutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/listings/:sku", "200"))
	assert.InDelta(t, before+2, after, 0.001)
}
