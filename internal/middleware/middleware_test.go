package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"helpdesk/internal/logging"
	"helpdesk/internal/metrics"
)

func newEngine(logger *zap.Logger, m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(logger), AccessLog(logger), Metrics(m))
	r.GET("/ping", func(c *gin.Context) {
		logging.FromContext(c.Request.Context(), nil).Info("handler")
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newEngine(zap.New(core), metrics.New())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	id := rec.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	entries := logs.FilterMessage("handler").All()
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ContextMap()["request_id"])
	require.Len(t, logs.FilterMessage("request").All(), 1)
}

func TestRequestID_KeepsCallerID(t *testing.T) {
	r := newEngine(zap.NewNop(), metrics.New())
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
}

func TestMetrics_CountsRequests(t *testing.T) {
	m := metrics.New()
	r := newEngine(zap.NewNop(), m)
	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.InDelta(t, 2, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/ping", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.HTTPRequestsInFlight), 0)
}
