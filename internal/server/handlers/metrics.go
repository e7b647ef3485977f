package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/brightsky/internal/server/middlewares"
	"go.uber.org/zap"
)

// HTTPMetricsSource provides the request counters collected by the middleware.
type HTTPMetricsSource interface {
	Snapshot() middlewares.HTTPSnapshot
}

// AppMetrics holds upstream call counters per endpoint.
type AppMetrics struct {
	mutex          sync.RWMutex
	upstreamCalls  map[string]int64
	upstreamErrors map[string]int64
}

type MetricsHandler struct {
	logger     *zap.Logger
	http       HTTPMetricsSource
	appMetrics *AppMetrics
}

func NewMetricsHandler(logger *zap.Logger, source HTTPMetricsSource) *MetricsHandler {
	return &MetricsHandler{
		logger: logger,
		http:   source,
		appMetrics: &AppMetrics{
			upstreamCalls:  make(map[string]int64),
			upstreamErrors: make(map[string]int64),
		},
	}
}

// RecordUpstreamCall records a call to the Bright Sky API
func (h *MetricsHandler) RecordUpstreamCall(endpoint string, success bool) {
	h.appMetrics.mutex.Lock()
	h.appMetrics.upstreamCalls[endpoint]++
	if !success {
		h.appMetrics.upstreamErrors[endpoint]++
	}
	h.appMetrics.mutex.Unlock()
}

// ServeMetrics exposes the counters in Prometheus text format.
func (h *MetricsHandler) ServeMetrics(c *gin.Context) {
	var b strings.Builder

	if h.http != nil {
		snap := h.http.Snapshot()

		b.WriteString("# HELP http_requests_total Total number of HTTP requests\n")
		b.WriteString("# TYPE http_requests_total counter\n")
		for _, key := range sortedKeys(snap.RequestsTotal) {
			b.WriteString("http_requests_total{route_status=\"" + key + "\"} " + strconv.FormatInt(snap.RequestsTotal[key], 10) + "\n")
		}

		b.WriteString("\n# HELP http_request_duration_seconds_avg Average duration of HTTP requests\n")
		b.WriteString("# TYPE http_request_duration_seconds_avg gauge\n")
		b.WriteString("http_request_duration_seconds_avg " + strconv.FormatFloat(snap.AvgDuration, 'f', 6, 64) + "\n")

		b.WriteString("\n# HELP http_active_requests Number of active HTTP requests\n")
		b.WriteString("# TYPE http_active_requests gauge\n")
		b.WriteString("http_active_requests " + strconv.FormatInt(snap.ActiveRequests, 10) + "\n")
	}

	h.appMetrics.mutex.RLock()
	b.WriteString("\n# HELP brightsky_upstream_calls_total Total calls to the Bright Sky API\n")
	b.WriteString("# TYPE brightsky_upstream_calls_total counter\n")
	for _, endpoint := range sortedKeys(h.appMetrics.upstreamCalls) {
		b.WriteString("brightsky_upstream_calls_total{endpoint=\"" + endpoint + "\"} " + strconv.FormatInt(h.appMetrics.upstreamCalls[endpoint], 10) + "\n")
	}

	b.WriteString("\n# HELP brightsky_upstream_errors_total Failed calls to the Bright Sky API\n")
	b.WriteString("# TYPE brightsky_upstream_errors_total counter\n")
	for _, endpoint := range sortedKeys(h.appMetrics.upstreamErrors) {
		b.WriteString("brightsky_upstream_errors_total{endpoint=\"" + endpoint + "\"} " + strconv.FormatInt(h.appMetrics.upstreamErrors[endpoint], 10) + "\n")
	}
	h.appMetrics.mutex.RUnlock()

	c.Header("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	c.String(http.StatusOK, b.String())
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
