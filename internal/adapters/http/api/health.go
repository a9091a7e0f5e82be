// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/engageoffer/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler serves liveness together with the pipeline metrics.
type HealthHandler struct {
	metrics http.Handler
}

// NewHealthHandler creates a health handler over the global metrics registry.
func NewHealthHandler() *HealthHandler {
	return NewHealthHandlerFor(metrics.GetRegistry())
}

// NewHealthHandlerFor creates a health handler over the given gatherer.
func NewHealthHandlerFor(g prometheus.Gatherer) *HealthHandler {
	return &HealthHandler{
		metrics: promhttp.HandlerFor(g, promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz requests with the Prometheus exposition
// of the registry.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	h.metrics.ServeHTTP(w, r)
}
