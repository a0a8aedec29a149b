// Package metrics provides the Prometheus-backed observability
// collaborators the rest of the engine plugs into: scan queue depth and
// drop count (§4.4), key-dispatch cascade depth and latency (§4.5).
//
// Every collector returns nil when metrics are disabled, and every
// consumer treats a nil collector as a no-op, so there is zero overhead
// when the metrics server is off.
package metrics

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	enabled  atomic.Bool
	registry atomic.Pointer[prometheus.Registry]
)

// InitRegistry enables metrics collection and creates the Prometheus
// registry used by every collector in this package. Calling it more than
// once replaces the registry (existing collector instances keep
// reporting to their original registry).
func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	registry.Store(reg)
	enabled.Store(true)
	return reg
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	return enabled.Load()
}

// GetRegistry returns the active registry, or nil if metrics are
// disabled.
func GetRegistry() *prometheus.Registry {
	return registry.Load()
}

// Handler returns the HTTP handler serving the registry in the
// Prometheus text exposition format. Returns nil if metrics are
// disabled.
func Handler() http.Handler {
	reg := GetRegistry()
	if reg == nil {
		return nil
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
