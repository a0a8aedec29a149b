package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/clavis/keymapd/pkg/keymap"
)

// dispatchMetrics is the Prometheus implementation of
// keymap.DispatchMetrics.
type dispatchMetrics struct {
	cascadeDepth   prometheus.Histogram
	dispatchLat    *prometheus.HistogramVec
	dispatchResult *prometheus.CounterVec
}

// NewDispatchMetrics returns a keymap.DispatchMetrics collecting cascade
// depth and dispatch latency. Returns nil when metrics are disabled, so
// callers can assign the result straight to Dispatcher.Metrics.
func NewDispatchMetrics() keymap.DispatchMetrics {
	reg := GetRegistry()
	if reg == nil {
		return nil
	}

	return &dispatchMetrics{
		cascadeDepth: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "keymapd_dispatch_cascade_depth",
			Help:    "Number of candidate layers walked per key dispatch event",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		}),
		dispatchLat: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "keymapd_dispatch_duration_seconds",
			Help:    "Duration of the key-dispatch cascade",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"result"}),
		dispatchResult: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "keymapd_dispatch_total",
			Help: "Total key-dispatch events by outcome",
		}, []string{"result"}),
	}
}

func (m *dispatchMetrics) ObserveCascade(layersWalked int, duration time.Duration, result keymap.Result) {
	if m == nil {
		return
	}
	label := resultLabel(result)
	m.cascadeDepth.Observe(float64(layersWalked))
	m.dispatchLat.WithLabelValues(label).Observe(duration.Seconds())
	m.dispatchResult.WithLabelValues(label).Inc()
}

func resultLabel(result keymap.Result) string {
	switch result {
	case keymap.ResultConsumed:
		return "consumed"
	default:
		return "unhandled"
	}
}
