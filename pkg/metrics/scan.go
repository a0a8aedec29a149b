package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/clavis/keymapd/pkg/scan"
)

// scanCollector is a prometheus.Collector that samples a scan.Pipeline's
// queue depth and drop count on every scrape, rather than pushing a
// value on every enqueue — the pipeline's counters are already
// lock-free atomics, so sampling them is cheaper than wiring a
// metrics call into the ISR-adjacent enqueue path.
type scanCollector struct {
	pipeline   *scan.Pipeline
	queueDepth *prometheus.Desc
	dropped    *prometheus.Desc
}

// NewScanCollector registers a collector over pipeline with the active
// registry and returns it. Returns nil when metrics are disabled.
func NewScanCollector(pipeline *scan.Pipeline) prometheus.Collector {
	reg := GetRegistry()
	if reg == nil {
		return nil
	}

	c := &scanCollector{
		pipeline:   pipeline,
		queueDepth: prometheus.NewDesc("keymapd_scan_queue_depth", "Current depth of the scan event queue", nil, nil),
		dropped:    prometheus.NewDesc("keymapd_scan_queue_dropped_total", "Total scan events dropped due to a full queue", nil, nil),
	}
	reg.MustRegister(c)
	return c
}

func (c *scanCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.queueDepth
	ch <- c.dropped
}

func (c *scanCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.queueDepth, prometheus.GaugeValue, float64(c.pipeline.QueueDepth()))
	ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(c.pipeline.Dropped()))
}
