// Package metrics exposes the battery's run-time counters and gauges as
// Prometheus collectors: the latest per-block entropy estimate, a
// running count of processed blocks, a count of health-test failures by
// kind, and a histogram of per-block wall-clock time.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry wraps a dedicated prometheus.Registry with the battery's
// collectors. A nil *Registry is safe to call methods on; the update
// methods are no-ops in that case, so callers can pass nil when metrics
// are not requested. Handler on a nil *Registry returns the default
// promhttp handler, which serves the global default registry.
type Registry struct {
	reg *prometheus.Registry

	blocksProcessed prometheus.Counter
	lastBlockEntropy prometheus.Gauge
	blockDuration    prometheus.Histogram
	healthFailures   *prometheus.CounterVec
}

// New builds a Registry with all collectors registered.
func New() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		blocksProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minentropy",
			Name:      "blocks_processed_total",
			Help:      "Number of sample blocks processed by the battery.",
		}),
		lastBlockEntropy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "minentropy",
			Name:      "last_block_min_entropy_bits",
			Help:      "Min-of-minima entropy estimate for the most recently processed block.",
		}),
		blockDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "minentropy",
			Name:      "block_duration_seconds",
			Help:      "Wall-clock time spent running the full estimator and predictor set over one block.",
			Buckets:   prometheus.DefBuckets,
		}),
		healthFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "minentropy",
			Name:      "health_test_failures_total",
			Help:      "Count of health-test failures by test name.",
		}, []string{"test"}),
	}

	reg.MustRegister(r.blocksProcessed, r.lastBlockEntropy, r.blockDuration, r.healthFailures)
	return r
}

// ObserveBlock records a completed block's entropy estimate.
func (r *Registry) ObserveBlock(minEntropy float64) {
	if r == nil {
		return
	}
	r.blocksProcessed.Inc()
	r.lastBlockEntropy.Set(minEntropy)
}

// ObserveBlockDuration records the wall-clock time spent on one block.
func (r *Registry) ObserveBlockDuration(d time.Duration) {
	if r == nil {
		return
	}
	r.blockDuration.Observe(d.Seconds())
}

// ObserveHealthTests increments the failure counter for each test that
// reported a failure on this run.
func (r *Registry) ObserveHealthTests(rctFailed, aptFailed, crossRCTFailed bool) {
	if r == nil {
		return
	}
	if rctFailed {
		r.healthFailures.WithLabelValues("rct").Inc()
	}
	if aptFailed {
		r.healthFailures.WithLabelValues("apt").Inc()
	}
	if crossRCTFailed {
		r.healthFailures.WithLabelValues("cross_rct").Inc()
	}
}

// Handler returns the HTTP handler serving this registry's metrics in
// the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
