package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.service.Metrics using Prometheus.
type Recorder struct {
	predictions     *prometheus.CounterVec
	failures        *prometheus.CounterVec
	cacheEvents     *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		predictions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentidash_predictions_total",
				Help: "Total number of prediction requests by outcome",
			},
			[]string{"outcome", "symbol"},
		),
		failures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentidash_failures_total",
				Help: "Total number of upstream failures by kind",
			},
			[]string{"kind"},
		),
		cacheEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sentidash_cache_events_total",
				Help: "Result cache hits and misses",
			},
			[]string{"result"},
		),
		upstreamLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sentidash_upstream_duration_seconds",
				Help:    "Duration of model API calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
	}
}

// RecordPrediction records a resolved prediction request.
func (r *Recorder) RecordPrediction(outcome, symbol string) {
	r.predictions.WithLabelValues(outcome, symbol).Inc()
}

// RecordFailure records an upstream failure by kind.
func (r *Recorder) RecordFailure(kind string) {
	r.failures.WithLabelValues(kind).Inc()
}

// RecordCacheHit records a result cache hit.
func (r *Recorder) RecordCacheHit() {
	r.cacheEvents.WithLabelValues("hit").Inc()
}

// RecordCacheMiss records a result cache miss.
func (r *Recorder) RecordCacheMiss() {
	r.cacheEvents.WithLabelValues("miss").Inc()
}

// RecordUpstreamLatency records model API call latency in seconds.
func (r *Recorder) RecordUpstreamLatency(endpoint string, seconds float64) {
	r.upstreamLatency.WithLabelValues(endpoint).Observe(seconds)
}
