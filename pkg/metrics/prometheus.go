package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	servedTotal    *prometheus.CounterVec
	cacheEvents    *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	predictedPrice *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		servedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forecast_predictions_served_total",
				Help: "Total number of prediction responses served",
			},
			[]string{"status"},
		),
		cacheEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forecast_cache_events_total",
				Help: "Prediction cache lookups by outcome",
			},
			[]string{"event"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forecast_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		predictedPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "forecast_predicted_price",
				Help: "Last predicted price for a ticker",
			},
			[]string{"ticker"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "forecast_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordServed records a prediction response by status.
func (r *Recorder) RecordServed(status string) {
	r.servedTotal.WithLabelValues(status).Inc()
}

// RecordCacheHit records a prediction cache hit.
func (r *Recorder) RecordCacheHit() {
	r.cacheEvents.WithLabelValues("hit").Inc()
}

// RecordCacheMiss records a prediction cache miss.
func (r *Recorder) RecordCacheMiss() {
	r.cacheEvents.WithLabelValues("miss").Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordPredictedPrice records the last predicted price for a ticker.
func (r *Recorder) RecordPredictedPrice(ticker string, price float64) {
	r.predictedPrice.WithLabelValues(ticker).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
