package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	predictions *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	lastPrice   prometheus.Gauge
	latency     *prometheus.HistogramVec
	cacheLookup *prometheus.CounterVec
}

// New creates a Prometheus metrics recorder on the default registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder registering its collectors on reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		predictions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "retailprice_predictions_total",
				Help: "Total number of price predictions by outcome",
			},
			[]string{"outcome"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "retailprice_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "retailprice_last_predicted_price",
				Help: "Last predicted price",
			},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "retailprice_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"operation"},
		),
		cacheLookup: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "retailprice_cache_lookups_total",
				Help: "Prediction cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// RecordPrediction counts a prediction with its outcome (success, failure).
func (r *Recorder) RecordPrediction(outcome string) {
	r.predictions.WithLabelValues(outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the most recent predicted price.
func (r *Recorder) RecordLastPrice(price float64) {
	r.lastPrice.Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordCacheLookup counts a cache hit or miss.
func (r *Recorder) RecordCacheLookup(hit bool) {
	if hit {
		r.cacheLookup.WithLabelValues("hit").Inc()
		return
	}
	r.cacheLookup.WithLabelValues("miss").Inc()
}
