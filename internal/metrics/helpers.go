package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DurationBuckets: 100ms to 5min for sweep run durations
var DurationBuckets = []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300}

// NewDurationHistogram creates a histogram for tracking durations in seconds
// with standard buckets: [0.1, 0.5, 1, 5, 10, 30, 60, 300]
func NewDurationHistogram(name, help string) prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    name,
		Help:    help,
		Buckets: DurationBuckets,
	})
}

// NewCounter creates a standard counter metric
func NewCounter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: name,
		Help: help,
	})
}

// NewCounterVec creates a labeled counter
func NewCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels)
}

// NewGauge creates a standard gauge metric
func NewGauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	})
}
