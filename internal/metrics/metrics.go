// Package metrics exports search instrumentation to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack"
)

const namespace = "bruteforce"

const (
	outcomeFound      = "found"
	outcomeNotFound   = "not_found"
	outcomeIncomplete = "incomplete"
)

// Metrics implements hashcrack.Observer.
type Metrics struct {
	searches       *prometheus.CounterVec
	active         prometheus.Gauge
	units          prometheus.Histogram
	attempts       prometheus.Counter
	workerFailures prometheus.Counter
	duration       prometheus.Histogram
}

var _ hashcrack.Observer = (*Metrics)(nil)

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Finished searches by outcome.",
		}, []string{"outcome"}),
		active: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "searches_active",
			Help:      "Searches currently running.",
		}),
		units: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_units",
			Help:      "Work units per search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		attempts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_attempted_total",
			Help:      "Candidates hashed, as flushed by workers.",
		}),
		workerFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_failures_total",
			Help:      "Worker runs that panicked.",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Wall clock duration of finished searches.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 12),
		}),
	}
}

func (m *Metrics) SearchStarted(_ *hashcrack.SearchSpec, units int) {
	m.active.Inc()
	m.units.Observe(float64(units))
}

func (m *Metrics) AttemptsFlushed(n uint64) {
	m.attempts.Add(float64(n))
}

func (m *Metrics) WorkerFailed() {
	m.workerFailures.Inc()
}

func (m *Metrics) SearchFinished(res *hashcrack.SearchResult) {
	m.active.Dec()
	m.duration.Observe(res.Elapsed.Seconds())
	switch {
	case res.Found:
		m.searches.WithLabelValues(outcomeFound).Inc()
	case res.Incomplete:
		m.searches.WithLabelValues(outcomeIncomplete).Inc()
	default:
		m.searches.WithLabelValues(outcomeNotFound).Inc()
	}
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
