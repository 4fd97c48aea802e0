package upstream

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

var (
	metricsOnce sync.Once //nolint:gochecknoglobals

	requests  *prometheus.CounterVec   //nolint:gochecknoglobals
	durations *prometheus.HistogramVec //nolint:gochecknoglobals
	fallbacks *prometheus.CounterVec   //nolint:gochecknoglobals
)

func initMetrics() {
	metricsOnce.Do(func() {
		requests = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "devportfolio",
				Subsystem: "upstream",
				Name:      "requests_total",
				Help:      "Number of calls to the store backend, by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		)

		durations = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "devportfolio",
				Subsystem: "upstream",
				Name:      "request_duration_seconds",
				Help:      "Duration of calls to the store backend.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		)

		fallbacks = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "devportfolio",
				Name:      "fallbacks_total",
				Help:      "Number of answers served without the store backend, by endpoint.",
			},
			[]string{"endpoint"},
		)
	})
}

// RecordFallback counts an answer the web service made up without the store backend.
func RecordFallback(endpoint string) {
	initMetrics()
	fallbacks.WithLabelValues(endpoint).Inc()
}

func observe(operation string, seconds float64, err error) {
	initMetrics()

	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
	}

	requests.WithLabelValues(operation, outcome).Inc()
	durations.WithLabelValues(operation).Observe(seconds)
}
