package logger

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var (
	logStatements     *prometheus.CounterVec //nolint:gochecknoglobals
	logStatementsOnce sync.Once              //nolint:gochecknoglobals
)

// PrometheusHook counts log statements per level.
type PrometheusHook struct {
	service string
}

// Run implements zerolog.Hook.
func (h PrometheusHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	if level == zerolog.NoLevel {
		return
	}

	logStatements.WithLabelValues(h.service, level.String()).Inc()
}

// NewPrometheusHook returns the hook for service. The counter is registered
// once per process; every service started in it shares it.
func NewPrometheusHook(service string) PrometheusHook {
	logStatementsOnce.Do(func() {
		logStatements = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "devportfolio",
				Name:      "log_statements_total",
				Help:      "Number of log statements, by service and level.",
			},
			[]string{"service", "level"},
		)
	})

	return PrometheusHook{service: service}
}
