package logger

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// PrometheusHook counts log statements per level.
type PrometheusHook struct {
	counter *prometheus.CounterVec
}

// Run implements zerolog.Hook run method.
func (h PrometheusHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	if h.counter != nil && level != zerolog.NoLevel {
		h.counter.WithLabelValues(level.String()).Inc()
	}
}

// NewPrometheusHook returns a hook counting log_statements_total{level} for service.
// The counter is registered with reg, an already registered counter is reused.
func NewPrometheusHook(service string, reg prometheus.Registerer) PrometheusHook {
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "log_statements_total",
			Help:        "Number of log statements, differentiated by log level.",
			ConstLabels: prometheus.Labels{"service": service},
		},
		[]string{"level"},
	)

	if reg == nil {
		return PrometheusHook{counter: counter}
	}

	if err := reg.Register(counter); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				counter = existing
			}
		}
	}

	return PrometheusHook{counter: counter}
}
