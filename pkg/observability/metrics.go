package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/regula/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects conversion counters, durations and step counts.
type Metrics struct {
	Registry *prometheus.Registry

	conversions *prometheus.CounterVec
	inFlight    *prometheus.GaugeVec
	duration    *prometheus.HistogramVec
	steps       *prometheus.CounterVec
}

// NewMetrics registers the regula collectors, plus the Go and process
// collectors, on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regula_conversions_total",
				Help: "Total number of finished conversions",
			},
			[]string{"kind", "outcome"},
		),
		inFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "regula_conversions_in_flight",
				Help: "Conversions currently running",
			},
			[]string{"kind"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "regula_conversion_duration_seconds",
				Help:    "Duration of conversions",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"kind"},
		),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regula_steps_total",
				Help: "Total number of recorded derivation steps",
			},
			[]string{"kind", "step"},
		),
	}
	m.Registry.MustRegister(
		m.conversions,
		m.inFlight,
		m.duration,
		m.steps,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnConversionStart: func(ctx context.Context, e *domain.ConversionEvent) {
			m.inFlight.WithLabelValues(string(e.Kind)).Inc()
		},
		OnConversionEnd: func(ctx context.Context, e *domain.ConversionEvent) {
			m.inFlight.WithLabelValues(string(e.Kind)).Dec()
			m.conversions.WithLabelValues(string(e.Kind), outcome(e)).Inc()
			m.duration.WithLabelValues(string(e.Kind)).Observe(e.Duration.Seconds())
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			m.steps.WithLabelValues(string(e.Kind), string(e.Step.Kind)).Inc()
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func outcome(e *domain.ConversionEvent) string {
	if e.Success {
		return "success"
	}
	if e.ErrorKind != "" {
		return string(e.ErrorKind)
	}
	return "failure"
}
