// Package metrics exposes engine activity as Prometheus collectors.
package metrics

import (
	"context"
	"net/http"
	"unicode/utf8"

	"github.com/aretw0/unabs/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values of unabs_runs_total.
const (
	OutcomeHalted    = "halted"
	OutcomeStepLimit = "step_limit"
	OutcomeCanceled  = "canceled"
	OutcomeError     = "error"
)

// Metrics owns a private registry so several engines (or tests) in one
// process do not collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	steps       prometheus.Counter
	outputRunes prometheus.Counter
	runs        *prometheus.CounterVec
	duration    prometheus.Histogram
}

// New creates and registers the collectors, plus the Go runtime and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "unabs_steps_total",
			Help: "Total number of machine transitions executed.",
		}),
		outputRunes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "unabs_output_runes_total",
			Help: "Total number of characters printed by programs.",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "unabs_runs_total",
			Help: "Program runs by how they ended.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "unabs_run_duration_seconds",
			Help:    "Wall time of program runs.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
	}
	m.registry.MustRegister(
		m.steps, m.outputRunes, m.runs, m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnOutput: func(_ context.Context, ev *domain.RunEvent) {
			m.outputRunes.Add(float64(utf8.RuneCountInString(ev.Output)))
		},
		OnSuspend: func(_ context.Context, ev *domain.RunEvent) {
			m.finish(ev, outcome(ev.Reason))
		},
		OnHalt: func(_ context.Context, ev *domain.RunEvent) {
			m.finish(ev, OutcomeHalted)
		},
	}
}

func (m *Metrics) finish(ev *domain.RunEvent, outcome string) {
	m.steps.Add(float64(ev.Steps))
	m.runs.WithLabelValues(outcome).Inc()
	m.duration.Observe(ev.Elapsed.Seconds())
}

func outcome(reason string) string {
	switch reason {
	case OutcomeStepLimit, OutcomeCanceled:
		return reason
	default:
		return OutcomeError
	}
}

// Registry returns the registry holding every collector.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
