// Package metrics exposes ripple progress as prometheus collectors. The
// collectors live on their own registry so several runs in one process (as
// in tests) never collide.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/specialistvlad/ripplego/internal/progress"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Metrics holds the ripple collectors and implements progress.Sink.
type Metrics struct {
	Registry *prometheus.Registry

	stepsTotal    *prometheus.CounterVec
	stepDuration  *prometheus.HistogramVec
	runsTotal     *prometheus.CounterVec
	warningsTotal *prometheus.CounterVec
	stepsPlanned  prometheus.Gauge
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		stepsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ripple_steps_total",
				Help: "Number of executed steps by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		stepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ripple_step_duration_seconds",
				Help:    "Time taken to execute a step.",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 14),
			},
			[]string{"kind"},
		),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ripple_runs_total",
				Help: "Number of finished ripples by terminal state.",
			},
			[]string{"state"},
		),
		warningsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ripple_warnings_total",
				Help: "Number of non-fatal warnings by kind.",
			},
			[]string{"kind"},
		),
		stepsPlanned: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ripple_steps_planned",
				Help: "Number of steps in the plan of the last run.",
			},
		),
	}
	m.Registry.MustRegister(
		m.stepsTotal,
		m.stepDuration,
		m.runsTotal,
		m.warningsTotal,
		m.stepsPlanned,
	)
	return m
}

func (m *Metrics) StepFinished(e progress.StepEvent) {
	kind := string(e.Step.Kind())
	outcome := outcomeSuccess
	if e.Err != nil {
		outcome = outcomeFailure
	}
	m.stepsPlanned.Set(float64(e.Total))
	m.stepsTotal.WithLabelValues(kind, outcome).Inc()
	m.stepDuration.WithLabelValues(kind).Observe(e.Duration.Seconds())
}

func (m *Metrics) RunFinished(s progress.Summary) {
	m.stepsPlanned.Set(float64(s.Total))
	m.runsTotal.WithLabelValues(s.State).Inc()
	for _, w := range s.Warnings {
		m.warningsTotal.WithLabelValues(string(w.Kind)).Inc()
	}
}
