package observability

import (
	"context"

	"github.com/aretw0/clic/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of the dispatcher.
type Metrics struct {
	Dispatches   *prometheus.CounterVec
	Steps        *prometheus.CounterVec
	StepDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		Dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clic_dispatches_total",
				Help: "Total number of processed lines",
			},
			[]string{"kind", "outcome"},
		),
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clic_steps_total",
				Help: "Total number of executed steps by command and status",
			},
			[]string{"command", "status"},
		),
		StepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "clic_step_duration_seconds",
				Help:    "Duration of command steps",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
	}
	for _, c := range []prometheus.Collector{m.Dispatches, m.Steps, m.StepDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks updating the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDispatchEnd: func(ctx context.Context, e *domain.DispatchEvent) {
			kind := "command"
			outcome := "completed"
			if e.Report != nil {
				if e.Report.Flow != "" {
					kind = "flow"
				}
				switch {
				case e.Report.Aborted:
					outcome = "aborted"
				case !e.Report.Completed():
					outcome = "partial"
				}
			}
			m.Dispatches.WithLabelValues(kind, outcome).Inc()
		},
		OnStepEnd: func(ctx context.Context, e *domain.StepEvent) {
			m.Steps.WithLabelValues(e.Result.CommandID, string(e.Result.Status)).Inc()
			if e.Result.Status == domain.StepCompleted || e.Result.Status == domain.StepFailed {
				m.StepDuration.WithLabelValues(e.Result.CommandID).Observe(e.Result.Duration.Seconds())
			}
		},
	}
}
