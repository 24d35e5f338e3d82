package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by engine hooks.
type Metrics struct {
	Runs  *prometheus.CounterVec
	Steps *prometheus.HistogramVec
	Stuck *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pushdown_runs_total",
				Help: "Total number of simulation runs by outcome and reason",
			},
			[]string{"table", "outcome", "reason"},
		),
		Steps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pushdown_run_steps",
				Help:    "Number of steps executed per run",
				Buckets: prometheus.ExponentialBuckets(1, 2, 8),
			},
			[]string{"table"},
		),
		Stuck: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pushdown_stuck_total",
				Help: "Total number of lookups that found no matching rule",
			},
			[]string{"table", "state", "command"},
		),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.Runs, m.Steps, m.Stuck} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			if e.Type == domain.EventStuck {
				m.Stuck.WithLabelValues(e.Table, string(e.Entry.From), string(e.Entry.Command)).Inc()
			}
		},
		OnVerdict: func(ctx context.Context, e *domain.VerdictEvent) {
			m.Runs.WithLabelValues(e.Table, string(e.Verdict.Outcome), string(e.Verdict.Reason)).Inc()
			m.Steps.WithLabelValues(e.Table).Observe(float64(e.Steps))
		},
	}
}

// DebugHooks logs every step and verdict at debug level.
func DebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, string(e.Type),
				"step", e.Entry.Index,
				"command", e.Entry.Command,
				"from", e.Entry.From,
				"to", e.Entry.To,
				"stack", domain.FormatStack(e.Entry.StackAfter),
			)
		},
		OnVerdict: func(ctx context.Context, e *domain.VerdictEvent) {
			logger.InfoContext(ctx, "verdict",
				"table", e.Table,
				"outcome", e.Verdict.Outcome,
				"reason", e.Verdict.Reason,
				"steps", e.Steps,
			)
		},
	}
}
