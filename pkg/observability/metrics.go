package observability

import (
	"context"

	"github.com/aretw0/fsmsketch/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors fed by engine hooks.
type Metrics struct {
	Words            *prometheus.CounterVec
	Steps            prometheus.Counter
	ActiveStates     prometheus.Histogram
	ExpressionChecks *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Words: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fsmsketch_words_total",
				Help: "Words decided, by verdict (accept, reject, invalid).",
			},
			[]string{"verdict"},
		),
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fsmsketch_simulation_steps_total",
			Help: "Symbols consumed by subset simulation.",
		}),
		ActiveStates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fsmsketch_active_states",
			Help:    "Size of the active state set after each simulation step.",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
		ExpressionChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fsmsketch_expression_checks_total",
				Help: "Bracket validations, by result (valid, invalid).",
			},
			[]string{"result"},
		),
	}

	for _, c := range []prometheus.Collector{m.Words, m.Steps, m.ActiveStates, m.ExpressionChecks} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			m.Steps.Inc()
			m.ActiveStates.Observe(float64(e.Active))
		},
		OnVerdict: func(_ context.Context, e *domain.VerdictEvent) {
			m.Words.WithLabelValues(verdictLabel(e)).Inc()
		},
		OnExpressionCheck: func(_ context.Context, e *domain.ExpressionEvent) {
			result := "invalid"
			if e.Valid {
				result = "valid"
			}
			m.ExpressionChecks.WithLabelValues(result).Inc()
		},
	}
}

func verdictLabel(e *domain.VerdictEvent) string {
	switch {
	case !e.Valid:
		return "invalid"
	case e.Accepted:
		return "accept"
	default:
		return "reject"
	}
}

// Chain merges hook sets; each event reaches every non-nil hook in order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		if h.OnStep != nil {
			prev, next := out.OnStep, h.OnStep
			out.OnStep = func(ctx context.Context, e *domain.StepEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
		if h.OnVerdict != nil {
			prev, next := out.OnVerdict, h.OnVerdict
			out.OnVerdict = func(ctx context.Context, e *domain.VerdictEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
		if h.OnExpressionCheck != nil {
			prev, next := out.OnExpressionCheck, h.OnExpressionCheck
			out.OnExpressionCheck = func(ctx context.Context, e *domain.ExpressionEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
	}
	return out
}
