package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/driftkit/sway/pkg/domain"
)

// Metrics exposes engine activity as Prometheus collectors. Wire it into a
// group through Hooks.
type Metrics struct {
	passes       prometheus.Counter
	phaseChanges *prometheus.CounterVec
	expirations  prometheus.Counter
	drops        prometheus.Counter
	tracked      prometheus.Gauge
}

// NewMetrics builds the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer, groupID string) *Metrics {
	labels := prometheus.Labels{"group": groupID}

	m := &Metrics{
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "sway_passes_total",
			Help:        "Total number of evaluation passes",
			ConstLabels: labels,
		}),
		phaseChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "sway_phase_changes_total",
			Help:        "Phase changes committed, by destination phase",
			ConstLabels: labels,
		}, []string{"phase"}),
		expirations: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "sway_expirations_total",
			Help:        "Leaving transitions registered for dismissal",
			ConstLabels: labels,
		}),
		drops: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "sway_drops_total",
			Help:        "Transitions permanently removed",
			ConstLabels: labels,
		}),
		tracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "sway_tracked_transitions",
			Help:        "Transitions tracked after the latest pass",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(m.passes, m.phaseChanges, m.expirations, m.drops, m.tracked)
	return m
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPass: func(e domain.PassEvent) {
			m.passes.Inc()
			m.tracked.Set(float64(e.Tracked))
		},
		OnPhaseChange: func(e domain.PhaseEvent) {
			m.phaseChanges.WithLabelValues(e.To.String()).Inc()
		},
		OnExpireScheduled: func(e domain.ExpireEvent) {
			m.expirations.Inc()
		},
		OnDrop: func(e domain.DropEvent) {
			m.drops.Inc()
		},
	}
}

// Merge combines hook sets so one group can feed several observers; each
// callback fires in argument order.
func Merge(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	out.OnPhaseChange = func(e domain.PhaseEvent) {
		for _, h := range hooks {
			if h.OnPhaseChange != nil {
				h.OnPhaseChange(e)
			}
		}
	}
	out.OnExpireScheduled = func(e domain.ExpireEvent) {
		for _, h := range hooks {
			if h.OnExpireScheduled != nil {
				h.OnExpireScheduled(e)
			}
		}
	}
	out.OnDrop = func(e domain.DropEvent) {
		for _, h := range hooks {
			if h.OnDrop != nil {
				h.OnDrop(e)
			}
		}
	}
	out.OnPass = func(e domain.PassEvent) {
		for _, h := range hooks {
			if h.OnPass != nil {
				h.OnPass(e)
			}
		}
	}
	return out
}
