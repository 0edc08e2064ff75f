package observability

import (
	"strings"

	"github.com/aretw0/crema/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by the translation hooks.
type Metrics struct {
	Translations *prometheus.CounterVec
	Stages       *prometheus.CounterVec
	Phases       prometheus.Counter
	Warnings     *prometheus.CounterVec
	StagePhases  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		Translations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crema_translations_total",
				Help: "Total number of profile translations by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
		Stages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crema_stages_total",
				Help: "Total number of source stages translated by kind",
			},
			[]string{"kind"},
		),
		Phases: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crema_phases_total",
			Help: "Total number of destination phases produced",
		}),
		Warnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crema_warnings_total",
				Help: "Total number of translation warnings by category",
			},
			[]string{"category"},
		),
		StagePhases: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "crema_stage_phases",
			Help:    "Number of phases each stage was split into",
			Buckets: []float64{1, 2, 3, 5, 8, 13},
		}),
	}
	reg.MustRegister(m.Translations, m.Stages, m.Phases, m.Warnings, m.StagePhases)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStage: func(e *domain.StageEvent) {
			m.Stages.WithLabelValues(string(e.Kind)).Inc()
			m.StagePhases.Observe(float64(e.Phases))
		},
		OnWarning: func(w string) {
			m.Warnings.WithLabelValues(WarningCategory(w)).Inc()
		},
		OnComplete: func(e *domain.CompleteEvent) {
			outcome := "ok"
			if e.Err != nil {
				outcome = domain.ErrorKind(e.Err)
			} else {
				m.Phases.Add(float64(e.Phases))
			}
			m.Translations.WithLabelValues(string(e.Mode), outcome).Inc()
		},
	}
}

// WarningCategory returns the lower-cased bracket tag of a warning
// ("validation", "unsupported"), or "other".
func WarningCategory(w string) string {
	for _, tag := range []string{domain.WarningValidation, domain.WarningUnsupported} {
		if strings.HasPrefix(w, tag) {
			return strings.ToLower(strings.Trim(tag, "[]"))
		}
	}
	return "other"
}
