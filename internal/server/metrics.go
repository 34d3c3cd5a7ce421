package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts wizard traffic by step and outcome.
type Metrics struct {
	Registry *prometheus.Registry

	StepSubmissions *prometheus.CounterVec
	Rejections      *prometheus.CounterVec
	Submissions     prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		StepSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inquiry",
			Name:      "wizard_step_submissions_total",
			Help:      "Wizard step submissions by step and result.",
		}, []string{"step", "result"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inquiry",
			Name:      "wizard_rejections_total",
			Help:      "First-step eligibility rejections by outcome slug.",
		}, []string{"slug"}),
		Submissions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "inquiry",
			Name:      "submissions_total",
			Help:      "Completed inquiry submissions.",
		}),
	}
	m.Registry.MustRegister(m.StepSubmissions, m.Rejections, m.Submissions)
	return m
}
