package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/opensource-finance/kestrel/internal/domain"
)

const namespace = "kestrel"

// Collector records scoring outcomes as Prometheus metrics.
// It satisfies scoring.Observer and is safe for concurrent use.
type Collector struct {
	evaluations      *prometheus.CounterVec
	criticalFailures prometheus.Counter
	noTrace          prometheus.Counter
	composite        prometheus.Histogram
	checkScores      *prometheus.HistogramVec
}

// NewCollector creates the scoring metrics and registers them on reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "evaluations_total",
			Help:      "Reports evaluated, by decision.",
		}, []string{"decision"}),
		criticalFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "critical_failures_total",
			Help:      "Evaluations forced to zero by a critical check.",
		}),
		noTrace: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "no_trace_total",
			Help:      "Evaluations of consumer-not-found reports.",
		}),
		composite: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "composite_score",
			Help:      "Final score on the 0-5 scale.",
			Buckets:   prometheus.LinearBuckets(0.5, 0.5, 10),
		}),
		checkScores: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "check_score",
			Help:      "Per-check integer score.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		}, []string{"check"}),
	}

	for _, m := range []prometheus.Collector{
		c.evaluations, c.criticalFailures, c.noTrace, c.composite, c.checkScores,
	} {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("failed to register scoring metrics: %w", err)
		}
	}

	return c, nil
}

// Observe records one evaluation. Bypassed checks are not observed.
func (c *Collector) Observe(r *domain.ScoreResult) {
	if r == nil {
		return
	}

	c.evaluations.WithLabelValues(string(r.Decision)).Inc()
	if r.CriticalFailure {
		c.criticalFailures.Inc()
	}
	if r.NoTrace {
		c.noTrace.Inc()
	}
	c.composite.Observe(r.Score)

	for _, check := range r.Checks {
		if !check.Applicable {
			continue
		}
		c.checkScores.WithLabelValues(check.Name).Observe(float64(check.Score))
	}
}
