// Package metrics holds the Prometheus collectors for submissions, integrity
// verdicts, email delivery and result storage. A nil *Metrics is a no-op.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "compass"

type Metrics struct {
	submissions     *prometheus.CounterVec
	verdicts        *prometheus.CounterVec
	emails          *prometheus.CounterVec
	storage         *prometheus.CounterVec
	scoringDuration prometheus.Histogram
}

// New registers the collectors on reg. Collectors that are already
// registered are reused, so New may be called more than once per registry.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Assessment submissions scored, by test.",
		}, []string{"test"}),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "integrity_verdicts_total",
			Help:      "Answer integrity verdicts, by reason.",
		}, []string{"reason"}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_total",
			Help:      "Report emails, by outcome (sent|failed|disabled).",
		}, []string{"outcome"}),
		storage: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "result_store_ops_total",
			Help:      "Result store operations, by backend, operation and outcome.",
		}, []string{"backend", "op", "outcome"}),
		scoringDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scoring_duration_seconds",
			Help:      "Time spent scoring a submission and assembling its report.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		}),
	}

	var err error
	if m.submissions, err = register(reg, m.submissions); err != nil {
		return nil, err
	}
	if m.verdicts, err = register(reg, m.verdicts); err != nil {
		return nil, err
	}
	if m.emails, err = register(reg, m.emails); err != nil {
		return nil, err
	}
	if m.storage, err = register(reg, m.storage); err != nil {
		return nil, err
	}
	if m.scoringDuration, err = register(reg, m.scoringDuration); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *Metrics) Submission(testID string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(testID).Inc()
}

func (m *Metrics) Verdict(reason string) {
	if m == nil {
		return
	}
	m.verdicts.WithLabelValues(reason).Inc()
}

func (m *Metrics) Email(outcome string) {
	if m == nil {
		return
	}
	m.emails.WithLabelValues(outcome).Inc()
}

func (m *Metrics) StoreOp(backend, op string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.storage.WithLabelValues(backend, op, outcome).Inc()
}

func (m *Metrics) ObserveScoring(d time.Duration) {
	if m == nil {
		return
	}
	m.scoringDuration.Observe(d.Seconds())
}
