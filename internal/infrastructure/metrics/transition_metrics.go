package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
)

// TransitionMetrics exports lifecycle transitions to Prometheus.
type TransitionMetrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ lifecycle.Observer = (*TransitionMetrics)(nil)

// NewTransitionMetrics registers the collectors on reg.
func NewTransitionMetrics(reg prometheus.Registerer) (*TransitionMetrics, error) {
	m := &TransitionMetrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venue_backoffice",
			Subsystem: "lifecycle",
			Name:      "transitions_total",
			Help:      "Transition attempts by record kind, action and outcome.",
		}, []string{"kind", "action", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "venue_backoffice",
			Subsystem: "lifecycle",
			Name:      "transition_duration_seconds",
			Help:      "Time spent applying a transition including its transaction.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind", "action"}),
	}
	for _, c := range []prometheus.Collector{m.total, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *TransitionMetrics) ObserveTransition(kind entities.RecordKind, action lifecycle.Action, outcome lifecycle.Outcome, elapsed time.Duration) {
	m.total.WithLabelValues(string(kind), string(action), string(outcome)).Inc()
	m.duration.WithLabelValues(string(kind), string(action)).Observe(elapsed.Seconds())
}

// OutboxMetrics counts relay deliveries.
type OutboxMetrics struct {
	published *prometheus.CounterVec
	failed    *prometheus.CounterVec
}

func NewOutboxMetrics(reg prometheus.Registerer) (*OutboxMetrics, error) {
	m := &OutboxMetrics{
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venue_backoffice",
			Subsystem: "outbox",
			Name:      "published_total",
			Help:      "Outbox messages delivered by type.",
		}, []string{"type"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "venue_backoffice",
			Subsystem: "outbox",
			Name:      "failed_total",
			Help:      "Outbox delivery attempts that failed, by type.",
		}, []string{"type"}),
	}
	for _, c := range []prometheus.Collector{m.published, m.failed} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *OutboxMetrics) Published(msgType string) { m.published.WithLabelValues(msgType).Inc() }

func (m *OutboxMetrics) Failed(msgType string) { m.failed.WithLabelValues(msgType).Inc() }
