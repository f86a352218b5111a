package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Saga outcomes and compensation results used as label values.
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"

	ResultOK    = "ok"
	ResultError = "error"
)

// SagaMetrics records order saga runs and the compensations they trigger.
// A nil *SagaMetrics is valid and records nothing.
type SagaMetrics struct {
	runs          *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	compensations *prometheus.CounterVec
}

// NewSagaMetrics registers the saga metrics on the provided registerer.
func NewSagaMetrics(reg prometheus.Registerer) *SagaMetrics {
	if reg == nil {
		return &SagaMetrics{}
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_saga_runs_total",
		Help: "Order saga runs by outcome and the step that failed.",
	}, []string{"outcome", "failed_step"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_saga_duration_seconds",
		Help:    "Duration of order saga runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	compensations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_saga_compensations_total",
		Help: "Compensating actions executed by order sagas.",
	}, []string{"action", "result"})
	reg.MustRegister(runs, duration, compensations)
	return &SagaMetrics{
		runs:          runs,
		duration:      duration,
		compensations: compensations,
	}
}

// ObserveRun records one finished run. failedStep is empty on success.
func (m *SagaMetrics) ObserveRun(outcome, failedStep string, elapsed time.Duration) {
	if m == nil || m.runs == nil {
		return
	}
	m.runs.WithLabelValues(normalizeLabel(outcome), labelOrNone(failedStep)).Inc()
	m.duration.WithLabelValues(normalizeLabel(outcome)).Observe(elapsed.Seconds())
}

// IncCompensation counts one compensating action and whether it succeeded.
func (m *SagaMetrics) IncCompensation(action string, err error) {
	if m == nil || m.compensations == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.compensations.WithLabelValues(normalizeLabel(action), result).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

func labelOrNone(value string) string {
	if value == "" {
		return "none"
	}
	return value
}
