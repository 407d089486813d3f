package workflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeAnswered = "answered"
	outcomeAborted  = "aborted"
	outcomeError    = "error"
)

// Metrics holds Prometheus metrics for workflow sessions.
type Metrics struct {
	Runs       *prometheus.CounterVec
	Attempts   prometheus.Histogram
	Executions *prometheus.CounterVec
}

// NewMetrics creates workflow metrics registered with the given
// registerer. A nil registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tableqa_workflow_runs_total",
			Help: "Total workflow sessions by outcome",
		}, []string{"outcome"}),
		Attempts: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tableqa_workflow_attempts",
			Help:    "Code synthesis attempts per finished session",
			Buckets: []float64{1, 2, 3, 5, 8},
		}),
		Executions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tableqa_sandbox_executions_total",
			Help: "Total sandbox executions by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) observeRun(outcome string, attempts int) {
	m.Runs.WithLabelValues(outcome).Inc()
	if attempts > 0 {
		m.Attempts.Observe(float64(attempts))
	}
}

func (m *Metrics) observeExecution(err error) {
	m.Executions.WithLabelValues(executionResult(err)).Inc()
}
