package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

type Metrics struct {
	StageDuration *prometheus.HistogramVec
	Fallbacks     *prometheus.CounterVec
	Runs          *prometheus.CounterVec
}

// NewMetrics registers the pipeline collectors on reg. A nil reg leaves them
// unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "agenteval_stage_duration_seconds",
				Help:    "Pipeline stage call duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 16), // 1ms to ~32s
			},
			[]string{"stage", "outcome"},
		),
		Fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agenteval_stage_fallback_total",
				Help: "Total number of stage results replaced by a fallback",
			},
			[]string{"stage"},
		),
		Runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agenteval_pipeline_runs_total",
				Help: "Total number of pipeline runs",
			},
			[]string{"mode", "outcome"},
		),
	}
}

func (m *Metrics) observeStage(stage string, err error, elapsed time.Duration) {
	m.StageDuration.WithLabelValues(stage, outcome(err)).Observe(elapsed.Seconds())
}

func (m *Metrics) fallback(stage string) {
	m.Fallbacks.WithLabelValues(stage).Inc()
}

func (m *Metrics) run(mode string, err error) {
	m.Runs.WithLabelValues(mode, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return outcomeError
	}
	return outcomeOK
}
