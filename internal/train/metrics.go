package train

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes training progress to Prometheus.
type Metrics struct {
	StepsTotal   prometheus.Counter
	TokensTotal  prometheus.Counter
	Loss         prometheus.Gauge
	StepDuration prometheus.Histogram
}

// NewMetrics registers the training metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		StepsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "microgpt_train_steps_total",
			Help: "Completed optimization steps.",
		}),
		TokensTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "microgpt_train_tokens_total",
			Help: "Tokens consumed by training.",
		}),
		Loss: factory.NewGauge(prometheus.GaugeOpts{
			Name: "microgpt_train_loss",
			Help: "Mean negative log-likelihood of the last step.",
		}),
		StepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "microgpt_train_step_duration_seconds",
			Help:    "Wall-clock duration of one training step.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
	}
}

func (m *Metrics) observeStep(loss float64, tokens int, seconds float64) {
	if m == nil {
		return
	}
	m.StepsTotal.Inc()
	m.TokensTotal.Add(float64(tokens))
	m.Loss.Set(loss)
	m.StepDuration.Observe(seconds)
}
