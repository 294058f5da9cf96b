package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QuoteMetrics records pricing-engine activity per sales channel.
type QuoteMetrics struct {
	duration     *prometheus.HistogramVec
	combinations *prometheus.CounterVec
	truncated    prometheus.Counter
	canceled     prometheus.Counter
	failures     *prometheus.CounterVec
}

// NewQuoteMetrics registers the pricing metrics on the provided registerer.
// A nil registerer yields a no-op recorder, which tests rely on.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_run_duration_seconds",
		Help:    "Duration of full generate-score-rank runs.",
		Buckets: prometheus.DefBuckets,
	}, []string{"channel"})
	combinations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_combinations_scored_total",
		Help: "Combinations priced across all runs.",
	}, []string{"channel"})
	truncated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quote_result_sets_truncated_total",
		Help: "Runs whose ranked output hit the result cap.",
	})
	canceled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quote_runs_canceled_total",
		Help: "Runs superseded or canceled before completion.",
	})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_runs_failed_total",
		Help: "Runs that ended with a typed failure.",
	}, []string{"code"})
	reg.MustRegister(duration, combinations, truncated, canceled, failures)
	return &QuoteMetrics{
		duration:     duration,
		combinations: combinations,
		truncated:    truncated,
		canceled:     canceled,
		failures:     failures,
	}
}

// ObserveRun records the duration of one completed run.
func (m *QuoteMetrics) ObserveRun(channel string, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(channel)).Observe(elapsed.Seconds())
}

// AddCombinations counts combinations scored during a run.
func (m *QuoteMetrics) AddCombinations(channel string, n int) {
	if m == nil || m.combinations == nil || n <= 0 {
		return
	}
	m.combinations.WithLabelValues(normalizeLabel(channel)).Add(float64(n))
}

// IncTruncated marks a run whose result set was capped.
func (m *QuoteMetrics) IncTruncated() {
	if m == nil || m.truncated == nil {
		return
	}
	m.truncated.Inc()
}

// IncCanceled marks a superseded or canceled run.
func (m *QuoteMetrics) IncCanceled() {
	if m == nil || m.canceled == nil {
		return
	}
	m.canceled.Inc()
}

// IncFailure counts a failed run by its error code.
func (m *QuoteMetrics) IncFailure(code string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
