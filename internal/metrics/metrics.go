// Package metrics exposes prometheus counters for oracle usage and scoring requests.
// A nil *Recorder is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "resume_engine"

// Oracle call outcomes
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

// Recorder owns a private registry and the engine's collectors
type Recorder struct {
	registry    *prometheus.Registry
	oracleCalls *prometheus.CounterVec
	oracleTime  *prometheus.HistogramVec
	fallbacks   *prometheus.CounterVec
	matches     prometheus.Counter
	rankings    prometheus.Counter
	batchItems  *prometheus.CounterVec
}

// New creates a Recorder and registers its collectors along with the Go runtime collectors
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		oracleCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oracle_calls_total",
			Help:      "Oracle calls by schema and outcome.",
		}, []string{"schema", "outcome"}),
		oracleTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "oracle_call_duration_seconds",
			Help:      "Oracle call latency by schema.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
		}, []string{"schema"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_fallbacks_total",
			Help:      "Documents or queries that fell back to a degraded result, by reason.",
		}, []string{"schema", "reason"}),
		matches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_requests_total",
			Help:      "Skill match calculations.",
		}),
		rankings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ranking_requests_total",
			Help:      "Ranking requests.",
		}),
		batchItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_items_total",
			Help:      "Batch documents by status.",
		}, []string{"status"}),
	}

	r.registry.MustRegister(
		r.oracleCalls, r.oracleTime, r.fallbacks, r.matches, r.rankings, r.batchItems,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveOracleCall records one oracle call
func (r *Recorder) ObserveOracleCall(schema, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.oracleCalls.WithLabelValues(schema, outcome).Inc()
	r.oracleTime.WithLabelValues(schema).Observe(elapsed.Seconds())
}

// IncFallback records a degraded result
func (r *Recorder) IncFallback(schema, reason string) {
	if r == nil {
		return
	}
	r.fallbacks.WithLabelValues(schema, reason).Inc()
}

// IncMatch records a skill match calculation
func (r *Recorder) IncMatch() {
	if r == nil {
		return
	}
	r.matches.Inc()
}

// IncRanking records a ranking request
func (r *Recorder) IncRanking() {
	if r == nil {
		return
	}
	r.rankings.Inc()
}

// IncBatchItem records one finished batch document
func (r *Recorder) IncBatchItem(status string) {
	if r == nil {
		return
	}
	r.batchItems.WithLabelValues(status).Inc()
}

// Handler serves the registry in the prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
