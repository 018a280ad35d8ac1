package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	apiRequestsTotal      *prometheus.CounterVec
	apiLatencySeconds     *prometheus.HistogramVec
	apiErrorsTotal        *prometheus.CounterVec
	evaluationsTotal      *prometheus.CounterVec
	evaluationScore       *prometheus.HistogramVec
	evaluationCacheEvents *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "writing_api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "writing_api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "writing_api_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		evaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "writing_evaluations_total",
			Help: "Total number of evaluations by tier.",
		}, []string{"tier"})

		evaluationScore = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "writing_evaluation_score",
			Help:    "Distribution of category and total scores.",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 90, 120, 150},
		}, []string{"category"})

		evaluationCacheEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "writing_evaluation_cache_total",
			Help: "Report cache lookups by result.",
		}, []string{"result"})

		prometheus.MustRegister(apiRequestsTotal, apiLatencySeconds, apiErrorsTotal, evaluationsTotal, evaluationScore, evaluationCacheEvents)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// Evaluations exposes the evaluation counter.
func Evaluations() *prometheus.CounterVec {
	RegisterMetrics()
	return evaluationsTotal
}

// EvaluationScores exposes the score histogram.
func EvaluationScores() *prometheus.HistogramVec {
	RegisterMetrics()
	return evaluationScore
}

// EvaluationCache exposes the report cache counter.
func EvaluationCache() *prometheus.CounterVec {
	RegisterMetrics()
	return evaluationCacheEvents
}
