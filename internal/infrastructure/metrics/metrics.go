package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "productdesc_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "productdesc_http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "path"},
	)
	HTTPErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "productdesc_http_errors_total",
			Help: "Total number of HTTP request errors.",
		},
		[]string{"method", "path", "status"},
	)

	// Generation
	LLMRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "productdesc_llm_requests_total",
			Help: "Number of LLM requests by provider/model",
		},
		[]string{"provider", "model"},
	)
	GenerationAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "productdesc_generation_attempts_total",
			Help: "Generation attempts by result",
		},
		[]string{"result"}, // result: success|error
	)
	GenerationExhausted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "productdesc_generation_exhausted_total",
			Help: "Requests that failed after all generation attempts",
		},
	)
	GenerationDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "productdesc_generation_duration_seconds",
			Help:    "Wall time of the generation step including retries",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 0.25s..32s
		},
	)

	// Sanitizer
	SanitizeResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "productdesc_sanitize_results_total",
			Help: "Model replies by sanitizer outcome",
		},
		[]string{"result"}, // result: direct|repaired|failed
	)

	// Validation
	ValidationRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "productdesc_validation_runs_total",
			Help: "Number of validation runs by validator and result",
		},
		[]string{"validator", "result"}, // validator: input|output, result: pass|fail
	)

	// Evaluation
	EvaluationScores = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "productdesc_evaluation_score",
			Help:    "Distribution of rubric scores",
			Buckets: prometheus.LinearBuckets(0, 5, 9), // 0..40
		},
	)

	// Errors
	Errors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "productdesc_errors_total",
			Help: "Errors encountered in components",
		},
		[]string{"component", "type"},
	)
)

func init() {
	prometheus.MustRegister(
		// HTTP
		HTTPRequestDuration,
		HTTPRequests,
		HTTPErrors,
		// Generation
		LLMRequests,
		GenerationAttempts,
		GenerationExhausted,
		GenerationDurationSeconds,
		// Sanitizer
		SanitizeResults,
		// Validation
		ValidationRuns,
		// Evaluation
		EvaluationScores,
		// Errors
		Errors,
	)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartMetricsServer serves /metrics on a dedicated listener. It blocks.
func StartMetricsServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// HTTP
func ObserveHTTPRequest(method, path string, status int, d time.Duration) {
	statusStr := strconv.Itoa(status)
	HTTPRequests.WithLabelValues(method, path).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, statusStr).Observe(d.Seconds())
	if status >= 400 {
		HTTPErrors.WithLabelValues(method, path, statusStr).Inc()
	}
}

// Generation
func IncLLMRequest(provider, model string) {
	LLMRequests.WithLabelValues(provider, model).Inc()
}

func IncGenerationAttempt(result string) {
	GenerationAttempts.WithLabelValues(result).Inc()
}

func IncGenerationExhausted() {
	GenerationExhausted.Inc()
}

func ObserveGenerationDuration(d time.Duration) {
	GenerationDurationSeconds.Observe(d.Seconds())
}

// Sanitizer
func IncSanitizeResult(result string) {
	SanitizeResults.WithLabelValues(result).Inc()
}

// Validation
func IncValidationRun(validator, result string) {
	ValidationRuns.WithLabelValues(validator, result).Inc()
}

// Evaluation
func ObserveEvaluationScore(score int) {
	EvaluationScores.Observe(float64(score))
}

// Errors
func IncError(component, typ string) {
	Errors.WithLabelValues(component, typ).Inc()
}
