package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP and domain metrics for the scheduling service.
var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	conflictChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_conflict_checks_total",
			Help: "Conflict checks run at assignment write time.",
		},
		[]string{"result"},
	)

	validationRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roster_compliance_validations_total",
		Help: "Full-schedule compliance validation runs.",
	})

	validationFindingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_compliance_findings_total",
			Help: "Violations and warnings emitted by validation runs.",
		},
		[]string{"kind", "severity"},
	)

	validationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "roster_compliance_validation_duration_seconds",
		Help:    "Duration of full-schedule validation runs.",
		Buckets: prometheus.DefBuckets,
	})
)

// Init registers all metrics with the default registry.
func Init() {
	prometheus.MustRegister(
		httpInFlight, httpRequestsTotal, httpRequestDuration,
		conflictChecksTotal, validationRunsTotal,
		validationFindingsTotal, validationDuration,
	)
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveConflictCheck records one write-time conflict check.
func ObserveConflictCheck(conflict bool) {
	result := "clear"
	if conflict {
		result = "conflict"
	}
	conflictChecksTotal.WithLabelValues(result).Inc()
}

// ObserveValidation records one full-schedule validation run.
func ObserveValidation(duration time.Duration, violationsBySeverity, warningsBySeverity map[string]int) {
	validationRunsTotal.Inc()
	validationDuration.Observe(duration.Seconds())
	for severity, n := range violationsBySeverity {
		validationFindingsTotal.WithLabelValues("violation", severity).Add(float64(n))
	}
	for severity, n := range warningsBySeverity {
		validationFindingsTotal.WithLabelValues("warning", severity).Add(float64(n))
	}
}

// Instrument wraps a handler with RPS, latency and in-flight accounting.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInFlight.Inc()
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(sw.code)

		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(duration)
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpInFlight.Dec()
	})
}

// statusWriter captures the response code for labeling.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
