package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	importsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_imports_total",
			Help: "Total number of spreadsheet imports",
		},
		[]string{"outcome"},
	)

	importedLeads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "imported_leads_total",
			Help: "Total number of leads persisted by imports",
		},
	)

	unrecognizedProducts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "unrecognized_products_total",
			Help: "Total number of unrecognized vendor product labels",
		},
	)

	followUpsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "followups_published_total",
			Help: "Total number of follow-up jobs published",
		},
		[]string{"channel"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordImport(outcome string, leads int) {
	importsTotal.WithLabelValues(outcome).Inc()
	if leads > 0 {
		importedLeads.Add(float64(leads))
	}
}

func RecordUnrecognizedProducts(count int) {
	if count > 0 {
		unrecognizedProducts.Add(float64(count))
	}
}

func RecordFollowUp(channel string) {
	followUpsPublished.WithLabelValues(channel).Inc()
}
