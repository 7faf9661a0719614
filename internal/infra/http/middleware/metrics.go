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

	emailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_emails_sent_total",
			Help: "Total number of outreach emails dispatched",
		},
		[]string{"provider"},
	)

	paymentLinksCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_links_created_total",
			Help: "Total number of payment links created",
		},
		[]string{"processor"},
	)

	leadsConverted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_converted_total",
			Help: "Total number of leads converted by confirmed payments",
		},
	)

	webhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Total number of webhook events received",
		},
		[]string{"source", "result"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
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

func RecordEmailSent(provider string) {
	emailsSent.WithLabelValues(provider).Inc()
}

func RecordPaymentLink(processor string) {
	paymentLinksCreated.WithLabelValues(processor).Inc()
}

func RecordConversion() {
	leadsConverted.Inc()
}

func RecordWebhookEvent(source, result string) {
	webhookEvents.WithLabelValues(source, result).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
