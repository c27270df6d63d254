package observability

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce                sync.Once
	httpRequestsTotal           *prometheus.CounterVec
	httpLatencySeconds          *prometheus.HistogramVec
	httpErrorsTotal             *prometheus.CounterVec
	schedulingConflictsTotal    prometheus.Counter
	transitionRejectionsTotal   prometheus.Counter
	notificationsPublishedTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors for the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "interview_api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_api_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		schedulingConflictsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "interview_scheduling_conflicts_total",
			Help: "Total number of booking attempts rejected by the overlap guard.",
		})

		transitionRejectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "interview_transition_rejections_total",
			Help: "Total number of rejected lifecycle state transitions.",
		})

		notificationsPublishedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_notifications_published_total",
			Help: "Total number of notifications persisted and fanned out.",
		}, []string{"type"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			schedulingConflictsTotal,
			transitionRejectionsTotal,
			notificationsPublishedTotal,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for API error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// SchedulingConflictsTotal exposes the counter for overlap-guard rejections.
func SchedulingConflictsTotal() prometheus.Counter {
	RegisterMetrics()
	return schedulingConflictsTotal
}

// TransitionRejectionsTotal exposes the counter for rejected transitions.
func TransitionRejectionsTotal() prometheus.Counter {
	RegisterMetrics()
	return transitionRejectionsTotal
}

// NotificationsPublishedTotal exposes the counter for published notifications.
func NotificationsPublishedTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationsPublishedTotal
}

// MetricsHandler serves the Prometheus scrape endpoint on the fiber app.
func MetricsHandler() fiber.Handler {
	RegisterMetrics()
	return adaptor.HTTPHandler(promhttp.Handler())
}
