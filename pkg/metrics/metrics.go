// Package metrics provides Prometheus instrumentation.
//
// Wire it up once when building the handler:
//
//	r.Use(metrics.Middleware())
//	r.HandleFunc("/metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "darzi",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "darzi",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "darzi",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// OrdersCreated counts orders created since start.
	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "darzi",
		Subsystem: "orders",
		Name:      "created_total",
		Help:      "Total orders created.",
	})

	// StatusTransitions counts order status changes by target status.
	StatusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "darzi",
			Subsystem: "orders",
			Name:      "status_transitions_total",
			Help:      "Total order status transitions.",
		},
		[]string{"status"},
	)

	// DueSoon is set by the reminder job to the number of orders due
	// within the reminder window.
	DueSoon = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "darzi",
		Subsystem: "orders",
		Name:      "due_soon",
		Help:      "Orders with a due date inside the reminder window.",
	})
)

// DefaultRegistry is the Prometheus registry used by the app.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		OrdersCreated,
		StatusTransitions,
		DueSoon,
	)
}

// responseRecorder wraps http.ResponseWriter to capture the status code.
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records duration, totals, and in-flight gauge per request.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			status := strconv.Itoa(rr.status)
			RequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(r.Method, path, status).Inc()
		})
	}
}

// Handler exposes the metrics page; mount on GET /metrics.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}
