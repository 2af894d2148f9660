package prometheus

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Login counters
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "physio_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Registration counters
	RegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "physio_register_total",
			Help: "Total number of user registrations",
		},
	)

	// Tokens handed out by the issuer
	TokensIssuedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "physio_tokens_issued_total",
			Help: "Total number of access tokens issued",
		},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "physio_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "physio_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // "invalid_credentials", "invalid_token", "expired_token", ...
	)

	// Responses by status class
	StatusCategoryCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "physio_http_status_category_total",
			Help: "Total number of responses by status category (2xx, 3xx, 4xx, 5xx)",
		},
		[]string{"category", "method"},
	)

	// Assignment operations
	AssignmentCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "physio_assignments_total",
			Help: "Total number of exercise assignment operations",
		},
		[]string{"operation"}, // "create", "check", "uncheck"
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "physio_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "physio_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "query", "insert", "update"
	)

	// Assignment aggregation duration
	AggregationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "physio_assignment_aggregation_duration_seconds",
			Help:    "Duration of the per-day assignment aggregation in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Gauge metrics
var (
	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "physio_info",
			Help: "Information about the physio service",
		},
		[]string{"version"},
	)
)

// Version is reported by physio_info.
const Version = "1.0.0"

var initOnce sync.Once

// InitMetrics registers every collector with the default registry, each
// carrying a constant service label. Only the first call has an effect.
func InitMetrics(service string) {
	initOnce.Do(func() {
		reg := prometheus.WrapRegistererWith(prometheus.Labels{"service": service}, prometheus.DefaultRegisterer)

		reg.MustRegister(LoginCounter)
		reg.MustRegister(RegisterCounter)
		reg.MustRegister(TokensIssuedCounter)
		reg.MustRegister(HTTPRequestCounter)
		reg.MustRegister(AuthErrorCounter)
		reg.MustRegister(StatusCategoryCounter)
		reg.MustRegister(AssignmentCounter)

		reg.MustRegister(RequestDuration)
		reg.MustRegister(DBOperationDuration)
		reg.MustRegister(AggregationDuration)

		reg.MustRegister(InfoGauge)

		InfoGauge.With(prometheus.Labels{"version": Version}).Set(1)
	})
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures a database operation. Use as
// defer TrackDBOperation("query")(time.Now()).
func TrackDBOperation(operation string) func(time.Time) {
	return func(start time.Time) {
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(time.Since(start).Seconds())
	}
}

// TrackAggregation measures one assignment aggregation.
func TrackAggregation() func(time.Time) {
	return func(start time.Time) {
		AggregationDuration.Observe(time.Since(start).Seconds())
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// let echo write the error response so its status is the one recorded
				c.Error(err)
			}

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			if category := statusCategory(c.Response().Status); category != "" {
				StatusCategoryCounter.WithLabelValues(category, method).Inc()
			}

			return nil
		}
	}
}

func statusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	}
	return ""
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordAssignmentOperation records an assignment operation by type
func RecordAssignmentOperation(operation string) {
	AssignmentCounter.With(prometheus.Labels{"operation": operation}).Inc()
}
