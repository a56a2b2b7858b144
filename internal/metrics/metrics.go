package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Lifecycle operation metrics
	OperationsTotal *prometheus.CounterVec

	// Realtime emit metrics
	EventsEmittedTotal *prometheus.CounterVec
)

// Init registers metrics under the configured prefix.
func Init(prefix string) {
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_operations_total",
			Help: "Lifecycle operations by name and outcome",
		},
		[]string{"operation", "outcome"},
	)

	EventsEmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_events_emitted_total",
			Help: "Realtime events handed to the publisher",
		},
		[]string{"channel_kind"},
	)
}

// ObserveEvent counts one realtime event by channel kind.
func ObserveEvent(channelKind string) {
	if EventsEmittedTotal == nil {
		return
	}

	EventsEmittedTotal.WithLabelValues(channelKind).Inc()
}

// ObserveOperation counts one service operation.
func ObserveOperation(operation string, err error) {
	if OperationsTotal == nil {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	OperationsTotal.WithLabelValues(operation, outcome).Inc()
}

// Middleware records request counts and latency per route.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if HttpRequestsTotal == nil {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			method := c.Request().Method
			path := c.Path()
			HttpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Response().Status)).Inc()
			HttpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
