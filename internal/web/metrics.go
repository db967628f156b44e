package web

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPath exposes the prometheus default registry.
const MetricsPath = "/metrics"

var (
	requests     *prometheus.CounterVec   //nolint:gochecknoglobals
	latency      *prometheus.HistogramVec //nolint:gochecknoglobals
	requestsOnce sync.Once                //nolint:gochecknoglobals
)

func registerHTTPMetrics() {
	requestsOnce.Do(func() {
		requests = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Number of HTTP requests, by method, route and status code.",
			},
			[]string{"method", "route", "status"},
		)
		latency = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Latency of HTTP requests, by method and route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)
	})
}

// metricsMiddleware records the request count and latency per matched route.
// It must wrap the access log middleware, which renders chain errors, so the status is final.
func metricsMiddleware(skip ...string) fiber.Handler {
	registerHTTPMetrics()

	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c fiber.Ctx) error {
		if _, ok := skipped[c.Path()]; ok {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		// the route pattern keeps the label cardinality bounded
		route := c.Route().Path

		requests.WithLabelValues(c.Method(), route, strconv.Itoa(c.Response().StatusCode())).Inc()
		latency.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())

		return err
	}
}
