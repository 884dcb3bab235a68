package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	httpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// TariffCalculationsTotal counts pipeline runs by kind (single, period,
	// export). Incremented by the router wiring, not the engine, so the
	// pricing package stays dependency-free.
	TariffCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tariff_calculations_total",
			Help: "Total number of tariff calculations by kind",
		},
		[]string{"kind"},
	)

	// RuleSnapshotRefreshesTotal counts rule snapshot rebuilds by trigger
	// (scheduled, mutation, miss).
	RuleSnapshotRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rule_snapshot_refreshes_total",
			Help: "Total number of rule snapshot cache rebuilds by trigger",
		},
		[]string{"trigger"},
	)
)

// Metrics records request counts, latencies, and in-flight gauge. The
// matched route template keeps label cardinality bounded.
func Metrics() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		err := c.Next()

		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}

		labels := prometheus.Labels{
			"method": c.Method(),
			"route":  route,
			"status": strconv.Itoa(c.Response().StatusCode()),
		}
		httpRequestsTotal.With(labels).Inc()
		httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())

		return err
	}
}
