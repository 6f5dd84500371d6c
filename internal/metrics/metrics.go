// Package metrics exposes Prometheus instrumentation for the playback
// server.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vehicle_movement",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vehicle_movement",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "path"})

	// Playback metrics
	TicksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vehicle_movement",
		Subsystem: "playback",
		Name:      "ticks_total",
		Help:      "Total ticks delivered to the playback engine",
	})

	RoutesLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vehicle_movement",
		Subsystem: "playback",
		Name:      "routes_loaded_total",
		Help:      "Total routes accepted by the engine",
	})

	RoutesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vehicle_movement",
		Subsystem: "playback",
		Name:      "routes_rejected_total",
		Help:      "Total routes rejected during validation",
	})

	DistanceMeters = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "vehicle_movement",
		Subsystem: "playback",
		Name:      "distance_meters",
		Help:      "Cumulative distance of the current playback session",
	})

	SpeedMps = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "vehicle_movement",
		Subsystem: "playback",
		Name:      "speed_mps",
		Help:      "Instantaneous speed of the current playback session",
	})

	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "vehicle_movement",
		Subsystem: "ws",
		Name:      "active_connections",
		Help:      "Current number of active WebSocket subscribers",
	})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}

// ObserveSnapshot updates the playback gauges from a tick snapshot.
func ObserveSnapshot(distanceMeters, speedMps float64) {
	TicksTotal.Inc()
	DistanceMeters.Set(distanceMeters)
	SpeedMps.Set(speedMps)
}
