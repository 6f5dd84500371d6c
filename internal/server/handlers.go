package server

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ShauryaBist21/Vehicle-Movement/internal/metrics"
	"github.com/ShauryaBist21/Vehicle-Movement/playback"
)

// HealthHandler returns a basic liveness check.
func HealthHandler(deps *Dependencies) fiber.Handler {
	startedAt := time.Now()

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"uptime":  time.Since(startedAt).String(),
			"playing": deps.Engine.IsPlaying(),
		})
	}
}

// LoadRouteHandler accepts a JSON route document and installs it into the
// engine. A malformed waypoint rejects the whole route with a 400.
func LoadRouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		route, err := playback.ParseRoute(c.Body())
		if err != nil {
			metrics.RoutesRejected.Inc()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if err := deps.Engine.LoadRoute(route); err != nil {
			metrics.RoutesRejected.Inc()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		metrics.RoutesLoaded.Inc()
		slog.Info("route loaded", "waypoints", len(route))
		return c.JSON(deps.Engine.Snapshot())
	}
}

// PlayHandler starts playback and makes sure the tick driver is running.
func PlayHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Engine.Play(); err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		// The driver stops itself at route completion; restart it for a
		// fresh session.
		if err := deps.Driver.Start(); err != nil && !errors.Is(err, playback.ErrDriverAlreadyRunning) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(deps.Engine.Snapshot())
	}
}

// PauseHandler freezes playback without touching telemetry.
func PauseHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Engine.Pause(); err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.JSON(deps.Engine.Snapshot())
	}
}

// ResetHandler zeroes playback state while retaining the loaded route.
func ResetHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deps.Engine.Reset()
		return c.JSON(deps.Engine.Snapshot())
	}
}

// SnapshotHandler returns the current position and telemetry.
func SnapshotHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(deps.Engine.Snapshot())
	}
}
