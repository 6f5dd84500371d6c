package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/ShauryaBist21/Vehicle-Movement/internal/metrics"
)

// SetupRoutes registers the REST and WebSocket surface.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Get("/v1/health", HealthHandler(deps))

	v1 := app.Group("/v1")
	v1.Post("/route", LoadRouteHandler(deps))
	v1.Post("/play", PlayHandler(deps))
	v1.Post("/pause", PauseHandler(deps))
	v1.Post("/reset", ResetHandler(deps))
	v1.Get("/snapshot", SnapshotHandler(deps))

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.Hub)))
}
