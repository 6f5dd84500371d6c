package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ShauryaBist21/Vehicle-Movement/internal/config"
	"github.com/ShauryaBist21/Vehicle-Movement/internal/logging"
	"github.com/ShauryaBist21/Vehicle-Movement/internal/metrics"
	"github.com/ShauryaBist21/Vehicle-Movement/internal/server"
	"github.com/ShauryaBist21/Vehicle-Movement/playback"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	engine, err := playback.NewEngine(playback.Config{
		TickRate:        cfg.Playback.TickRate(),
		SpeedMultiplier: cfg.Playback.SpeedMultiplier,
		Loop:            cfg.Playback.Loop,
	})
	if err != nil {
		log.Fatalf("playback engine: %v", err)
	}

	if cfg.Playback.RouteFile != "" {
		route, err := playback.ReadRouteFile(cfg.Playback.RouteFile)
		if err != nil {
			log.Fatalf("preload route: %v", err)
		}
		if err := engine.LoadRoute(route); err != nil {
			log.Fatalf("preload route: %v", err)
		}
		slog.Info("route preloaded", "file", cfg.Playback.RouteFile, "waypoints", len(route))
	}

	hub := server.NewHub()
	driver := playback.NewDriver(engine)
	driver.AddCallback(func(snap playback.Snapshot) {
		metrics.ObserveSnapshot(snap.DistanceMeters, snap.SpeedMps)
		hub.Broadcast(snap)
	})

	deps := &server.Dependencies{
		Engine: engine,
		Driver: driver,
		Hub:    hub,
	}

	app := fiber.New(fiber.Config{
		AppName:      "vehicle-movement",
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	})
	app.Use(recover.New())
	app.Use(cors.New())

	server.SetupRoutes(app, deps)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("playback server listening", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("server: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	slog.Info("shutting down", "signal", sig.String())

	if driver.IsRunning() {
		_ = driver.Stop()
		driver.Wait()
	}
	if err := app.Shutdown(); err != nil {
		slog.Error("shutdown", "error", err)
	}
}
