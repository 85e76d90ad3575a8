package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/transitline/journeyd/internal/adapters/http"
	natsadapter "github.com/transitline/journeyd/internal/adapters/nats"
	"github.com/transitline/journeyd/internal/adapters/postgres"
	"github.com/transitline/journeyd/internal/adapters/predictor"
	"github.com/transitline/journeyd/internal/adapters/valkey"
	"github.com/transitline/journeyd/internal/core/csa"
	"github.com/transitline/journeyd/internal/core/ports"
	"github.com/transitline/journeyd/internal/core/usecases"
	"github.com/transitline/journeyd/internal/pkg/config"
	"github.com/transitline/journeyd/internal/pkg/logging"
	"github.com/transitline/journeyd/internal/pkg/telemetry"
)

func main() {
	verbose := flag.Bool("verbose", false, "log each scored journey's human-readable leg sequence at debug level")
	flag.Parse()

	cfg, err := config.Load("journeyd-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown(ctx)
		}
	}

	// Database: loads the timetable snapshot once at startup.
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	loader := postgres.NewTimetableLoader(db)
	connections, footpaths, stops, err := loader.Load(ctx)
	if err != nil {
		log.Fatalf("load timetable: %v", err)
	}

	store, err := csa.BuildStore(connections, footpaths, stops)
	if err != nil {
		log.Fatalf("build timetable store: %v", err)
	}
	slog.Info("timetable loaded", "connections", len(connections), "footpaths", len(footpaths), "stops", len(stops))

	// Cache
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
	}

	// NATS publisher (observability sink, optional)
	var publisher ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable, journey events will not be published", "error", err)
	} else {
		defer pub.Close()
		publisher = pub
	}

	// Delay predictor: HTTP model if configured, else a constant dummy
	// predictor, both wrapped in a Valkey read-through cache when available.
	var basePredictor ports.DelayPredictor
	if cfg.Journeys.PredictorModelURL != "" {
		basePredictor = predictor.NewHTTPModel(cfg.Journeys.PredictorModelURL)
	} else {
		basePredictor = &predictor.Constant{DelaySeconds: float64(cfg.Journeys.PredictorDummyDelay)}
	}

	var finalPredictor ports.DelayPredictor = basePredictor
	if cache != nil {
		finalPredictor = &predictor.Cached{
			Inner:      basePredictor,
			Cache:      cache,
			TTLSeconds: cfg.Journeys.PredictorCacheTTL,
		}
	}

	journeySvc := usecases.NewJourneyService(store, finalPredictor, publisher)
	journeySvc.Verbose = *verbose

	deps := &http.Dependencies{
		Journeys: journeySvc,
		DB:       db,
		Cache:    cache,
	}
	if pub != nil {
		deps.NATS = pub.Conn()
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024,
		AppName:      "journeyd API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
