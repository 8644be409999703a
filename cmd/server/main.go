package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/genie-bridge/internal/adapter/cache"
	"github.com/seu-repo/genie-bridge/internal/adapter/engine"
	"github.com/seu-repo/genie-bridge/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/genie-bridge/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/genie-bridge/internal/adapter/location"
	"github.com/seu-repo/genie-bridge/internal/adapter/storage/postgres"
	"github.com/seu-repo/genie-bridge/internal/adapter/tokenizer"
	"github.com/seu-repo/genie-bridge/internal/observability/telemetry"
	"github.com/seu-repo/genie-bridge/internal/service/auth"
	"github.com/seu-repo/genie-bridge/internal/service/bridge"
	"github.com/seu-repo/genie-bridge/pkg/config"
)

const (
	serviceName    = "genie-bridge"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting Genie Bridge",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 3. Initialize OpenTelemetry
	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, serviceVersion, cfg.OpenTelemetry.JaegerEndpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 4. Initialize PostgreSQL (canonical example store)
	db, err := postgres.NewConnection(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer postgres.Close(db)

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// 5. Initialize Redis Cache
	redisCache, err := cache.NewRedisCache(cfg.Redis.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisCache.Close()

	// 6. Initialize Conversation Engine transport (NATS)
	conversationEngine, err := engine.NewNATSEngine(cfg.NATS.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer conversationEngine.Close()

	// 7. Initialize collaborator clients
	tokenizerClient := tokenizer.NewClient(cfg.Tokenizer.URL, cfg.Tokenizer.Timeout, logger)
	locationClient := location.NewClient(cfg.Location.URL, cfg.Location.Timeout, logger)

	// 8. Initialize Services
	exampleRepo := postgres.NewExampleRepository(db, logger)
	authService := auth.NewService(cfg.JWT.Secret, logger)
	resolver := bridge.NewResolver(tokenizerClient, locationClient, logger)
	compiler := bridge.NewCompiler(exampleRepo, resolver, redisCache, cfg.Cache.ExampleTTL, logger)
	bridgeService := bridge.NewService(compiler, conversationEngine, logger)

	// 9. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORS.AllowedOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	if cfg.RateLimiting.Enabled {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimiting.MaxRequests,
			Expiration: cfg.RateLimiting.Window,
		}))
	}
	if cfg.CircuitBreaker.Enabled {
		app.Use(middleware.CircuitBreaker(logger))
	}

	// Health Check Endpoints
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			return c.Status(503).SendString("Database not ready")
		}
		if err := redisCache.Ping(); err != nil {
			return c.Status(503).SendString("Cache not ready")
		}
		return c.SendString("Ready")
	})

	// Metrics endpoint for Prometheus
	app.Get("/metrics", func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		handler(c.Context())
		return nil
	})

	// Webhook route
	alexaHandler := handlers.NewAlexaHandler(bridgeService, authService, logger)
	webhook := app.Group("/api/alexa",
		middleware.Authenticate(authService, logger),
		middleware.Locale(cfg.Bridge.DefaultLocale),
	)
	webhook.Post("/", alexaHandler.Handle)

	// Anything else is a 404 with the error shape callers expect.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Invalid endpoint",
			"code":  "ENOENT",
		})
	})

	// 10. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 11. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}
