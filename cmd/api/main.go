package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reviewapi/internal/config"
	"reviewapi/internal/database"
	"reviewapi/internal/database/migration"
	handlers "reviewapi/internal/http/handler"
	"reviewapi/internal/http/middleware"
	"reviewapi/internal/logging"
	appotel "reviewapi/internal/otel"
	"reviewapi/internal/repository/sqlstore"
	"reviewapi/internal/service"
	"reviewapi/internal/storage"
)

const shutdownTimeout = 30 * time.Second

// @title Review API
// @version 1.0
// @description Customers, restaurants and the reviews that relate them.
// @BasePath /
func main() {
	cfg := config.Load()
	logger := logging.Default(cfg.Location())

	if err := run(cfg, logger); err != nil {
		logger.Error("server_exit", err, logging.Fields{"component": "server"})
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := appotel.Init(ctx, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Error("tracing_shutdown_failed", err, nil)
		}
	}()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if cfg.MigrateOnStart {
		mg, err := migration.New(ctx, db, cfg.Database.Driver, cfg.Database.Host, logger)
		if err != nil {
			return err
		}
		err = mg.Up(ctx)
		_ = mg.Close()
		if err != nil {
			return err
		}
	}

	// Exports stay disabled (503) without object storage.
	var objStore storage.ExportStore
	if cfg.MinIO.Enabled() {
		objStore, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return fmt.Errorf("failed to initialize object storage: %w", err)
		}
	} else {
		logger.Info("review_exports_disabled", logging.Fields{"component": "storage"})
	}

	dialect := sqlstore.DialectFor(cfg.Database.Driver)
	customerRepo := sqlstore.NewCustomerStore(db, dialect)
	restaurantRepo := sqlstore.NewRestaurantStore(db, dialect)
	reviewRepo := sqlstore.NewReviewStore(db, dialect)

	svcs := handlers.Services{
		Customers:   service.NewCustomerService(customerRepo, restaurantRepo, reviewRepo),
		Restaurants: service.NewRestaurantService(restaurantRepo, customerRepo, reviewRepo),
		Reviews:     service.NewReviewService(reviewRepo, customerRepo, restaurantRepo),
		Exports:     service.NewExportService(objStore, restaurantRepo, customerRepo, reviewRepo, cfg.Export.URLTTL()),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(logger))
	app.Use(metrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	handlers.RegisterRoutes(app, db, svcs)

	app.Get("/swagger/*", handlers.SwaggerDocs())

	addr := ":" + cfg.Port
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.Listen(addr)
	}()

	logger.Info("server_started", logging.Fields{
		"component":       "server",
		"addr":            addr,
		"db_driver":       cfg.Database.Driver,
		"exports_enabled": objStore != nil,
	})

	select {
	case err := <-serverErrors:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("server_shutdown", logging.Fields{"component": "server"})
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server_stopped", logging.Fields{"component": "server"})
	return nil
}
