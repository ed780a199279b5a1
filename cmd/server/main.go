// Package main is the entry point for the agapay API server binary.
// It dispatches three subcommands (serve, migrate, version) via a switch on
// os.Args. serve applies pending migrations on startup before accepting
// traffic.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chariot-giving/agapay/internal/api"
	"github.com/chariot-giving/agapay/internal/config"
	"github.com/chariot-giving/agapay/internal/db"
	"github.com/chariot-giving/agapay/internal/safego"
	"github.com/chariot-giving/agapay/internal/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("agapay server failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	command := "serve"
	if len(args) > 0 {
		command = args[0]
	}

	if command == "version" {
		fmt.Printf("agapay v%s\n", api.Version)
		return nil
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	telemetry.SetupLogger(cfg.Logging.Format, cfg.Logging.Level)

	switch command {
	case "serve":
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	case "migrate":
		if len(args) < 2 {
			return fmt.Errorf("usage: server migrate <up|down>")
		}
		return runMigrations(cfg, args[1])
	default:
		return fmt.Errorf("unknown command: %s\nAvailable commands: serve, migrate, version", command)
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	slog.Info("connecting to database", "target", cfg.Database.Describe())
	database, err := db.Connect(ctx, cfg.Database.GetDSN(), cfg.Database.MaxConnections, cfg.Database.MinIdleConnections)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	telemetry.StartDBStatsCollector(ctx, database.DB, 15*time.Second)

	slog.Info("running database migrations")
	if err := db.RunMigrations(ctx, database.DB, "up"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if version, dirty, err := db.GetMigrationVersion(ctx, database.DB); err != nil {
		slog.Warn("failed to get migration version", "error", err)
	} else {
		slog.Info("database schema ready", "version", version, "dirty", dirty)
	}

	if cfg.Auth.APIKeyHash == "" {
		slog.Warn("auth.api_key_hash is not set; /v1 routes will answer 503")
	}

	// Metrics are served on a side port so they never pass through the public router.
	var metricsServer *http.Server
	if cfg.Telemetry.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Telemetry.Metrics.PrometheusPort),
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		safego.Go("metrics-server", func() {
			slog.Info("starting Prometheus metrics server", "addr", metricsServer.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server error", "error", err)
			}
		})
	}

	router, bgServices := api.NewRouter(cfg, database, slog.Default())
	server := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			bgServices.Shutdown()
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if metricsServer != nil {
		_ = metricsServer.Shutdown(shutdownCtx)
	}
	bgServices.Shutdown()

	slog.Info("server stopped gracefully")
	return nil
}

func runMigrations(cfg *config.Config, direction string) error {
	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.Database.GetDSN(), cfg.Database.MaxConnections, cfg.Database.MinIdleConnections)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	slog.Info("running migrations", "direction", direction)
	if err := db.RunMigrations(ctx, database.DB, direction); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	version, dirty, err := db.GetMigrationVersion(ctx, database.DB)
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	slog.Info("migration completed", "version", version, "dirty", dirty)
	return nil
}
