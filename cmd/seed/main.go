// Package main is the seed command. It connects to the configured database,
// optionally applies pending migrations, and writes the baseline user,
// organization, and recipient a fresh environment needs. Re-running it against
// a seeded database is a no-op.
//
// Exit status is 0 on success and 1 on any failure.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/chariot-giving/agapay/internal/config"
	"github.com/chariot-giving/agapay/internal/db"
	"github.com/chariot-giving/agapay/internal/seed"
	"github.com/chariot-giving/agapay/internal/telemetry"
	"github.com/jmoiron/sqlx"
)

// connector opens the store described by cfg.
type connector func(ctx context.Context, cfg *config.DatabaseConfig) (*sqlx.DB, error)

// migrator brings the schema up to date.
type migrator func(ctx context.Context, db *sql.DB) error

func connectDatabase(ctx context.Context, cfg *config.DatabaseConfig) (*sqlx.DB, error) {
	return db.Connect(ctx, cfg.GetDSN(), cfg.MaxConnections, cfg.MinIdleConnections)
}

func migrateUp(ctx context.Context, database *sql.DB) error {
	return db.RunMigrations(ctx, database, "up")
}

func main() {
	os.Exit(realMain())
}

func realMain() int {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	telemetry.SetupLogger(cfg.Logging.Format, cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, connectDatabase, migrateUp, slog.Default()); err != nil {
		slog.Error("seed failed", "error", err)
		return 1
	}
	return 0
}

// run performs one seed pass. The database handle it opens is closed before
// it returns, on success and on failure.
func run(ctx context.Context, cfg *config.Config, connect connector, migrateSchema migrator, logger *slog.Logger) error {
	logger.Info("connecting to database", "target", cfg.Database.Describe())
	database, err := connect(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}()

	if cfg.Seed.Migrate {
		logger.Info("running database migrations")
		if err := migrateSchema(ctx, database.DB); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return seed.NewLoader(database, logger).Run(ctx)
}
