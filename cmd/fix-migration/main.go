// Package main repairs dirty migration state. golang-migrate marks a version
// dirty when a migration starts, and an interrupted run leaves it that way, so
// the next server start or seed fails with "Dirty database version". This
// tool clears the flag so the runner retries the migration cleanly.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/chariot-giving/agapay/internal/config"
	"github.com/chariot-giving/agapay/internal/db"
	"github.com/chariot-giving/agapay/internal/telemetry"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	telemetry.SetupLogger(cfg.Logging.Format, cfg.Logging.Level)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.Database.GetDSN(), 1, 1)
	if err != nil {
		slog.Error("failed to connect to database", "target", cfg.Database.Describe(), "error", err)
		os.Exit(1)
	}
	defer database.Close()

	before, err := db.ClearDirtyFlag(ctx, database)
	if err != nil {
		slog.Error("failed to repair migration state", "error", err)
		database.Close()
		os.Exit(1)
	}

	if before.Dirty {
		slog.Info("cleared dirty migration state", "version", before.Version)
	} else {
		slog.Info("migration state is already clean", "version", before.Version)
	}
}
