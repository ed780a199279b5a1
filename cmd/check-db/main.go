// Package main is a diagnostic tool for checking database connectivity and
// the seeded baseline. It connects with the normal configuration, prints the
// schema version, per-table row counts, and the baseline user, organization,
// and recipient, then exits non-zero if anything is unreachable or missing.
// It is meant for health checks and deployment gates after cmd/seed.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/chariot-giving/agapay/internal/config"
	"github.com/chariot-giving/agapay/internal/db"
	"github.com/chariot-giving/agapay/internal/db/repositories"
	"github.com/chariot-giving/agapay/internal/seed"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.Database.GetDSN(), 2, 1)
	if err != nil {
		slog.Error("failed to connect", "target", cfg.Database.Describe(), "error", err)
		os.Exit(1)
	}

	err = report(ctx, os.Stdout, database, db.GetMigrationVersion)
	database.Close()
	if err != nil {
		slog.Error("check failed", "error", err)
		os.Exit(1)
	}
}

type versionFunc func(context.Context, *sql.DB) (uint, bool, error)

// report writes the diagnostic summary to w. It returns an error when a query
// fails or a baseline row is absent.
func report(ctx context.Context, w io.Writer, database *sqlx.DB, version versionFunc) error {
	v, dirty, err := version(ctx, database.DB)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "=== SCHEMA ===\nversion: %d (dirty: %v)\n", v, dirty)

	counts, err := repositories.Counts(ctx, database)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\n=== ROW COUNTS ===")
	fmt.Fprintf(w, "users:          %d\n", counts.Users)
	fmt.Fprintf(w, "organizations:  %d\n", counts.Organizations)
	fmt.Fprintf(w, "addresses:      %d\n", counts.Addresses)
	fmt.Fprintf(w, "bank_addresses: %d\n", counts.BankAddresses)
	fmt.Fprintf(w, "recipients:     %d\n", counts.Recipients)
	fmt.Fprintf(w, "accounts:       %d\n", counts.Accounts)

	fmt.Fprintln(w, "\n=== BASELINE ===")
	var missing []string

	user, err := repositories.NewUserRepository(database).GetByID(ctx, seed.BaselineUserID)
	if err != nil {
		return err
	}
	if user == nil {
		missing = append(missing, "user")
		fmt.Fprintf(w, "User %d: MISSING\n", seed.BaselineUserID)
	} else {
		fmt.Fprintf(w, "User %d (email: %q)\n", user.ID, user.Email)
	}

	org, err := repositories.NewOrganizationRepository(database).GetByID(ctx, seed.BaselineOrganizationID)
	if err != nil {
		return err
	}
	if org == nil {
		missing = append(missing, "organization")
		fmt.Fprintf(w, "Organization %s: MISSING\n", seed.BaselineOrganizationID)
	} else {
		fmt.Fprintf(w, "Organization %s: %s (EIN %s) at %s, %s\n", org.ID, org.LegalName, org.EIN, org.Address.Line1, org.Address.City)
	}

	rec, err := repositories.NewRecipientRepository(database).GetByID(ctx, uuid.MustParse(seed.BaselineRecipientID))
	if err != nil {
		return err
	}
	if rec == nil {
		missing = append(missing, "recipient")
		fmt.Fprintf(w, "Recipient %s: MISSING\n", seed.BaselineRecipientID)
	} else {
		fmt.Fprintf(w, "Recipient %s: %s (primary: %v, bank: %s)\n", rec.ID, rec.Name, rec.Primary, rec.BankAddress.Status)
	}

	if len(missing) > 0 {
		return fmt.Errorf("baseline rows missing: %v", missing)
	}
	return nil
}
