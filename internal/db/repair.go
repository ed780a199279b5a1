package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// MigrationState is the single row golang-migrate keeps in schema_migrations.
type MigrationState struct {
	Version int64 `db:"version"`
	Dirty   bool  `db:"dirty"`
}

// ErrNoMigrationState is returned when schema_migrations has no row.
var ErrNoMigrationState = errors.New("schema_migrations has no rows")

// GetMigrationState reads schema_migrations directly, without a migrate instance.
func GetMigrationState(ctx context.Context, db *sqlx.DB) (*MigrationState, error) {
	var state MigrationState
	if err := db.GetContext(ctx, &state, `SELECT version, dirty FROM schema_migrations LIMIT 1`); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoMigrationState
		}
		return nil, fmt.Errorf("failed to read migration state: %w", err)
	}
	return &state, nil
}

// ClearDirtyFlag marks the recorded migration as clean so the runner retries
// it on the next start. It reports the state found before the repair. A
// clean database is left untouched.
//
// Only use this after confirming by hand that the interrupted migration left
// no partial changes behind.
func ClearDirtyFlag(ctx context.Context, db *sqlx.DB) (*MigrationState, error) {
	state, err := GetMigrationState(ctx, db)
	if err != nil {
		return nil, err
	}
	if !state.Dirty {
		return state, nil
	}
	if _, err := db.ExecContext(ctx, `UPDATE schema_migrations SET dirty = false`); err != nil {
		return nil, fmt.Errorf("failed to clear dirty flag: %w", err)
	}
	return state, nil
}
