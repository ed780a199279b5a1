// user_repository.go implements UserRepository, providing lookups and the
// idempotent insert used when seeding accounts.
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chariot-giving/agapay/internal/db/models"
	"github.com/jmoiron/sqlx"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by ID. It returns (nil, nil) when no row exists.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT id, email, created_at FROM users WHERE id = $1`

	user := &models.User{}
	if err := r.db.GetContext(ctx, user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// EnsureUser inserts the user unless a row with the same ID already exists.
// An existing row is left unchanged. It reports whether a row was inserted.
func (r *UserRepository) EnsureUser(ctx context.Context, user *models.User) (bool, error) {
	query := `
		INSERT INTO users (id, email)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`

	res, err := r.db.ExecContext(ctx, query, user.ID, user.Email)
	if err != nil {
		return false, fmt.Errorf("failed to ensure user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to ensure user: %w", err)
	}
	return n > 0, nil
}
