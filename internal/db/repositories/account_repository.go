// account_repository.go implements AccountRepository: account lookups and
// keyset-paginated listing, optionally filtered by owner.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/chariot-giving/agapay/internal/db/models"
	"github.com/jmoiron/sqlx"
)

const (
	DefaultAccountPageSize = 100
	MaxAccountPageSize     = 1000
)

// AccountRepository handles database operations for accounts
type AccountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// ListAccountsParams filters and paginates List.
type ListAccountsParams struct {
	// UserID restricts results to one owner when non-nil. User 0 is a valid owner.
	UserID *int64
	// Limit is clamped to [1, MaxAccountPageSize]; zero means DefaultAccountPageSize
	Limit int
	// Cursor is the last account ID of the previous page; zero starts at the beginning
	Cursor int64
}

// ListAccountsResult is one page of accounts.
type ListAccountsResult struct {
	Accounts []*models.Account
	// NextCursor is empty when there are no further pages
	NextCursor string
}

const accountSelect = `
	SELECT id, name, user_id, bank_account_id, bank_account_number_id, created_at
	FROM accounts
`

// GetByID retrieves an account by ID. It returns (nil, nil) when no row exists.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	account := &models.Account{}
	if err := r.db.GetContext(ctx, account, accountSelect+` WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// List returns accounts ordered by ID, starting after params.Cursor.
func (r *AccountRepository) List(ctx context.Context, params ListAccountsParams) (*ListAccountsResult, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultAccountPageSize
	}
	if limit > MaxAccountPageSize {
		limit = MaxAccountPageSize
	}

	var (
		where []string
		args  []interface{}
	)
	if params.UserID != nil {
		args = append(args, *params.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if params.Cursor > 0 {
		args = append(args, params.Cursor)
		where = append(where, fmt.Sprintf("id > $%d", len(args)))
	}

	query := accountSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d", len(args))

	accounts := []*models.Account{}
	if err := r.db.SelectContext(ctx, &accounts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	result := &ListAccountsResult{Accounts: accounts}
	if len(accounts) == limit {
		result.NextCursor = strconv.FormatInt(accounts[len(accounts)-1].ID, 10)
	}
	return result, nil
}
