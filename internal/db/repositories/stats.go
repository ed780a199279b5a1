// stats.go provides row counts for the grant tables, used by diagnostics.
package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// TableCounts holds the number of rows in each grant table.
type TableCounts struct {
	Users         int64 `db:"users"`
	Organizations int64 `db:"organizations"`
	Addresses     int64 `db:"addresses"`
	BankAddresses int64 `db:"bank_addresses"`
	Recipients    int64 `db:"recipients"`
	Accounts      int64 `db:"accounts"`
}

// Counts returns row counts for every grant table in a single round trip.
func Counts(ctx context.Context, db *sqlx.DB) (*TableCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users)          AS users,
			(SELECT COUNT(*) FROM organizations)  AS organizations,
			(SELECT COUNT(*) FROM addresses)      AS addresses,
			(SELECT COUNT(*) FROM bank_addresses) AS bank_addresses,
			(SELECT COUNT(*) FROM recipients)     AS recipients,
			(SELECT COUNT(*) FROM accounts)       AS accounts
	`
	counts := &TableCounts{}
	if err := db.GetContext(ctx, counts, query); err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}
	return counts, nil
}
