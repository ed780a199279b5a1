// Package models - account.go defines the Account model: a user's operating
// account, optionally linked to an account held at the partner bank.
package models

import "time"

// Account is owned by one user. The bank identifiers stay nil until the
// account has been opened at the bank.
type Account struct {
	ID                  int64     `db:"id"`
	Name                string    `db:"name"`
	UserID              int64     `db:"user_id"`
	BankAccountID       *string   `db:"bank_account_id"`
	BankAccountNumberID *string   `db:"bank_account_number_id"`
	CreatedAt           time.Time `db:"created_at"`
}
