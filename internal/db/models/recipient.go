// Package models - recipient.go defines the Recipient model: an account that
// is eligible to receive disbursed grant funds.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Recipient belongs to one Organization and owns one BankAddress and one
// mailing Address.
type Recipient struct {
	ID               uuid.UUID `db:"id"`
	Name             string    `db:"name"`
	Primary          bool      `db:"primary"`
	OrganizationID   string    `db:"organization_id"`
	MailingAddressID int64     `db:"mailing_address_id"`
	BankAddressID    int64     `db:"bank_address_id"`
	CreatedAt        time.Time `db:"created_at"`

	// Populated by joined lookups only
	Organization   *Organization `db:"-"`
	BankAddress    *BankAddress  `db:"-"`
	MailingAddress *Address      `db:"-"`
}
