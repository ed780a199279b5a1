// Package models - address.go defines postal and bank addresses owned by
// organizations and recipients.
package models

import "time"

// Address is a postal address. It is owned by exactly one Organization or
// Recipient, which holds the foreign key.
type Address struct {
	ID         int64         `db:"id"`
	Line1      string        `db:"line1"`
	Line2      *string       `db:"line2"`
	City       string        `db:"city"`
	State      string        `db:"state"`
	PostalCode string        `db:"postal_code"`
	Status     AddressStatus `db:"status"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

// BankAddress is the bank account a Recipient is paid into.
type BankAddress struct {
	ID            int64             `db:"id"`
	AccountNumber string            `db:"account_number"`
	RoutingNumber string            `db:"routing_number"`
	Status        BankAddressStatus `db:"status"`
	UpdatedAt     time.Time         `db:"updated_at"`
}
