// Package models - organization.go defines the Organization model: a legal
// entity identified by its EIN, with one registered address.
package models

import "time"

// Organization represents a legal entity (typically a nonprofit)
type Organization struct {
	ID            string    `db:"id"`
	LegalName     string    `db:"legal_name"`
	PreferredName *string   `db:"preferred_name"`
	EIN           string    `db:"ein"`
	AddressID     int64     `db:"address_id"`
	CreatedAt     time.Time `db:"created_at"`

	// Address is populated by joined lookups only
	Address *Address `db:"-"`
}
