// Package models - status.go defines the fixed status domains stored in the
// address_status and bank_address_status Postgres enum types.
package models

import "fmt"

// AddressStatus is the lifecycle state of a mailing address
type AddressStatus string

const (
	AddressStatusActive   AddressStatus = "active"
	AddressStatusInactive AddressStatus = "inactive"
)

// Valid reports whether s is a member of the address_status enum
func (s AddressStatus) Valid() bool {
	return s == AddressStatusActive || s == AddressStatusInactive
}

// Scan implements sql.Scanner; pq returns enum values as []byte.
func (s *AddressStatus) Scan(src any) error {
	v, err := scanEnum(src, "address_status")
	if err != nil {
		return err
	}
	*s = AddressStatus(v)
	return nil
}

// BankAddressStatus is the lifecycle state of a bank account
type BankAddressStatus string

const (
	BankAddressStatusActive   BankAddressStatus = "active"
	BankAddressStatusInactive BankAddressStatus = "inactive"
)

// Valid reports whether s is a member of the bank_address_status enum
func (s BankAddressStatus) Valid() bool {
	return s == BankAddressStatusActive || s == BankAddressStatusInactive
}

// Scan implements sql.Scanner.
func (s *BankAddressStatus) Scan(src any) error {
	v, err := scanEnum(src, "bank_address_status")
	if err != nil {
		return err
	}
	*s = BankAddressStatus(v)
	return nil
}

func scanEnum(src any, typeName string) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("cannot scan %T into %s", src, typeName)
	}
}
