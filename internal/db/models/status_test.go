package models

import "testing"

func TestAddressStatus_Valid(t *testing.T) {
	tests := []struct {
		in   AddressStatus
		want bool
	}{
		{AddressStatusActive, true},
		{AddressStatusInactive, true},
		{"", false},
		{"closed", false},
	}
	for _, tt := range tests {
		if got := tt.in.Valid(); got != tt.want {
			t.Errorf("AddressStatus(%q).Valid() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBankAddressStatus_Valid(t *testing.T) {
	if !BankAddressStatusActive.Valid() || !BankAddressStatusInactive.Valid() {
		t.Error("expected both enum members to be valid")
	}
	if BankAddressStatus("frozen").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}

func TestStatus_Scan(t *testing.T) {
	var a AddressStatus
	if err := a.Scan([]byte("inactive")); err != nil {
		t.Fatalf("Scan([]byte) error: %v", err)
	}
	if a != AddressStatusInactive {
		t.Errorf("Scan([]byte) = %q, want inactive", a)
	}

	var b BankAddressStatus
	if err := b.Scan("active"); err != nil {
		t.Fatalf("Scan(string) error: %v", err)
	}
	if b != BankAddressStatusActive {
		t.Errorf("Scan(string) = %q, want active", b)
	}

	if err := b.Scan(42); err == nil {
		t.Error("Scan(int) expected error")
	}
}
