package seed

import (
	"github.com/chariot-giving/agapay/internal/db/models"
	"github.com/google/uuid"
)

// Keys of the baseline rows. Other environments and fixtures refer to these.
const (
	BaselineUserID         int64 = 0
	BaselineOrganizationID       = "org_1"
	BaselineRecipientID          = "e8ff4be1-4603-4bb8-95f3-953c7b95882b"
)

// BaselineUser returns the platform's system user.
func BaselineUser() *models.User {
	return &models.User{ID: BaselineUserID, Email: ""}
}

// BaselineOrganization returns the operating organization and its registered address.
func BaselineOrganization() (*models.Organization, *models.Address) {
	line2 := "Suite 600"
	return &models.Organization{
			ID:        BaselineOrganizationID,
			LegalName: "Chariot Giving Network",
			EIN:       "931372175",
		}, &models.Address{
			Line1:      "850 7th Ave",
			Line2:      &line2,
			City:       "New York",
			State:      "NY",
			PostalCode: "10019",
			Status:     models.AddressStatusActive,
		}
}

// BaselineRecipient returns the primary recipient of the operating
// organization with its bank account and mailing address.
func BaselineRecipient() (*models.Recipient, *models.BankAddress, *models.Address) {
	return &models.Recipient{
			ID:             uuid.MustParse(BaselineRecipientID),
			Name:           "Chariot Giving Network",
			Primary:        true,
			OrganizationID: BaselineOrganizationID,
		}, &models.BankAddress{
			AccountNumber: "00100000132239778",
			RoutingNumber: "028000121",
			Status:        models.BankAddressStatusActive,
		}, &models.Address{
			Line1:      "PO Box 2235",
			City:       "New York",
			State:      "NY",
			PostalCode: "10101",
			Status:     models.AddressStatusActive,
		}
}
