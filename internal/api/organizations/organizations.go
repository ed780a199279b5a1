// Package organizations implements the read-only /v1/organizations endpoint.
package organizations

import (
	"net/http"
	"time"

	"github.com/chariot-giving/agapay/internal/api/apierr"
	"github.com/chariot-giving/agapay/internal/db/models"
	"github.com/chariot-giving/agapay/internal/db/repositories"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Organization is the API view of an organization and its mailing address.
type Organization struct {
	ID            string    `json:"id"`
	LegalName     string    `json:"legal_name"`
	PreferredName *string   `json:"preferred_name"`
	EIN           string    `json:"ein"`
	Address       *Address  `json:"address,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Address is the API view of a mailing address.
type Address struct {
	Line1      string               `json:"line1"`
	Line2      *string              `json:"line2,omitempty"`
	City       string               `json:"city"`
	State      string               `json:"state"`
	PostalCode string               `json:"postal_code"`
	Status     models.AddressStatus `json:"status"`
}

// Handlers serves the organization endpoints
type Handlers struct {
	repo *repositories.OrganizationRepository
}

// NewHandlers creates organization handlers over db
func NewHandlers(db *sqlx.DB) *Handlers {
	return &Handlers{repo: repositories.NewOrganizationRepository(db)}
}

func toOrganization(org *models.Organization) Organization {
	out := Organization{
		ID:            org.ID,
		LegalName:     org.LegalName,
		PreferredName: org.PreferredName,
		EIN:           org.EIN,
		CreatedAt:     org.CreatedAt,
	}
	if a := org.Address; a != nil {
		out.Address = &Address{
			Line1:      a.Line1,
			Line2:      a.Line2,
			City:       a.City,
			State:      a.State,
			PostalCode: a.PostalCode,
			Status:     a.Status,
		}
	}
	return out
}

// @Summary      Retrieve an organization
// @Tags         Organizations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Organization ID"
// @Success      200  {object}  Organization
// @Failure      404  {object}  apierr.HTTPError  "Organization not found"
// @Router       /v1/organizations/{id} [get]
// GetHandler returns a single organization with its address
func (h *Handlers) GetHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		org, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			_ = c.Error(apierr.NewInternal("failed to retrieve organization", err))
			return
		}
		if org == nil {
			_ = c.Error(apierr.NewNotFound("organization not found", nil))
			return
		}

		c.JSON(http.StatusOK, toOrganization(org))
	}
}
