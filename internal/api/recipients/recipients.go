// Package recipients implements the read-only /v1/recipients endpoints.
package recipients

import (
	"net/http"
	"time"

	"github.com/chariot-giving/agapay/internal/api/apierr"
	"github.com/chariot-giving/agapay/internal/api/paging"
	"github.com/chariot-giving/agapay/internal/db/models"
	"github.com/chariot-giving/agapay/internal/db/repositories"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Recipient is the API view of a recipient. Name and EIN are the
// organization's; Status is the bank account's.
type Recipient struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	EIN       string                   `json:"ein"`
	Primary   bool                     `json:"primary"`
	Status    models.BankAddressStatus `json:"status,omitempty"`
	CreatedAt time.Time                `json:"created_at"`

	// MailingAddress is only populated on single-recipient reads.
	MailingAddress *Address `json:"mailing_address,omitempty"`
}

// Address is where a recipient receives mailed checks and correspondence.
type Address struct {
	Line1      string               `json:"line1"`
	Line2      *string              `json:"line2,omitempty"`
	City       string               `json:"city"`
	State      string               `json:"state"`
	PostalCode string               `json:"postal_code"`
	Status     models.AddressStatus `json:"status"`
}

// RecipientList is one page of recipients.
type RecipientList struct {
	Data   []Recipient        `json:"data"`
	Paging paging.Pagination `json:"paging"`
}

// Handlers serves the recipient endpoints
type Handlers struct {
	repo *repositories.RecipientRepository
}

// NewHandlers creates recipient handlers over db
func NewHandlers(db *sqlx.DB) *Handlers {
	return &Handlers{repo: repositories.NewRecipientRepository(db)}
}

func toRecipient(rec *models.Recipient) Recipient {
	out := Recipient{
		ID:        rec.ID.String(),
		Name:      rec.Name,
		Primary:   rec.Primary,
		CreatedAt: rec.CreatedAt,
	}
	if rec.Organization != nil {
		out.Name = rec.Organization.LegalName
		out.EIN = rec.Organization.EIN
	}
	if rec.BankAddress != nil {
		out.Status = rec.BankAddress.Status
	}
	return out
}

func toAddress(a *models.Address) *Address {
	if a == nil {
		return nil
	}
	return &Address{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Status:     a.Status,
	}
}

// @Summary      Retrieve a recipient
// @Tags         Recipients
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Recipient ID (UUID)"
// @Success      200  {object}  Recipient
// @Failure      400  {object}  apierr.HTTPError  "id is not a UUID"
// @Failure      404  {object}  apierr.HTTPError  "Recipient not found"
// @Router       /v1/recipients/{id} [get]
// GetHandler returns a single recipient
func (h *Handlers) GetHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			_ = c.Error(apierr.NewBadRequest("recipient id must be a UUID", err))
			return
		}

		rec, err := h.repo.GetByID(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(apierr.NewInternal("failed to retrieve recipient", err))
			return
		}
		if rec == nil {
			_ = c.Error(apierr.NewNotFound("recipient not found", nil))
			return
		}

		mailing, err := h.repo.GetMailingAddress(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(apierr.NewInternal("failed to retrieve recipient mailing address", err))
			return
		}

		out := toRecipient(rec)
		out.MailingAddress = toAddress(mailing)
		c.JSON(http.StatusOK, out)
	}
}

// @Summary      List recipients
// @Tags         Recipients
// @Security     Bearer
// @Produce      json
// @Param        ein     query  string  false  "Organization EIN"
// @Param        limit   query  int     false  "Page size, max 1000 (default 100)"
// @Param        cursor  query  string  false  "ID of the last recipient on the previous page"
// @Success      200  {object}  RecipientList
// @Router       /v1/recipients [get]
// ListHandler returns recipients ordered by ID
// GET /v1/recipients?ein=931372175&limit=100&cursor=<id>
func (h *Handlers) ListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := paging.Limit(c, repositories.DefaultRecipientPageSize)

		cursor := c.Query("cursor")
		if cursor != "" {
			if _, err := uuid.Parse(cursor); err != nil {
				_ = c.Error(apierr.NewBadRequest("cursor must be a recipient id", err))
				return
			}
		}

		page, err := h.repo.List(c.Request.Context(), repositories.ListRecipientsParams{
			EIN:    c.Query("ein"),
			Limit:  limit,
			Cursor: cursor,
		})
		if err != nil {
			_ = c.Error(apierr.NewInternal("failed to list recipients", err))
			return
		}

		data := make([]Recipient, len(page.Recipients))
		for i, rec := range page.Recipients {
			data[i] = toRecipient(rec)
		}

		c.JSON(http.StatusOK, RecipientList{
			Data:   data,
			Paging: paging.New(len(data), cursor, page.NextCursor),
		})
	}
}
