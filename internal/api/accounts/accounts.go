// Package accounts implements the read-only /v1/accounts endpoints.
package accounts

import (
	"net/http"
	"strconv"
	"time"

	"github.com/chariot-giving/agapay/internal/api/apierr"
	"github.com/chariot-giving/agapay/internal/api/paging"
	"github.com/chariot-giving/agapay/internal/db/models"
	"github.com/chariot-giving/agapay/internal/db/repositories"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Account is the API view of an account
type Account struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	UserID              int64     `json:"user_id"`
	BankAccountID       *string   `json:"bank_account_id"`
	BankAccountNumberID *string   `json:"bank_account_number_id"`
	CreatedAt           time.Time `json:"created_at"`
}

// AccountList is one page of accounts
type AccountList struct {
	Data   []Account         `json:"data"`
	Paging paging.Pagination `json:"paging"`
}

// Handlers serves the account endpoints
type Handlers struct {
	repo *repositories.AccountRepository
}

// NewHandlers creates account handlers over db
func NewHandlers(db *sqlx.DB) *Handlers {
	return &Handlers{repo: repositories.NewAccountRepository(db)}
}

func toAccount(a *models.Account) Account {
	return Account{
		ID:                  strconv.FormatInt(a.ID, 10),
		Name:                a.Name,
		UserID:              a.UserID,
		BankAccountID:       a.BankAccountID,
		BankAccountNumberID: a.BankAccountNumberID,
		CreatedAt:           a.CreatedAt,
	}
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil && id > 0
}

// @Summary      Retrieve an account
// @Tags         Accounts
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "Account ID"
// @Success      200  {object}  Account
// @Failure      400  {object}  apierr.HTTPError  "id is not a positive integer"
// @Failure      404  {object}  apierr.HTTPError  "Account not found"
// @Router       /v1/accounts/{id} [get]
// GetHandler returns a single account
func (h *Handlers) GetHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c.Param("id"))
		if !ok {
			_ = c.Error(apierr.NewBadRequest("account id must be a positive integer", nil))
			return
		}

		account, err := h.repo.GetByID(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(apierr.NewInternal("failed to retrieve account", err))
			return
		}
		if account == nil {
			_ = c.Error(apierr.NewNotFound("account not found", nil))
			return
		}

		c.JSON(http.StatusOK, toAccount(account))
	}
}

// @Summary      List accounts
// @Tags         Accounts
// @Security     Bearer
// @Produce      json
// @Param        user_id  query  int  false  "Owner user ID"
// @Param        limit    query  int  false  "Page size, max 1000 (default 100)"
// @Param        cursor   query  int  false  "ID of the last account on the previous page"
// @Success      200  {object}  AccountList
// @Router       /v1/accounts [get]
// ListHandler returns accounts ordered by ID
// GET /v1/accounts?user_id=0&limit=100&cursor=<id>
func (h *Handlers) ListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		params := repositories.ListAccountsParams{
			Limit: paging.Limit(c, repositories.DefaultAccountPageSize),
		}

		if raw, ok := c.GetQuery("user_id"); ok {
			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				_ = c.Error(apierr.NewBadRequest("user_id must be an integer", err))
				return
			}
			params.UserID = &userID
		}

		cursor := c.Query("cursor")
		if cursor != "" {
			id, ok := parseID(cursor)
			if !ok {
				_ = c.Error(apierr.NewBadRequest("cursor must be an account id", nil))
				return
			}
			params.Cursor = id
		}

		page, err := h.repo.List(c.Request.Context(), params)
		if err != nil {
			_ = c.Error(apierr.NewInternal("failed to list accounts", err))
			return
		}

		data := make([]Account, len(page.Accounts))
		for i, a := range page.Accounts {
			data[i] = toAccount(a)
		}

		c.JSON(http.StatusOK, AccountList{
			Data:   data,
			Paging: paging.New(len(data), cursor, page.NextCursor),
		})
	}
}
