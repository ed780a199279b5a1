// recipient_repository.go implements RecipientRepository, providing recipient
// lookups joined with organization and bank account, keyset-paginated listing,
// and the transactional create-with-addresses used when seeding.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/chariot-giving/agapay/internal/db/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	// DefaultRecipientPageSize is used when a list request has no usable limit
	DefaultRecipientPageSize = 100
	// MaxRecipientPageSize caps a single list page
	MaxRecipientPageSize = 1000
)

// RecipientRepository handles database operations for recipients
type RecipientRepository struct {
	db *sqlx.DB
}

// NewRecipientRepository creates a new recipient repository
func NewRecipientRepository(db *sqlx.DB) *RecipientRepository {
	return &RecipientRepository{db: db}
}

// ListRecipientsParams filters and paginates ListRecipients.
type ListRecipientsParams struct {
	// EIN restricts results to recipients whose organization has this EIN
	EIN string
	// Limit is clamped to [1, MaxRecipientPageSize]; zero means DefaultRecipientPageSize
	Limit int
	// Cursor is the last recipient ID of the previous page
	Cursor string
}

// ListRecipientsResult is one page of recipients.
type ListRecipientsResult struct {
	Recipients []*models.Recipient
	// NextCursor is empty when there are no further pages
	NextCursor string
}

const recipientSelect = `
	SELECT r.id, r.name, r."primary", r.organization_id, r.mailing_address_id,
	       r.bank_address_id, r.created_at,
	       o.legal_name AS org_legal_name, o.preferred_name AS org_preferred_name,
	       o.ein AS org_ein, o.address_id AS org_address_id, o.created_at AS org_created_at,
	       b.account_number AS bank_account_number, b.routing_number AS bank_routing_number,
	       b.status AS bank_status, b.updated_at AS bank_updated_at
	FROM recipients r
	JOIN organizations o ON o.id = r.organization_id
	JOIN bank_addresses b ON b.id = r.bank_address_id
`

// recipientRow is the flattened result of the recipient joins.
type recipientRow struct {
	models.Recipient
	OrgLegalName      string                   `db:"org_legal_name"`
	OrgPreferredName  *string                  `db:"org_preferred_name"`
	OrgEIN            string                   `db:"org_ein"`
	OrgAddressID      int64                    `db:"org_address_id"`
	OrgCreatedAt      time.Time                `db:"org_created_at"`
	BankAccountNumber string                   `db:"bank_account_number"`
	BankRoutingNumber string                   `db:"bank_routing_number"`
	BankStatus        models.BankAddressStatus `db:"bank_status"`
	BankUpdatedAt     time.Time                `db:"bank_updated_at"`
}

func (row *recipientRow) toModel() *models.Recipient {
	rec := row.Recipient
	rec.Organization = &models.Organization{
		ID:            row.OrganizationID,
		LegalName:     row.OrgLegalName,
		PreferredName: row.OrgPreferredName,
		EIN:           row.OrgEIN,
		AddressID:     row.OrgAddressID,
		CreatedAt:     row.OrgCreatedAt,
	}
	rec.BankAddress = &models.BankAddress{
		ID:            row.BankAddressID,
		AccountNumber: row.BankAccountNumber,
		RoutingNumber: row.BankRoutingNumber,
		Status:        row.BankStatus,
		UpdatedAt:     row.BankUpdatedAt,
	}
	return &rec
}

// GetByID retrieves a recipient with its organization and bank account.
// It returns (nil, nil) when the recipient does not exist.
func (r *RecipientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Recipient, error) {
	var row recipientRow
	if err := r.db.GetContext(ctx, &row, recipientSelect+` WHERE r.id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipient: %w", err)
	}
	return row.toModel(), nil
}

// List returns recipients ordered by ID, starting after params.Cursor.
func (r *RecipientRepository) List(ctx context.Context, params ListRecipientsParams) (*ListRecipientsResult, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultRecipientPageSize
	}
	if limit > MaxRecipientPageSize {
		limit = MaxRecipientPageSize
	}

	var (
		where []string
		args  []interface{}
	)
	if params.EIN != "" {
		args = append(args, params.EIN)
		where = append(where, fmt.Sprintf("o.ein = $%d", len(args)))
	}
	if params.Cursor != "" {
		args = append(args, params.Cursor)
		where = append(where, fmt.Sprintf("r.id > $%d", len(args)))
	}

	query := recipientSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY r.id LIMIT $%d", len(args))

	var rows []recipientRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list recipients: %w", err)
	}

	result := &ListRecipientsResult{Recipients: make([]*models.Recipient, 0, len(rows))}
	for i := range rows {
		result.Recipients = append(result.Recipients, rows[i].toModel())
	}
	if len(rows) == limit {
		result.NextCursor = rows[len(rows)-1].ID.String()
	}
	return result, nil
}

// EnsureRecipient creates the recipient together with its bank account and
// mailing address in one transaction unless a recipient with the same ID
// already exists, in which case nothing is written. rec.OrganizationID must
// reference an existing organization; otherwise the insert fails with a
// foreign key violation (see IsForeignKeyViolation).
func (r *RecipientRepository) EnsureRecipient(ctx context.Context, rec *models.Recipient, bank *models.BankAddress, mailing *models.Address) (bool, error) {
	if !bank.Status.Valid() {
		return false, fmt.Errorf("invalid bank address status: %q", bank.Status)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM recipients WHERE id = $1)`, rec.ID); err != nil {
		return false, fmt.Errorf("failed to check recipient: %w", err)
	}
	if exists {
		return false, nil
	}

	var bankID int64
	if err := tx.GetContext(ctx, &bankID, `
		INSERT INTO bank_addresses (account_number, routing_number, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`, bank.AccountNumber, bank.RoutingNumber, bank.Status); err != nil {
		return false, fmt.Errorf("failed to create bank address: %w", err)
	}

	mailingID, err := insertAddress(ctx, tx, mailing)
	if err != nil {
		return false, err
	}

	query := `
		INSERT INTO recipients (id, name, "primary", organization_id, mailing_address_id, bank_address_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`
	res, err := tx.ExecContext(ctx, query, rec.ID, rec.Name, rec.Primary, rec.OrganizationID, mailingID, bankID)
	if err != nil {
		return false, fmt.Errorf("failed to create recipient: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to create recipient: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit recipient: %w", err)
	}

	bank.ID = bankID
	mailing.ID = mailingID
	rec.BankAddressID = bankID
	rec.MailingAddressID = mailingID
	return true, nil
}

// GetMailingAddress retrieves the mailing address of a recipient.
func (r *RecipientRepository) GetMailingAddress(ctx context.Context, id uuid.UUID) (*models.Address, error) {
	query := `
		SELECT a.id, a.line1, a.line2, a.city, a.state, a.postal_code, a.status, a.updated_at
		FROM addresses a
		JOIN recipients r ON r.mailing_address_id = a.id
		WHERE r.id = $1
	`
	addr := &models.Address{}
	if err := r.db.GetContext(ctx, addr, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get mailing address: %w", err)
	}
	return addr, nil
}
