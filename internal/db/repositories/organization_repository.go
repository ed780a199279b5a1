// organization_repository.go implements OrganizationRepository, providing
// organization lookups joined with their address and the transactional
// create-with-address used when seeding.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/chariot-giving/agapay/internal/db/models"
	"github.com/jmoiron/sqlx"
)

// OrganizationRepository handles database operations for organizations
type OrganizationRepository struct {
	db *sqlx.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *sqlx.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// organizationRow is the flattened result of the organization/address join.
type organizationRow struct {
	models.Organization
	AddrLine1      string               `db:"addr_line1"`
	AddrLine2      *string              `db:"addr_line2"`
	AddrCity       string               `db:"addr_city"`
	AddrState      string               `db:"addr_state"`
	AddrPostalCode string               `db:"addr_postal_code"`
	AddrStatus     models.AddressStatus `db:"addr_status"`
	AddrUpdatedAt  time.Time            `db:"addr_updated_at"`
}

func (row *organizationRow) toModel() *models.Organization {
	org := row.Organization
	org.Address = &models.Address{
		ID:         row.AddressID,
		Line1:      row.AddrLine1,
		Line2:      row.AddrLine2,
		City:       row.AddrCity,
		State:      row.AddrState,
		PostalCode: row.AddrPostalCode,
		Status:     row.AddrStatus,
		UpdatedAt:  row.AddrUpdatedAt,
	}
	return &org
}

// GetByID retrieves an organization and its address. It returns (nil, nil)
// when the organization does not exist.
func (r *OrganizationRepository) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	query := `
		SELECT o.id, o.legal_name, o.preferred_name, o.ein, o.address_id, o.created_at,
		       a.line1 AS addr_line1, a.line2 AS addr_line2, a.city AS addr_city,
		       a.state AS addr_state, a.postal_code AS addr_postal_code,
		       a.status AS addr_status, a.updated_at AS addr_updated_at
		FROM organizations o
		JOIN addresses a ON a.id = o.address_id
		WHERE o.id = $1
	`

	var row organizationRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return row.toModel(), nil
}

// EnsureOrganization creates the organization together with its address in
// one transaction unless an organization with the same ID already exists, in
// which case nothing is written. It reports whether rows were inserted and,
// on insert, fills org.AddressID and addr.ID.
func (r *OrganizationRepository) EnsureOrganization(ctx context.Context, org *models.Organization, addr *models.Address) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM organizations WHERE id = $1)`, org.ID); err != nil {
		return false, fmt.Errorf("failed to check organization: %w", err)
	}
	if exists {
		return false, nil
	}

	addressID, err := insertAddress(ctx, tx, addr)
	if err != nil {
		return false, err
	}

	query := `
		INSERT INTO organizations (id, legal_name, preferred_name, ein, address_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	res, err := tx.ExecContext(ctx, query, org.ID, org.LegalName, org.PreferredName, org.EIN, addressID)
	if err != nil {
		return false, fmt.Errorf("failed to create organization: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to create organization: %w", err)
	}
	if n == 0 {
		// A concurrent writer won the race; the deferred rollback discards the address.
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit organization: %w", err)
	}

	addr.ID = addressID
	org.AddressID = addressID
	return true, nil
}

// insertAddress writes addr inside tx and returns the generated ID.
func insertAddress(ctx context.Context, tx *sqlx.Tx, addr *models.Address) (int64, error) {
	if !addr.Status.Valid() {
		return 0, fmt.Errorf("invalid address status: %q", addr.Status)
	}

	query := `
		INSERT INTO addresses (line1, line2, city, state, postal_code, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id int64
	if err := tx.GetContext(ctx, &id, query,
		addr.Line1, addr.Line2, addr.City, addr.State, addr.PostalCode, addr.Status,
	); err != nil {
		return 0, fmt.Errorf("failed to create address: %w", err)
	}
	return id, nil
}
