// Package seed populates a fresh store with the baseline dataset a new
// environment needs: one user, one organization with its address, and one
// recipient with its bank account and mailing address.
//
// Every write is create-if-absent keyed on a fixed ID; existing rows are never
// modified, so Run is safe to repeat.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chariot-giving/agapay/internal/db/models"
	"github.com/chariot-giving/agapay/internal/db/repositories"
	"github.com/chariot-giving/agapay/internal/telemetry"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrOrganizationMissing is returned by EnsureRecipient when the recipient's
// organization has not been seeded.
var ErrOrganizationMissing = errors.New("recipient organization does not exist")

// UserStore is the subset of UserRepository the loader uses.
type UserStore interface {
	EnsureUser(ctx context.Context, user *models.User) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// OrganizationStore is the subset of OrganizationRepository the loader uses.
type OrganizationStore interface {
	EnsureOrganization(ctx context.Context, org *models.Organization, addr *models.Address) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Organization, error)
}

// RecipientStore is the subset of RecipientRepository the loader uses.
type RecipientStore interface {
	EnsureRecipient(ctx context.Context, rec *models.Recipient, bank *models.BankAddress, mailing *models.Address) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Recipient, error)
}

// Loader writes the baseline dataset.
type Loader struct {
	users         UserStore
	organizations OrganizationStore
	recipients    RecipientStore
	logger        *slog.Logger
}

// NewLoader returns a Loader backed by the repositories over db.
func NewLoader(db *sqlx.DB, logger *slog.Logger) *Loader {
	return NewLoaderWithStores(
		repositories.NewUserRepository(db),
		repositories.NewOrganizationRepository(db),
		repositories.NewRecipientRepository(db),
		logger,
	)
}

// NewLoaderWithStores returns a Loader over explicit stores.
func NewLoaderWithStores(users UserStore, organizations OrganizationStore, recipients RecipientStore, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		users:         users,
		organizations: organizations,
		recipients:    recipients,
		logger:        logger,
	}
}

// EnsureUser creates the baseline user unless it exists and returns the stored row.
func (l *Loader) EnsureUser(ctx context.Context) (*models.User, error) {
	user := BaselineUser()
	created, err := l.users.EnsureUser(ctx, user)
	if err != nil {
		return nil, err
	}
	if created {
		telemetry.SeedRecordsCreatedTotal.WithLabelValues("user").Inc()
	}

	stored, err := l.users.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("user %d not found after seeding", user.ID)
	}
	l.logger.Info("seeded user", "id", stored.ID, "created", created)
	return stored, nil
}

// EnsureOrganization creates the baseline organization and its address
// unless the organization exists, and returns the stored row.
func (l *Loader) EnsureOrganization(ctx context.Context) (*models.Organization, error) {
	org, addr := BaselineOrganization()
	created, err := l.organizations.EnsureOrganization(ctx, org, addr)
	if err != nil {
		return nil, err
	}
	if created {
		telemetry.SeedRecordsCreatedTotal.WithLabelValues("address").Inc()
		telemetry.SeedRecordsCreatedTotal.WithLabelValues("organization").Inc()
	}

	stored, err := l.organizations.GetByID(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("organization %q not found after seeding", org.ID)
	}
	l.logger.Info("seeded organization", "id", stored.ID, "legal_name", stored.LegalName, "created", created)
	return stored, nil
}

// EnsureRecipient creates the baseline recipient with its bank account and
// mailing address unless the recipient exists, and returns the stored row.
// The baseline organization must already exist; otherwise the error wraps
// ErrOrganizationMissing.
func (l *Loader) EnsureRecipient(ctx context.Context) (*models.Recipient, error) {
	rec, bank, mailing := BaselineRecipient()
	created, err := l.recipients.EnsureRecipient(ctx, rec, bank, mailing)
	if err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: %q: %w", ErrOrganizationMissing, rec.OrganizationID, err)
		}
		return nil, err
	}
	if created {
		telemetry.SeedRecordsCreatedTotal.WithLabelValues("bank_address").Inc()
		telemetry.SeedRecordsCreatedTotal.WithLabelValues("address").Inc()
		telemetry.SeedRecordsCreatedTotal.WithLabelValues("recipient").Inc()
	}

	stored, err := l.recipients.GetByID(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("recipient %s not found after seeding", rec.ID)
	}
	l.logger.Info("seeded recipient", "id", stored.ID, "organization_id", stored.OrganizationID, "created", created)
	return stored, nil
}

// Run seeds users, then organizations, then recipients, stopping at the first
// error. The order is required: recipients reference the organization.
func (l *Loader) Run(ctx context.Context) error {
	start := time.Now()

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"users", func(ctx context.Context) error { _, err := l.EnsureUser(ctx); return err }},
		{"organizations", func(ctx context.Context) error { _, err := l.EnsureOrganization(ctx); return err }},
		{"recipients", func(ctx context.Context) error { _, err := l.EnsureRecipient(ctx); return err }},
	}

	for _, step := range steps {
		l.logger.Info("seeding " + step.name)
		stepStart := time.Now()
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("failed to seed %s: %w", step.name, err)
		}
		telemetry.SeedStepDuration.WithLabelValues(step.name).Observe(time.Since(stepStart).Seconds())
		l.logger.Info("successfully seeded "+step.name, "elapsed", time.Since(start).String())
	}

	l.logger.Info("finished running seed", "elapsed", time.Since(start).String())
	return nil
}
