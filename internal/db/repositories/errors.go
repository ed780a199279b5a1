// errors.go holds helpers for classifying Postgres driver errors.
package repositories

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres SQLSTATE codes the repositories care about.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// IsForeignKeyViolation reports whether err (or anything it wraps) is a
// Postgres foreign_key_violation.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, pgForeignKeyViolation)
}

// IsUniqueViolation reports whether err (or anything it wraps) is a Postgres
// unique_violation.
func IsUniqueViolation(err error) bool {
	return hasCode(err, pgUniqueViolation)
}

func hasCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}
