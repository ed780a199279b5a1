// Package models - user.go defines the User model for platform accounts.
package models

import "time"

// User represents a platform account. IDs are integers assigned by the caller.
type User struct {
	ID        int64     `db:"id"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}
