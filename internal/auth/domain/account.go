package domain

import "time"

// Account is owned by the account-management side of the backend; this
// service only reads it, verifies credentials against it, and rewrites the
// bound device id.
type Account struct {
	ID           string
	Email        string
	PasswordHash string  // argon2 encoded
	DisplayName  string
	DeviceID     *string // bound hardware id, nil when never bound
	Banned       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
