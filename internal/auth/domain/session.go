package domain

import "time"

// Session is the descriptor the verify endpoint derives from a bearer
// token's claims. Expiry is recomputed from the claimed creation time and
// the claimed lifetime, not from the wall clock.
type Session struct {
	Token       string
	SessionID   string
	ClientID    string
	AccountID   string
	DisplayName string
	AuthMethod  string
	ExpiresIn   time.Duration
	ExpiresAt   time.Time
	CreatedAt   time.Time
}
