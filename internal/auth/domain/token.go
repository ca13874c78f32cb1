package domain

import "time"

// TokenType discriminates the persisted token records.
type TokenType string

const (
	TokenTypeExchangeCode TokenType = "exchangecode"
	TokenTypeAccess       TokenType = "accesstoken"
	TokenTypeRefresh      TokenType = "refreshtoken"
)

// GrantType enumerates the credential-exchange flows the token endpoint
// accepts. Anything outside this set is an unknown grant.
type GrantType string

const (
	GrantPassword          GrantType = "password"
	GrantClientCredentials GrantType = "client_credentials"
	GrantExchangeCode      GrantType = "exchange_code"
	GrantRefreshToken      GrantType = "refresh_token"
)

// ParseGrantType maps the raw form field onto the closed grant set.
func ParseGrantType(s string) (GrantType, bool) {
	switch GrantType(s) {
	case GrantPassword, GrantClientCredentials, GrantExchangeCode, GrantRefreshToken:
		return GrantType(s), true
	}
	return "", false
}

// Token models a stored token record: an opaque value keyed to an account.
// The store enforces no cross-record invariants; rotation is the caller
// deleting old rows before creating new ones.
type Token struct {
	ID        string
	Type      TokenType
	AccountID string
	Token     string // opaque random value
	ClientID  string
	Grant     GrantType
	CreatedAt time.Time
}

// TokenGrant is what a successful credential exchange produces. Account and
// RefreshToken are empty for client_credentials, which is a terminal branch
// with its own response shape.
type TokenGrant struct {
	Account          *Account
	ClientID         string
	Grant            GrantType
	DeviceID         string
	AccessToken      string // signed JWT, no transport prefix
	RefreshToken     string // opaque, no transport prefix
	ExpiresIn        time.Duration
	RefreshExpiresIn time.Duration
	IssuedAt         time.Time
}
