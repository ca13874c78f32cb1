package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/driftpeak/helios/pkg/cryptox"
)

// Default token TTL constants for the token endpoint.
const (
	// DefaultAccessTokenTTL is the lifetime the game client expects for
	// access tokens.
	DefaultAccessTokenTTL = time.Hour

	// DefaultRefreshTokenTTL is the lifetime advertised for refresh tokens.
	DefaultRefreshTokenTTL = 24 * time.Hour

	// DefaultExchangeCodeTTL is the lifetime of signed exchange codes.
	DefaultExchangeCodeTTL = 5 * time.Minute

	// PaddingSize is the byte length of the random filler claim.
	PaddingSize = 128

	// SessionIDSize is the byte length of the random "jti" session id.
	SessionIDSize = 32
)

// Auth method values carried in the "am" claim. They mirror the grant that
// produced the token so old clients can display the login source.
const (
	AMPassword          = "password"
	AMExchangeCode      = "exchange_code"
	AMRefreshToken      = "refresh_token"
	AMClientCredentials = "client_credentials"
)

// Claims is the payload of every self-contained token this service signs.
// Field names are part of the wire contract with the game client: keep them
// additive.
type Claims struct {
	jwt.RegisteredClaims

	// ClientID derived from the Basic authorization header of the request
	// that minted the token.
	ClientID string `json:"clid,omitempty"`

	// Padding is random base64 filler. It is never consumed, the client's
	// servers shipped it so ours do too.
	Padding string `json:"p,omitempty"`

	// AuthMethod records the grant that produced this token.
	AuthMethod string `json:"am,omitempty"`

	// CreationDate is a human-readable issue timestamp, used by session
	// verification to recompute expiry.
	CreationDate string `json:"creation_date,omitempty"`
}

// NewAccessClaims builds the claims for a signed access token.
func NewAccessClaims(subject, clientID, authMethod string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewSessionID(),
		},
		ClientID:     clientID,
		Padding:      newPadding(),
		AuthMethod:   authMethod,
		CreationDate: FormatCreationDate(now),
	}
}

// NewClientClaims builds the claims for a client_credentials token: client
// identity and filler only, no subject.
func NewClientClaims(clientID string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewSessionID(),
		},
		ClientID:     clientID,
		Padding:      newPadding(),
		AuthMethod:   AMClientCredentials,
		CreationDate: FormatCreationDate(now),
	}
}

// NewExchangeClaims builds the claims for a signed exchange code. The
// subject doubles as the one-shot code: redeeming resolves it straight to an
// account id.
//
// The server only redeems signed codes; modern launchers derive them from
// their own access token, and the createExchangeCode endpoint hands legacy
// builds opaque store-backed codes instead. Issuance lives here for clients
// and tooling that mint their own.
func NewExchangeClaims(subject, clientID string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewSessionID(),
		},
		ClientID:     clientID,
		Padding:      newPadding(),
		AuthMethod:   AMExchangeCode,
		CreationDate: FormatCreationDate(now),
	}
}

// NewSessionID returns the random hex identifier used for the "jti" claim.
func NewSessionID() string {
	return cryptox.MustGenerateHex(SessionIDSize)
}

// FormatCreationDate renders the human-readable issue timestamp.
func FormatCreationDate(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// ParseCreationDate is the inverse of FormatCreationDate.
func ParseCreationDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02T15:04:05.000Z", s)
}

// Lifetime returns the claimed lifetime (exp - iat), or 0 when either claim
// is missing.
func (c *Claims) Lifetime() time.Duration {
	if c.ExpiresAt == nil || c.IssuedAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(c.IssuedAt.Time)
}

func newPadding() string {
	p, err := cryptox.GeneratePadding(PaddingSize)
	if err != nil {
		panic("jwtx: " + err.Error())
	}
	return p
}
