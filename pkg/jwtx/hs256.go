package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("jwtx: invalid token")
	ErrEmptyClaims  = errors.New("jwtx: token carries no usable claims")
)

// Signer is anything that can sign a claims payload into a compact token.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a token and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Codec signs and verifies HS256 tokens with a shared service secret. The
// secret is injected, never read from package state.
type Codec struct {
	secret []byte
}

func NewHS256(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

func (c *Codec) Sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Verify fails closed: any structural, signature, or expiry problem comes
// back as ErrInvalidToken; a well-formed token whose payload carries neither
// a subject nor a client id is ErrEmptyClaims.
func (c *Codec) Verify(token string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&Claims{},
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.Subject == "" && claims.ClientID == "" {
		return Claims{}, ErrEmptyClaims
	}

	return *claims, nil
}
