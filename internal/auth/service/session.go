package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/driftpeak/helios/internal/auth/domain"
	"github.com/driftpeak/helios/internal/auth/store"
	"github.com/driftpeak/helios/pkg/cryptox"
	"github.com/driftpeak/helios/pkg/idx"
	"github.com/driftpeak/helios/pkg/jwtx"
)

var ErrInvalidSecret = errors.New("invalid_secret")

// SessionService handles the verify/kill pair and privileged exchange-code
// issuance.
type SessionService struct {
	Store  store.Store
	Tokens store.Tokens
	Codec  *jwtx.Codec

	// Secret is the shared signing secret. createExchangeCode callers must
	// present it as endpointAccessToken.
	Secret string

	// ExchangeTTL is the lifetime granted to issued exchange codes before
	// housekeeping sweeps them.
	ExchangeTTL time.Duration
}

// Verify decodes a bearer token and returns its session descriptor. Expiry
// is recomputed from the claimed creation time and claimed lifetime, so a
// descriptor for an already-lapsed token reports a past expiry rather than
// failing.
func (s *SessionService) Verify(ctx context.Context, bearer string) (*domain.Session, error) {
	token := strings.TrimPrefix(bearer, "eg1~")

	claims, err := s.Codec.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	account, err := s.Store.Accounts().GetAccountByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	created, err := jwtx.ParseCreationDate(claims.CreationDate)
	if err != nil {
		created = claims.IssuedAt.Time
	}
	lifetime := claims.Lifetime()

	return &domain.Session{
		Token:       token,
		SessionID:   claims.ID,
		ClientID:    claims.ClientID,
		AccountID:   account.ID,
		DisplayName: account.DisplayName,
		AuthMethod:  claims.AuthMethod,
		ExpiresIn:   lifetime,
		ExpiresAt:   created.Add(lifetime),
		CreatedAt:   created,
	}, nil
}

// Kill terminates a session given its bearer token. The stored token rows
// are looked up but left in place; rotation on the next login removes them.
// TODO: delete the rows here once the launcher's re-login flow is confirmed
// not to depend on them surviving a kill.
func (s *SessionService) Kill(ctx context.Context, bearer string) error {
	token := strings.TrimPrefix(bearer, "eg1~")

	claims, err := s.Codec.Verify(token)
	if err != nil {
		return ErrInvalidToken
	}
	if claims.Subject == "" {
		return ErrInvalidToken
	}

	account, err := s.Store.Accounts().GetAccountByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	if _, err := s.Tokens.GetTokenByTypeAndAccount(ctx, domain.TokenTypeAccess, account.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	if _, err := s.Tokens.GetTokenByTypeAndAccount(ctx, domain.TokenTypeRefresh, account.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	return nil
}

// CreateExchangeCode issues an opaque exchange code for an account. The
// caller authenticates by presenting the shared service secret.
func (s *SessionService) CreateExchangeCode(ctx context.Context, accountID, endpointAccessToken string) (string, error) {
	if endpointAccessToken == "" || endpointAccessToken != s.Secret {
		return "", ErrInvalidSecret
	}

	account, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrAccountNotFound
		}
		return "", err
	}

	code, err := cryptox.GenerateHex(cryptox.TokenSize128)
	if err != nil {
		return "", err
	}

	if err := s.Tokens.CreateToken(ctx, domain.Token{
		ID:        idx.New().String(),
		Type:      domain.TokenTypeExchangeCode,
		AccountID: account.ID,
		Token:     code,
		ClientID:  "",
		Grant:     domain.GrantExchangeCode,
		CreatedAt: time.Now(),
	}); err != nil {
		return "", err
	}

	return code, nil
}
