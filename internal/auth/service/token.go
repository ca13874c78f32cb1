package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/driftpeak/helios/internal/auth/domain"
	"github.com/driftpeak/helios/internal/auth/store"
	"github.com/driftpeak/helios/pkg/cryptox"
	"github.com/driftpeak/helios/pkg/idx"
	"github.com/driftpeak/helios/pkg/jwtx"
	"github.com/driftpeak/helios/pkg/slogx"
	"github.com/driftpeak/helios/pkg/uaparse"
)

var (
	ErrInvalidCredentials  = errors.New("invalid_credentials")
	ErrAccountNotFound     = errors.New("account_not_found")
	ErrAccountBanned       = errors.New("account_banned")
	ErrInvalidToken        = errors.New("invalid_token")
	ErrInvalidExchangeCode = errors.New("invalid_exchange_code")
	ErrInvalidRefresh      = errors.New("invalid_refresh_token")
	ErrUnknownGrant        = errors.New("unknown_grant")
)

// VersionMismatchError rejects a client build the version lock does not
// admit. The message names both versions; the launcher surfaces it to the
// player verbatim.
type VersionMismatchError struct {
	Allowed  int
	Observed uaparse.Build
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("this service only accepts season %d clients, but you are on version %s (season %d)",
		e.Allowed, e.Observed.Version, e.Observed.Season)
}

// ExchangeRequest carries everything the token endpoint extracted from an
// inbound request: the client identity from the Basic header, the parsed
// build, the hardware id header, and the grant-specific form fields.
type ExchangeRequest struct {
	ClientID string
	Grant    string
	Build    uaparse.Build
	DeviceID string

	Username     string
	Password     string
	ExchangeCode string
	RefreshToken string
}

// TokenService is the credential-exchange state machine: version gate,
// device binding, the four grant flows, and token rotation.
type TokenService struct {
	Store   store.Store
	Tokens  store.Tokens
	Devices *DeviceTracker
	Codec   *jwtx.Codec

	VersionLock   bool
	VersionSeason int

	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Exchange runs one credential exchange end to end and returns the minted
// grant, or a sentinel/typed error the handler maps onto the wire envelope.
//
// Order matters and is part of the external contract: version gate first,
// then the device pre-check (non-legacy seasons only), then the grant
// branch, then rebind, rotation and signing.
func (s *TokenService) Exchange(ctx context.Context, req ExchangeRequest) (*domain.TokenGrant, error) {
	now := time.Now()
	l := slogx.FromContext(ctx)

	if s.VersionLock && req.Build.Season != s.VersionSeason {
		return nil, &VersionMismatchError{Allowed: s.VersionSeason, Observed: req.Build}
	}

	legacy := domain.IsLegacySeason(req.Build.Season)

	// Seasons past the legacy cutoff must present a hardware id, and a
	// banned account already bound to it poisons the device for everyone.
	var bound *domain.Account
	if !legacy {
		var err error
		bound, err = s.Devices.PreCheck(ctx, req.DeviceID)
		if err != nil {
			return nil, err
		}
	}

	grant, ok := domain.ParseGrantType(req.Grant)
	if !ok {
		l.Warn("unrecognized grant type", slog.String("grant_type", req.Grant))
		return nil, ErrUnknownGrant
	}

	// client_credentials is terminal: no account, no store, no rotation.
	if grant == domain.GrantClientCredentials {
		return s.mintClientGrant(req.ClientID, now)
	}

	var account domain.Account
	var err error

	switch grant {
	case domain.GrantPassword:
		account, err = s.resolvePassword(ctx, req.Username, req.Password)
	case domain.GrantExchangeCode:
		account, err = s.resolveExchangeCode(ctx, req.ExchangeCode, legacy)
	case domain.GrantRefreshToken:
		account, err = s.resolveRefreshToken(ctx, req.RefreshToken)
	}
	if err != nil {
		return nil, err
	}

	if !legacy {
		if err := s.Devices.PostCheck(ctx, &account, bound, req.DeviceID); err != nil {
			return nil, err
		}
	}

	accessJWT, refreshOpaque, err := s.rotate(ctx, &account, req.ClientID, grant, now)
	if err != nil {
		l.Error("token rotation failed",
			slog.Any("error", err),
			slog.String("account_id", account.ID),
		)
		return nil, err
	}

	return &domain.TokenGrant{
		Account:          &account,
		ClientID:         req.ClientID,
		Grant:            grant,
		DeviceID:         req.DeviceID,
		AccessToken:      accessJWT,
		RefreshToken:     refreshOpaque,
		ExpiresIn:        s.AccessTTL,
		RefreshExpiresIn: s.RefreshTTL,
		IssuedAt:         now,
	}, nil
}

func (s *TokenService) resolvePassword(ctx context.Context, username, password string) (domain.Account, error) {
	account, err := s.Store.Accounts().GetAccountByEmail(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, err
	}

	if account.Banned {
		return domain.Account{}, ErrAccountBanned
	}

	if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
		return domain.Account{}, ErrInvalidCredentials
	}

	return account, nil
}

// resolveExchangeCode redeems one of the two exchange-code shapes. Builds
// under device binding carry a signed token whose subject is the account id;
// legacy builds carry an opaque value held in the token store.
func (s *TokenService) resolveExchangeCode(ctx context.Context, code string, legacy bool) (domain.Account, error) {
	var accountID string

	if legacy {
		rec, err := s.Tokens.GetTokenByValue(ctx, code)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Account{}, ErrInvalidExchangeCode
			}
			return domain.Account{}, err
		}
		if rec.Type != domain.TokenTypeExchangeCode {
			return domain.Account{}, ErrInvalidExchangeCode
		}
		accountID = rec.AccountID
	} else {
		claims, err := s.Codec.Verify(code)
		if err != nil {
			return domain.Account{}, ErrInvalidToken
		}
		accountID = claims.Subject
		if accountID == "" {
			return domain.Account{}, ErrInvalidToken
		}
	}

	account, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, err
	}

	if account.Banned {
		return domain.Account{}, ErrAccountBanned
	}

	return account, nil
}

func (s *TokenService) resolveRefreshToken(ctx context.Context, refresh string) (domain.Account, error) {
	refresh = strings.TrimPrefix(refresh, "eg1~")

	rec, err := s.Tokens.GetTokenByValue(ctx, refresh)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrInvalidRefresh
		}
		return domain.Account{}, err
	}
	if rec.Type != domain.TokenTypeRefresh {
		return domain.Account{}, ErrInvalidRefresh
	}

	account, err := s.Store.Accounts().GetAccountByID(ctx, rec.AccountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, err
	}

	if account.Banned {
		return domain.Account{}, ErrAccountBanned
	}

	return account, nil
}

// mintClientGrant signs a self-contained token carrying client identity and
// filler only. Fixed one hour lifetime regardless of the configured TTLs.
func (s *TokenService) mintClientGrant(clientID string, now time.Time) (*domain.TokenGrant, error) {
	claims := jwtx.NewClientClaims(clientID, time.Hour, now)
	signed, err := s.Codec.Sign(claims)
	if err != nil {
		return nil, err
	}

	return &domain.TokenGrant{
		ClientID:    clientID,
		Grant:       domain.GrantClientCredentials,
		AccessToken: signed,
		ExpiresIn:   time.Hour,
		IssuedAt:    now,
	}, nil
}

// rotate replaces the account's persisted token pair and signs the new
// access token. Delete-then-create is issued as two independent calls;
// concurrent logins for one account race last-write-wins.
func (s *TokenService) rotate(ctx context.Context, account *domain.Account, clientID string, grant domain.GrantType, now time.Time) (string, string, error) {
	if err := s.Tokens.DeleteTokensByTypeAndAccount(ctx, domain.TokenTypeAccess, account.ID); err != nil {
		return "", "", err
	}
	if err := s.Tokens.DeleteTokensByTypeAndAccount(ctx, domain.TokenTypeRefresh, account.ID); err != nil {
		return "", "", err
	}

	accessOpaque, err := cryptox.GenerateHex(cryptox.TokenSize128)
	if err != nil {
		return "", "", err
	}
	refreshOpaque, err := cryptox.GenerateHex(cryptox.TokenSize128)
	if err != nil {
		return "", "", err
	}

	if err := s.Tokens.CreateToken(ctx, domain.Token{
		ID:        idx.New().String(),
		Type:      domain.TokenTypeAccess,
		AccountID: account.ID,
		Token:     accessOpaque,
		ClientID:  clientID,
		Grant:     grant,
		CreatedAt: now,
	}); err != nil {
		return "", "", err
	}

	if err := s.Tokens.CreateToken(ctx, domain.Token{
		ID:        idx.New().String(),
		Type:      domain.TokenTypeRefresh,
		AccountID: account.ID,
		Token:     refreshOpaque,
		ClientID:  clientID,
		Grant:     grant,
		CreatedAt: now,
	}); err != nil {
		return "", "", err
	}

	claims := jwtx.NewAccessClaims(account.ID, clientID, string(grant), s.AccessTTL, now)
	accessJWT, err := s.Codec.Sign(claims)
	if err != nil {
		return "", "", err
	}

	return accessJWT, refreshOpaque, nil
}
