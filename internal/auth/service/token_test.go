package service

import (
	"context"
	"testing"
	"time"

	"github.com/driftpeak/helios/internal/auth/domain"
	"github.com/driftpeak/helios/internal/auth/store"
	"github.com/driftpeak/helios/internal/auth/store/drivers/sqlite"
	"github.com/driftpeak/helios/pkg/cryptox"
	"github.com/driftpeak/helios/pkg/idx"
	"github.com/driftpeak/helios/pkg/jwtx"
	"github.com/driftpeak/helios/pkg/uaparse"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "test-signing-secret"
	testDeviceID = "0123456789abcdef0123456789abcdef"
)

var (
	legacyBuild = uaparse.Build{Season: 7, Version: "7.40"}
	modernBuild = uaparse.Build{Season: 12, Version: "12.41", Changelist: "13317074"}
)

func newTokenService(t *testing.T) (*TokenService, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())

	svc := &TokenService{
		Store:      st,
		Tokens:     st.Tokens(),
		Devices:    &DeviceTracker{Store: st},
		Codec:      jwtx.NewHS256(testSecret),
		AccessTTL:  jwtx.DefaultAccessTokenTTL,
		RefreshTTL: jwtx.DefaultRefreshTokenTTL,
	}
	return svc, st
}

func seedAccount(t *testing.T, st store.Store, email, password string, banned bool) domain.Account {
	t.Helper()

	cryptox.SetPepperPath(t.TempDir() + "/pepper")

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	account := domain.Account{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  "Player One",
		Banned:       banned,
	}
	require.NoError(t, st.Accounts().CreateAccount(context.Background(), account))
	return account
}

func passwordRequest(email, password string, build uaparse.Build) ExchangeRequest {
	req := ExchangeRequest{
		ClientID: "launcher",
		Grant:    "password",
		Build:    build,
		Username: email,
		Password: password,
	}
	if !domain.IsLegacySeason(build.Season) {
		req.DeviceID = testDeviceID
	}
	return req
}

func TestExchangePasswordGrant(t *testing.T) {
	ctx := context.Background()
	svc, st := newTokenService(t)
	account := seedAccount(t, st, "player@example.com", "hunter2", false)

	grant, err := svc.Exchange(ctx, passwordRequest("player@example.com", "hunter2", modernBuild))
	require.NoError(t, err)
	require.NotNil(t, grant.Account)
	require.Equal(t, account.ID, grant.Account.ID)
	require.NotEmpty(t, grant.AccessToken)
	require.NotEmpty(t, grant.RefreshToken)
	require.Equal(t, jwtx.DefaultAccessTokenTTL, grant.ExpiresIn)
	require.Equal(t, jwtx.DefaultRefreshTokenTTL, grant.RefreshExpiresIn)

	// The access token is a signed claims token for the account.
	claims, err := svc.Codec.Verify(grant.AccessToken)
	require.NoError(t, err)
	require.Equal(t, account.ID, claims.Subject)
	require.Equal(t, "launcher", claims.ClientID)
	require.Equal(t, "password", claims.AuthMethod)
	require.NotEmpty(t, claims.Padding)
	require.NotEmpty(t, claims.ID)

	// The refresh token is the stored opaque value.
	rec, err := svc.Tokens.GetTokenByValue(ctx, grant.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, domain.TokenTypeRefresh, rec.Type)
	require.Equal(t, account.ID, rec.AccountID)

	// The account is now bound to the presented device.
	updated, err := st.Accounts().GetAccountByDeviceID(ctx, testDeviceID)
	require.NoError(t, err)
	require.Equal(t, account.ID, updated.ID)
}

func TestExchangePasswordGrantFailures(t *testing.T) {
	ctx := context.Background()
	svc, st := newTokenService(t)
	seedAccount(t, st, "player@example.com", "hunter2", false)

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Exchange(ctx, passwordRequest("nobody@example.com", "hunter2", modernBuild))
		require.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Exchange(ctx, passwordRequest("player@example.com", "wrong", modernBuild))
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("banned account", func(t *testing.T) {
		seedAccount(t, st, "banned@example.com", "hunter2", true)
		_, err := svc.Exchange(ctx, passwordRequest("banned@example.com", "hunter2", modernBuild))
		require.ErrorIs(t, err, ErrAccountBanned)
	})
}

func TestExchangeVersionLock(t *testing.T) {
	ctx := context.Background()
	svc, st := newTokenService(t)
	svc.VersionLock = true
	svc.VersionSeason = 12
	seedAccount(t, st, "player@example.com", "hunter2", false)

	// Every grant type is rejected before any credential check runs.
	for _, grantType := range []string{"password", "client_credentials", "exchange_code", "refresh_token", "bogus"} {
		req := ExchangeRequest{
			ClientID: "launcher",
			Grant:    grantType,
			Build:    uaparse.Build{Season: 11, Version: "11.31"},
			DeviceID: testDeviceID,
			Username: "player@example.com",
			Password: "hunter2",
		}
		_, err := svc.Exchange(ctx, req)

		var versionErr *VersionMismatchError
		require.ErrorAs(t, err, &versionErr, "grant %q", grantType)
		require.Equal(t, 12, versionErr.Allowed)
		require.Contains(t, versionErr.Error(), "12")
		require.Contains(t, versionErr.Error(), "11.31")
	}

	// A matching season passes the gate.
	grant, err := svc.Exchange(ctx, passwordRequest("player@example.com", "hunter2", modernBuild))
	require.NoError(t, err)
	require.NotNil(t, grant)
}

func TestExchangeDeviceIDValidation(t *testing.T) {
	ctx := context.Background()
	svc, st := newTokenService(t)
	seedAccount(t, st, "player@example.com", "hunter2", false)

	t.Run("missing device id", func(t *testing.T) {
		req := passwordRequest("player@example.com", "hunter2", modernBuild)
		req.DeviceID = ""
		_, err := svc.Exchange(ctx, req)
		require.ErrorIs(t, err, ErrDeviceIDRequired)
	})

	t.Run("malformed device id", func(t *testing.T) {
		for _, bad := range []string{"short", "zzzz6789abcdef0123456789abcdefzz", testDeviceID + "00"} {
			req := passwordRequest("player@example.com", "hunter2", modernBuild)
			req.DeviceID = bad
			_, err := svc.Exchange(ctx, req)
			require.ErrorIs(t, err, ErrInvalidDeviceID, "device id %q", bad)
		}
	})

	t.Run("legacy seasons skip the tracker", func(t *testing.T) {
		req := passwordRequest("player@example.com", "hunter2", legacyBuild)
		require.Empty(t, req.DeviceID)
		grant, err := svc.Exchange(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, grant.Account)
	})
}

func TestExchangeRejectsBannedDeviceBinding(t *testing.T) {
	ctx := context.Background()
	svc, st := newTokenService(t)

	banned := seedAccount(t, st, "cheater@example.com", "hunter2", true)
	require.NoError(t, st.Accounts().UpdateDeviceID(ctx, banned.ID, testDeviceID))

	seedAccount(t, st, "player@example.com", "hunter2", false)

	// The device is poisoned before the authenticating account is resolved:
	// even correct credentials for a clean account are rejected.
	_, err := svc.Exchange(ctx, passwordRequest("player@example.com", "hunter2", modernBuild))
	require.ErrorIs(t, err, ErrAccountBanned)
}

func TestExchangeRebindsDevice(t *testing.T) {
	ctx := context.Background()
	svc, st := newTokenService(t)

	previous := seedAccount(t, st, "previous@example.com", "hunter2", false)
	require.NoError(t, st.Accounts().UpdateDeviceID(ctx, previous.ID, testDeviceID))

	account := seedAccount(t, st, "player@example.com", "hunter2", false)

	grant, err := svc.Exchange(ctx, passwordRequest("player@example.com", "hunter2", modernBuild))
	require.NoError(t, err)
	require.Equal(t, account.ID, grant.Account.ID)

	bound, err := st.Accounts().GetAccountByDeviceID(ctx, testDeviceID)
	require.NoError(t, err)
	require.Equal(t, account.ID, bound.ID)
}

func TestExchangeClientCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTokenService(t)

	req := ExchangeRequest{
		ClientID: "backend-service",
		Grant:    "client_credentials",
		Build:    modernBuild,
		DeviceID: testDeviceID,
	}
	grant, err := svc.Exchange(ctx, req)
	require.NoError(t, err)

	// Terminal branch: client identity only.
	require.Nil(t, grant.Account)
	require.Empty(t, grant.RefreshToken)
	require.Equal(t, 3600, int(grant.ExpiresIn.Seconds()))

	claims, err := svc.Codec.Verify(grant.AccessToken)
	require.NoError(t, err)
	require.Empty(t, claims.Subject)
	require.Equal(t, "backend-service", claims.ClientID)
	require.Equal(t, jwtx.AMClientCredentials, claims.AuthMethod)
	require.NotEmpty(t, claims.Padding)

	// Nothing is persisted for this grant.
	_, err = svc.Tokens.GetTokenByTypeAndAccount(ctx, domain.TokenTypeAccess, "backend-service")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestExchangeUnknownGrant(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTokenService(t)

	req := ExchangeRequest{
		ClientID: "launcher",
		Grant:    "implicit",
		Build:    modernBuild,
		DeviceID: testDeviceID,
	}
	_, err := svc.Exchange(ctx, req)
	require.ErrorIs(t, err, ErrUnknownGrant)
}

func TestExchangeRefreshGrant(t *testing.T) {
	ctx := context.Background()
	svc, st := newTokenService(t)
	account := seedAccount(t, st, "player@example.com", "hunter2", false)

	first, err := svc.Exchange(ctx, passwordRequest("player@example.com", "hunter2", modernBuild))
	require.NoError(t, err)

	req := ExchangeRequest{
		ClientID:     "launcher",
		Grant:        "refresh_token",
		Build:        modernBuild,
		DeviceID:     testDeviceID,
		RefreshToken: "eg1~" + first.RefreshToken,
	}
	second, err := svc.Exchange(ctx, req)
	require.NoError(t, err)
	require.Equal(t, account.ID, second.Account.ID)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	claims, err := svc.Codec.Verify(second.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "refresh_token", claims.AuthMethod)

	// The first refresh token was rotated away.
	_, err = svc.Tokens.GetTokenByValue(ctx, first.RefreshToken)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestExchangeRefreshGrantUnknownToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTokenService(t)

	req := ExchangeRequest{
		ClientID:     "launcher",
		Grant:        "refresh_token",
		Build:        modernBuild,
		DeviceID:     testDeviceID,
		RefreshToken: "eg1~deadbeefdeadbeefdeadbeefdeadbeef",
	}
	_, err := svc.Exchange(ctx, req)
	require.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestExchangeCodeGrantSigned(t *testing.T) {
	ctx := context.Background()
	svc, st := newTokenService(t)
	account := seedAccount(t, st, "player@example.com", "hunter2", false)

	code, err := svc.Codec.Sign(jwtx.NewExchangeClaims(account.ID, "launcher", jwtx.DefaultExchangeCodeTTL, time.Now()))
	require.NoError(t, err)

	req := ExchangeRequest{
		ClientID:     "launcher",
		Grant:        "exchange_code",
		Build:        modernBuild,
		DeviceID:     testDeviceID,
		ExchangeCode: code,
	}
	grant, err := svc.Exchange(ctx, req)
	require.NoError(t, err)
	require.Equal(t, account.ID, grant.Account.ID)

	t.Run("garbage token", func(t *testing.T) {
		bad := req
		bad.ExchangeCode = "not-a-jwt"
		_, err := svc.Exchange(ctx, bad)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unresolved subject", func(t *testing.T) {
		orphan, err := svc.Codec.Sign(jwtx.NewExchangeClaims(idx.New().String(), "launcher", jwtx.DefaultExchangeCodeTTL, time.Now()))
		require.NoError(t, err)

		bad := req
		bad.ExchangeCode = orphan
		_, err = svc.Exchange(ctx, bad)
		require.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestExchangeCodeGrantLegacyOpaque(t *testing.T) {
	ctx := context.Background()
	svc, st := newTokenService(t)
	account := seedAccount(t, st, "player@example.com", "hunter2", false)

	session := &SessionService{
		Store:  st,
		Tokens: svc.Tokens,
		Codec:  svc.Codec,
		Secret: testSecret,
	}
	code, err := session.CreateExchangeCode(ctx, account.ID, testSecret)
	require.NoError(t, err)

	req := ExchangeRequest{
		ClientID:     "launcher",
		Grant:        "exchange_code",
		Build:        legacyBuild,
		ExchangeCode: code,
	}
	grant, err := svc.Exchange(ctx, req)
	require.NoError(t, err)
	require.Equal(t, account.ID, grant.Account.ID)

	t.Run("unknown opaque code", func(t *testing.T) {
		bad := req
		bad.ExchangeCode = "ffffffffffffffffffffffffffffffff"
		_, err := svc.Exchange(ctx, bad)
		require.ErrorIs(t, err, ErrInvalidExchangeCode)
	})
}

func TestExchangeRotatesTokenPair(t *testing.T) {
	ctx := context.Background()
	svc, st := newTokenService(t)
	account := seedAccount(t, st, "player@example.com", "hunter2", false)

	first, err := svc.Exchange(ctx, passwordRequest("player@example.com", "hunter2", modernBuild))
	require.NoError(t, err)

	second, err := svc.Exchange(ctx, passwordRequest("player@example.com", "hunter2", modernBuild))
	require.NoError(t, err)

	// Old rows are gone, exactly one live record of each type remains.
	_, err = svc.Tokens.GetTokenByValue(ctx, first.RefreshToken)
	require.ErrorIs(t, err, store.ErrNotFound)

	access, err := svc.Tokens.GetTokenByTypeAndAccount(ctx, domain.TokenTypeAccess, account.ID)
	require.NoError(t, err)
	refresh, err := svc.Tokens.GetTokenByTypeAndAccount(ctx, domain.TokenTypeRefresh, account.ID)
	require.NoError(t, err)
	require.Equal(t, second.RefreshToken, refresh.Token)
	require.NotEmpty(t, access.Token)
}
