package auth_test

import (
	"context"
	"testing"

	"github.com/driftpeak/helios/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestRefreshGrant(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	ctx := context.Background()
	client := newGameClient(baseURL, modernUserAgent)
	login := loginBootstrapAccount(t, client)

	// The eg1~ prefix from the login response may be left on; the server
	// strips it.
	refreshed, err := client.RefreshGrant(ctx, login.RefreshToken)
	require.NoError(t, err)
	assertTokenResponse(t, refreshed)
	require.NotEqual(t, login.AccessToken, refreshed.AccessToken)
	require.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
}

func TestRefreshGrantRotatesOutOldToken(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	ctx := context.Background()
	client := newGameClient(baseURL, modernUserAgent)
	login := loginBootstrapAccount(t, client)

	_, err := client.RefreshGrant(ctx, login.RefreshToken)
	require.NoError(t, err)

	// The pre-rotation refresh token is gone.
	_, err = client.RefreshGrant(ctx, login.RefreshToken)
	assertAPIError(t, err, authsdk.ErrorCodeInvalidRefreshToken)
}

func TestRefreshGrantUnknownToken(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := newGameClient(baseURL, modernUserAgent)

	_, err := client.RefreshGrant(context.Background(), "eg1~deadbeefdeadbeefdeadbeefdeadbeef")
	assertAPIError(t, err, authsdk.ErrorCodeInvalidRefreshToken)

	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Invalid Refresh Token.", apiErr.Message)
}
