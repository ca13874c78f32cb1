package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientCredentialsGrant(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := newGameClient(baseURL, modernUserAgent)

	resp, err := client.ClientCredentialsGrant(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp)

	require.True(t, strings.HasPrefix(resp.AccessToken, "eg1~"))
	require.Equal(t, "bearer", resp.TokenType)
	require.Equal(t, launcherClientID, resp.ClientID)
	require.Equal(t, 3600, resp.ExpiresIn)
	require.True(t, resp.InternalClient)
	require.Equal(t, "fortnite", resp.ClientService)

	// Client-only tokens carry no account block and cannot be refreshed.
	require.Empty(t, resp.AccountID)
	require.Empty(t, resp.RefreshToken)
	require.Empty(t, resp.DisplayName)
}

func TestClientCredentialsGrantWithoutDeviceID(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	// The device pre-check runs for every grant on bound seasons, including
	// client-only exchanges.
	client := newGameClient(baseURL, modernUserAgent)
	client.DeviceID = ""

	_, err := client.ClientCredentialsGrant(context.Background())
	require.Error(t, err)
}
