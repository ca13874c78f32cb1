package auth_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/driftpeak/helios/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestPasswordGrant(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := newGameClient(baseURL, modernUserAgent)
	resp := loginBootstrapAccount(t, client)

	require.Equal(t, bootstrapDisplayName, resp.DisplayName)
	require.Equal(t, testDeviceID, resp.DeviceID)
}

func TestPasswordGrantInvalidCredentials(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	ctx := context.Background()
	client := newGameClient(baseURL, modernUserAgent)

	t.Run("wrong password", func(t *testing.T) {
		_, err := client.PasswordGrant(ctx, bootstrapEmail, "not-the-password")
		assertAPIError(t, err, authsdk.ErrorCodeInvalidCredentials)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := client.PasswordGrant(ctx, "nobody@example.com", bootstrapPassword)
		assertAPIError(t, err, authsdk.ErrorCodeAccountNotFound)
	})
}

func TestDeviceBinding(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("missing hardware id is rejected", func(t *testing.T) {
		client := newGameClient(baseURL, modernUserAgent)
		client.DeviceID = ""

		_, err := client.PasswordGrant(ctx, bootstrapEmail, bootstrapPassword)
		assertAPIError(t, err, authsdk.ErrorCodeDeviceIDRequired)
	})

	t.Run("malformed hardware id is rejected", func(t *testing.T) {
		client := newGameClient(baseURL, modernUserAgent)
		client.DeviceID = "not-a-hardware-id"

		_, err := client.PasswordGrant(ctx, bootstrapEmail, bootstrapPassword)
		assertAPIError(t, err, authsdk.ErrorCodeInvalidDeviceID)
	})

	t.Run("legacy seasons skip the hardware id", func(t *testing.T) {
		client := newGameClient(baseURL, legacyUserAgent)
		client.DeviceID = ""

		resp, err := client.PasswordGrant(ctx, bootstrapEmail, bootstrapPassword)
		require.NoError(t, err)
		assertTokenResponse(t, resp)
		require.Empty(t, resp.DeviceID)
	})

	t.Run("rebinds to the latest hardware id", func(t *testing.T) {
		first := newGameClient(baseURL, modernUserAgent)
		loginBootstrapAccount(t, first)

		second := newGameClient(baseURL, modernUserAgent)
		second.DeviceID = "ffffffffffffffff0000000000000000"

		resp, err := second.PasswordGrant(ctx, bootstrapEmail, bootstrapPassword)
		require.NoError(t, err)
		require.Equal(t, second.DeviceID, resp.DeviceID)
	})
}

func TestUnsupportedGrantType(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	// The SDK only speaks the four supported grants, so drive the endpoint
	// directly with one this service never issues.
	form := url.Values{
		"grant_type": {"authorization_code"},
		"code":       {"whatever"},
	}
	req, err := http.NewRequest(http.MethodPost,
		baseURL+"/account/api/oauth/token", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "basic "+base64.StdEncoding.EncodeToString(
		[]byte(launcherClientID+":"+launcherClientSecret)))
	req.Header.Set("User-Agent", modernUserAgent)
	req.Header.Set("X-Epic-Device-ID", testDeviceID)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var envelope authsdk.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Equal(t, authsdk.ErrorCodeUnsupportedGrant, envelope.Code)
}
