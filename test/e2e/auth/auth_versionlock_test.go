package auth_test

import (
	"context"
	"testing"

	"github.com/driftpeak/helios/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestVersionLock(t *testing.T) {
	baseURL, cleanup := setupAuthContainerWithEnv(t, map[string]string{
		"AUTH_VERSION_LOCK":           "true",
		"AUTH_VERSION_SEASON":         "12",
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
	})
	defer cleanup()

	ctx := context.Background()

	t.Run("matching season is admitted", func(t *testing.T) {
		client := newGameClient(baseURL, modernUserAgent)
		loginBootstrapAccount(t, client)
	})

	t.Run("mismatched season is rejected", func(t *testing.T) {
		client := newGameClient(baseURL, legacyUserAgent)

		_, err := client.PasswordGrant(ctx, bootstrapEmail, bootstrapPassword)
		assertAPIError(t, err, authsdk.ErrorCodeIncompatibleVersion)

		var apiErr *authsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, 403, apiErr.StatusCode)
		require.Contains(t, apiErr.Message, "season 12")
		require.Contains(t, apiErr.Message, "7.40")
	})

	t.Run("gate runs before credential checks", func(t *testing.T) {
		client := newGameClient(baseURL, legacyUserAgent)

		_, err := client.PasswordGrant(ctx, "nobody@example.com", "wrong")
		assertAPIError(t, err, authsdk.ErrorCodeIncompatibleVersion)
	})
}
