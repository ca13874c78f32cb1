/*
Package authsdk provides a client SDK for the helios authentication service.

# Overview

The SDK mirrors the headers and payloads the game client exchanges with the
token endpoint: a Basic authorization header built from a client id and
secret, a Fortnite-style User-Agent that carries the build version, and an
optional hardware id header for builds under device binding.

	client := authsdk.NewSDKClient(
		"https://auth.example.com",
		"launcher", "secret",
		"Fortnite/++Fortnite+Release-12.41-CL-13317074 Windows/10",
	)
	client.DeviceID = "0123456789abcdef0123456789abcdef"

	// Log in with account credentials
	tokens, err := client.PasswordGrant(ctx, "player@example.com", "hunter2")

	// Inspect the resulting session
	session, err := client.Verify(ctx, tokens.AccessToken)

	// Hand the session to another service
	code, err := client.CreateExchangeCode(ctx, tokens.AccountID, serviceSecret)

	// Kill the session when done
	err = client.Kill(ctx, tokens.AccessToken)

# Error Handling

Every non-2xx response is returned as an *APIError carrying the service's
uniform envelope (code, originPath, message, timestamp). Match on the Code
field:

	if apiErr, ok := err.(*authsdk.APIError); ok {
		switch apiErr.Code {
		case authsdk.ErrorCodeAccountBanned:
			// ...
		case authsdk.ErrorCodeIncompatibleVersion:
			// ...
		}
	}
*/
package authsdk
