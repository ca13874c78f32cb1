package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Verify resolves a bearer token into its session descriptor.
func (c *SDKClient) Verify(ctx context.Context, accessToken string) (*VerifyResponse, error) {
	resp, err := c.doRequest(ctx,
		http.MethodGet,
		"/account/api/oauth/verify",
		nil,
		map[string]string{
			"Authorization": "bearer " + accessToken,
		},
	)
	if err != nil {
		return nil, err
	}

	var session VerifyResponse
	if err := decodeJSON(resp, &session, http.StatusOK); err != nil {
		return nil, err
	}

	return &session, nil
}

// Kill terminates the session behind the given token.
func (c *SDKClient) Kill(ctx context.Context, accessToken string) error {
	resp, err := c.doRequest(ctx,
		http.MethodDelete,
		"/account/api/oauth/sessions/kill/"+accessToken,
		nil,
		map[string]string{
			"Authorization": "bearer " + accessToken,
		},
	)
	if err != nil {
		return err
	}

	return checkStatusOK(resp)
}

// CreateExchangeCode issues an opaque exchange code for an account. The
// endpoint access token must be the service's shared signing secret, so
// this is only callable by trusted backend services.
func (c *SDKClient) CreateExchangeCode(ctx context.Context, accountID, endpointAccessToken string) (string, error) {
	body, err := json.Marshal(ExchangeCodeRequest{
		AccountID:           accountID,
		EndpointAccessToken: endpointAccessToken,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx,
		http.MethodPost,
		"/account/api/oauth/createExchangeCode",
		bytes.NewReader(body),
		map[string]string{
			"Content-Type": "application/json",
		},
	)
	if err != nil {
		return "", err
	}

	var out ExchangeCodeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", err
	}

	return out.Code, nil
}
