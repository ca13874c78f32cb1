package authsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// PasswordGrant exchanges a username and password for a token pair.
func (c *SDKClient) PasswordGrant(ctx context.Context, username, password string) (*TokenResponse, error) {
	data := url.Values{
		"grant_type": {"password"},
		"username":   {username},
		"password":   {password},
	}

	return c.requestToken(ctx, data)
}

// ClientCredentialsGrant mints a client-only token. The response carries no
// account_id or refresh_token; the client re-authenticates when it expires.
func (c *SDKClient) ClientCredentialsGrant(ctx context.Context) (*TokenResponse, error) {
	data := url.Values{
		"grant_type": {"client_credentials"},
	}

	return c.requestToken(ctx, data)
}

// ExchangeCodeGrant redeems an exchange code for a token pair.
func (c *SDKClient) ExchangeCodeGrant(ctx context.Context, code string) (*TokenResponse, error) {
	data := url.Values{
		"grant_type":    {"exchange_code"},
		"exchange_code": {code},
	}

	return c.requestToken(ctx, data)
}

// RefreshGrant requests new tokens using a refresh token. The eg1~ prefix
// from a previous TokenResponse may be left on; the server strips it.
func (c *SDKClient) RefreshGrant(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	data := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}

	return c.requestToken(ctx, data)
}

func (c *SDKClient) requestToken(ctx context.Context, data url.Values) (*TokenResponse, error) {
	resp, err := c.doRequest(ctx,
		http.MethodPost,
		"/account/api/oauth/token",
		strings.NewReader(data.Encode()),
		map[string]string{
			"Content-Type":  "application/x-www-form-urlencoded",
			"Authorization": c.basicAuthorization(),
		},
	)
	if err != nil {
		return nil, err
	}

	var token TokenResponse
	if err := decodeJSON(resp, &token, http.StatusOK); err != nil {
		return nil, err
	}

	return &token, nil
}
