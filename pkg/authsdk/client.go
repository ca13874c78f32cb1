package authsdk

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the helios authentication service. It speaks
// the same headers the game client does: Basic authorization, a
// Fortnite-style User-Agent, and an optional hardware id.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// ClientID and ClientSecret are encoded into the Basic header on token
	// requests.
	ClientID     string
	ClientSecret string

	// UserAgent is sent on every request; the token endpoint parses the
	// season out of it.
	UserAgent string

	// DeviceID, when set, is sent as the X-Epic-Device-ID header. Required
	// for non-legacy builds.
	DeviceID string
}

// NewSDKClient creates an auth service client.
func NewSDKClient(baseURL, clientID, clientSecret, userAgent string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		ClientID:     clientID,
		ClientSecret: clientSecret,
		UserAgent:    userAgent,
	}
}

// basicAuthorization renders the Basic header value from the configured
// client credentials.
func (c *SDKClient) basicAuthorization() string {
	raw := c.ClientID + ":" + c.ClientSecret
	return "basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doRequest performs an HTTP request, stamping the configured User-Agent
// and device id headers before any custom ones.
func (c *SDKClient) doRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.DeviceID != "" {
		req.Header.Set("X-Epic-Device-ID", c.DeviceID)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

// decodeJSON decodes a JSON response into target, returning a typed
// *APIError for non-expected statuses.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// checkStatusOK returns a typed error unless the response is 200 OK.
func checkStatusOK(resp *http.Response) error {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, bodyBytes)
	}

	return nil
}
