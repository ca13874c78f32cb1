package authsdk

// TokenResponse is the success payload of POST /account/api/oauth/token.
// The account_id/refresh_token block is absent for client_credentials
// grants. Field names and casing are part of the wire contract with the
// game client (note displayName, not display_name).
type TokenResponse struct {
	AccessToken    string `json:"access_token"`
	ExpiresIn      int    `json:"expires_in"`
	ExpiresAt      string `json:"expires_at"`
	TokenType      string `json:"token_type"`
	ClientID       string `json:"client_id"`
	InternalClient bool   `json:"internal_client"`
	ClientService  string `json:"client_service"`

	AccountID        string `json:"account_id,omitempty"`
	RefreshToken     string `json:"refresh_token,omitempty"`
	RefreshExpires   int    `json:"refresh_expires,omitempty"`
	RefreshExpiresAt string `json:"refresh_expires_at,omitempty"`
	DisplayName      string `json:"displayName,omitempty"`
	InAppID          string `json:"in_app_id,omitempty"`
	DeviceID         string `json:"device_id,omitempty"`
}

// VerifyResponse is the session descriptor GET /account/api/oauth/verify
// derives from a bearer token's claims.
type VerifyResponse struct {
	Token          string `json:"token"`
	SessionID      string `json:"session_id"`
	TokenType      string `json:"token_type"`
	ClientID       string `json:"client_id"`
	InternalClient bool   `json:"internal_client"`
	ClientService  string `json:"client_service"`
	AccountID      string `json:"account_id"`
	ExpiresIn      int    `json:"expires_in"`
	ExpiresAt      string `json:"expires_at"`
	AuthMethod     string `json:"auth_method"`
	DisplayName    string `json:"displayName"`
	InAppID        string `json:"in_app_id"`
}

// ExchangeCodeRequest is the body of POST /account/api/oauth/createExchangeCode.
type ExchangeCodeRequest struct {
	AccountID           string `json:"accountId"`
	EndpointAccessToken string `json:"endpointAccessToken"`
}

// ExchangeCodeResponse carries the issued opaque exchange code.
type ExchangeCodeResponse struct {
	Code string `json:"code"`
}

// ErrorResponse documents the uniform error envelope for swagger.
type ErrorResponse struct {
	Code       string `json:"code"`
	OriginPath string `json:"originPath"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
}

// HealthResponse is returned by the /livez and /readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks carries per-dependency readiness results. TokenStore is only
// present when token rows live outside the database (redis backend).
type HealthChecks struct {
	Database   string `json:"database"`
	TokenStore string `json:"token_store,omitempty"`
}
