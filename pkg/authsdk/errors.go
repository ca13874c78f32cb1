package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/driftpeak/helios/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

// Dotted error codes in the shape the game client expects. The client
// pattern-matches on these strings; renaming one is a breaking change.
const (
	ErrorCodeBadRequest          = "errors.com.helios.common.bad_request"
	ErrorCodeNotFound            = "errors.com.helios.common.not_found"
	ErrorCodeServerError         = "errors.com.helios.common.server_error"
	ErrorCodeInvalidCredentials  = "errors.com.helios.account.invalid_credentials"
	ErrorCodeAccountNotFound     = "errors.com.helios.account.account_not_found"
	ErrorCodeAccountBanned       = "errors.com.helios.account.account_banned"
	ErrorCodeIncompatibleVersion = "errors.com.helios.auth.incompatible_version"
	ErrorCodeDeviceIDRequired    = "errors.com.helios.auth.device_id_required"
	ErrorCodeInvalidDeviceID     = "errors.com.helios.auth.invalid_device_id"
	ErrorCodeInvalidToken        = "errors.com.helios.auth.invalid_token"
	ErrorCodeInvalidExchangeCode = "errors.com.helios.auth.invalid_exchange_code"
	ErrorCodeInvalidRefreshToken = "errors.com.helios.auth.invalid_refresh_token"
	ErrorCodeUnsupportedGrant    = "errors.com.helios.auth.unsupported_grant_type"
	ErrorCodeInvalidSecret       = "errors.com.helios.auth.invalid_secret"
)

// ============================================================================
// APIError - uniform error envelope
// ============================================================================

// APIError is the uniform error envelope every endpoint returns. It
// implements the error interface and is used both by the server handlers
// (to write HTTP responses) and by the SDK client (to represent errors).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the dotted error code (e.g. "errors.com.helios.common.bad_request")
	Code string `json:"code"`

	// OriginPath is the request path that produced the error
	OriginPath string `json:"originPath"`

	// Message is a human-readable description
	Message string `json:"message"`

	// Timestamp is when the error was produced, RFC3339
	Timestamp string `json:"timestamp"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes the envelope to w, stamping the origin path and
// timestamp from the request. The receiver is not mutated, so the
// predefined errors below are safe to share across requests.
func (e *APIError) WriteError(w http.ResponseWriter, r *http.Request) {
	out := *e
	out.OriginPath = r.URL.Path
	out.Timestamp = time.Now().UTC().Format(time.RFC3339)

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(out)
}

// WithMessage returns a copy of the error carrying a different message.
func (e *APIError) WithMessage(message string) *APIError {
	out := *e
	out.Message = message
	return &out
}

// NewAPIError creates an APIError with the given status, code, and message.
func NewAPIError(statusCode int, code, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrBadRequest covers malformed headers, missing body fields, a bad
	// hardware id format, and other request-shape problems.
	ErrBadRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeBadRequest,
		Message:    "the request is malformed or missing required fields",
	}

	// ErrInvalidCredentials is returned when a password does not match.
	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidCredentials,
		Message:    "your e-mail and/or password are invalid",
	}

	// ErrAccountNotFound is returned when no account matches a login email,
	// token subject, or exchange-code owner.
	ErrAccountNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeAccountNotFound,
		Message:    "account could not be found",
	}

	// ErrAccountBanned is returned for banned accounts, whether resolved by
	// credentials or discovered through a device binding.
	ErrAccountBanned = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeAccountBanned,
		Message:    "this account has been banned",
	}

	// ErrDeviceIDRequired is returned when a build under device binding
	// presents no hardware id header.
	ErrDeviceIDRequired = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeDeviceIDRequired,
		Message:    "a device id header is required for this client version",
	}

	// ErrInvalidDeviceID is returned for a malformed hardware id.
	ErrInvalidDeviceID = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidDeviceID,
		Message:    "the provided device id is malformed",
	}

	// ErrInvalidToken is returned when a signed token fails verification or
	// decodes to an empty payload.
	ErrInvalidToken = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidToken,
		Message:    "the provided token is invalid",
	}

	// ErrInvalidExchangeCode is returned when an opaque exchange code is
	// not held in the token store.
	ErrInvalidExchangeCode = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidExchangeCode,
		Message:    "the provided exchange code is invalid",
	}

	// ErrInvalidRefreshToken is returned for an unrecognized refresh token.
	// The launcher matches on this exact message.
	ErrInvalidRefreshToken = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRefreshToken,
		Message:    "Invalid Refresh Token.",
	}

	// ErrUnsupportedGrant is returned for grant types outside the accepted
	// set.
	ErrUnsupportedGrant = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeUnsupportedGrant,
		Message:    "unsupported grant type",
	}

	// ErrInvalidSecret is returned when createExchangeCode is called
	// without the shared service secret.
	ErrInvalidSecret = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidSecret,
		Message:    "the provided endpoint access token is invalid",
	}

	// ErrServerError is returned when a store write or signing operation
	// fails unexpectedly.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "internal server error",
	}
)

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns a non-2xx HTTP response into a typed *APIError.
// Returns nil for success responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
