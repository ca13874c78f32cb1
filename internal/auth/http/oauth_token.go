package http

import (
	"encoding/base64"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/driftpeak/helios/internal/auth/domain"
	"github.com/driftpeak/helios/internal/auth/service"
	"github.com/driftpeak/helios/pkg/authsdk"
	"github.com/driftpeak/helios/pkg/httpx"
	"github.com/driftpeak/helios/pkg/jwtx"
	"github.com/driftpeak/helios/pkg/slogx"
	"github.com/driftpeak/helios/pkg/uaparse"
)

// clientService is advertised in token responses; the launcher displays it.
const clientService = "fortnite"

// base64Pattern is checked before decoding the Basic header so a malformed
// segment fails as a bad request rather than a decode error.
var base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)

// TokenHandler serves POST /account/api/oauth/token
// Accepts application/x-www-form-urlencoded with a grant_type field.
type TokenHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		OAuth Token Endpoint
//	@Description	Exchanges client credentials for bearer tokens using one of the accepted grant types (password, client_credentials, exchange_code, refresh_token).
//	@Description	Requires a Basic Authorization header and a parseable User-Agent; non-legacy client builds must also present a device id header (X-Epic-Device-ID or HWID).
//	@Tags			OAuth
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			grant_type		formData	string					true	"Grant type"	Enums(password, client_credentials, exchange_code, refresh_token)
//	@Param			username		formData	string					false	"Login email (required for password grant)"
//	@Param			password		formData	string					false	"Password (required for password grant)"
//	@Param			exchange_code	formData	string					false	"Exchange code (required for exchange_code grant)"
//	@Param			refresh_token	formData	string					false	"Refresh token (required for refresh_token grant)"
//	@Success		200				{object}	authsdk.TokenResponse	"access_token, refresh_token, expires_in, account_id, ..."
//	@Failure		400				{object}	authsdk.ErrorResponse	"code, originPath, message, timestamp"
//	@Failure		403				{object}	authsdk.ErrorResponse	"code, originPath, message, timestamp"
//	@Failure		404				{object}	authsdk.ErrorResponse	"code, originPath, message, timestamp"
//	@Failure		500				{object}	authsdk.ErrorResponse	"code, originPath, message, timestamp"
//	@Router			/account/api/oauth/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		authsdk.ErrBadRequest.WriteError(w, r)
		return
	}

	clientID, ok := parseBasicClientID(r.Header.Get("Authorization"))
	if !ok {
		authsdk.ErrBadRequest.WriteError(w, r)
		return
	}

	build, err := uaparse.Parse(r.UserAgent())
	if err != nil {
		authsdk.ErrBadRequest.WriteError(w, r)
		return
	}

	req := service.ExchangeRequest{
		ClientID:     clientID,
		Grant:        r.Form.Get("grant_type"),
		Build:        build,
		DeviceID:     deviceIDHeader(r),
		Username:     strings.TrimSpace(r.Form.Get("username")),
		Password:     r.Form.Get("password"),
		ExchangeCode: strings.TrimSpace(r.Form.Get("exchange_code")),
		RefreshToken: strings.TrimSpace(r.Form.Get("refresh_token")),
	}

	if apiErr := missingGrantFields(req); apiErr != nil {
		apiErr.WriteError(w, r)
		return
	}

	grant, err := h.TokenService.Exchange(ctx, req)
	if err != nil {
		writeExchangeError(w, r, err)
		if isServerError(err) {
			log.Error("token exchange failed", "grant_type", req.Grant, "err", err)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, assembleTokenResponse(grant))
}

// parseBasicClientID extracts the client identifier from a Basic
// Authorization header: the substring before the first colon of the decoded
// credential.
func parseBasicClientID(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}
	if !base64Pattern.MatchString(parts[1]) {
		return "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", false
	}

	clientID, _, _ := strings.Cut(string(decoded), ":")
	if clientID == "" {
		return "", false
	}

	return clientID, true
}

// deviceIDHeader returns the hardware id in either of the accepted headers.
func deviceIDHeader(r *http.Request) string {
	if v := r.Header.Get("X-Epic-Device-ID"); v != "" {
		return v
	}
	return r.Header.Get("HWID")
}

// missingGrantFields enforces the per-grant required form fields before the
// service runs. Unknown grants fall through; the dispatcher rejects them.
func missingGrantFields(req service.ExchangeRequest) *authsdk.APIError {
	switch domain.GrantType(req.Grant) {
	case domain.GrantPassword:
		if req.Username == "" || req.Password == "" {
			return authsdk.ErrBadRequest
		}
	case domain.GrantExchangeCode:
		if req.ExchangeCode == "" {
			return authsdk.ErrBadRequest
		}
	case domain.GrantRefreshToken:
		if req.RefreshToken == "" {
			return authsdk.ErrBadRequest
		}
	}
	return nil
}

func writeExchangeError(w http.ResponseWriter, r *http.Request, err error) {
	var versionErr *service.VersionMismatchError

	switch {
	case errors.As(err, &versionErr):
		authsdk.NewAPIError(
			http.StatusForbidden,
			authsdk.ErrorCodeIncompatibleVersion,
			versionErr.Error(),
		).WriteError(w, r)
	case errors.Is(err, service.ErrDeviceIDRequired):
		authsdk.ErrDeviceIDRequired.WriteError(w, r)
	case errors.Is(err, service.ErrInvalidDeviceID):
		authsdk.ErrInvalidDeviceID.WriteError(w, r)
	case errors.Is(err, service.ErrAccountBanned):
		authsdk.ErrAccountBanned.WriteError(w, r)
	case errors.Is(err, service.ErrAccountNotFound):
		authsdk.ErrAccountNotFound.WriteError(w, r)
	case errors.Is(err, service.ErrInvalidCredentials):
		authsdk.ErrInvalidCredentials.WriteError(w, r)
	case errors.Is(err, service.ErrInvalidToken):
		authsdk.ErrInvalidToken.WriteError(w, r)
	case errors.Is(err, service.ErrInvalidExchangeCode):
		authsdk.ErrInvalidExchangeCode.WriteError(w, r)
	case errors.Is(err, service.ErrInvalidRefresh):
		authsdk.ErrInvalidRefreshToken.WriteError(w, r)
	case errors.Is(err, service.ErrUnknownGrant):
		authsdk.ErrUnsupportedGrant.WriteError(w, r)
	default:
		authsdk.ErrServerError.WriteError(w, r)
	}
}

func isServerError(err error) bool {
	var versionErr *service.VersionMismatchError
	if errors.As(err, &versionErr) {
		return false
	}

	for _, known := range []error{
		service.ErrDeviceIDRequired,
		service.ErrInvalidDeviceID,
		service.ErrAccountBanned,
		service.ErrAccountNotFound,
		service.ErrInvalidCredentials,
		service.ErrInvalidToken,
		service.ErrInvalidExchangeCode,
		service.ErrInvalidRefresh,
		service.ErrUnknownGrant,
	} {
		if errors.Is(err, known) {
			return false
		}
	}
	return true
}

// assembleTokenResponse builds the wire payload. Signed and opaque tokens
// both carry the eg1~ prefix on the wire; client_credentials grants omit
// the whole account block.
func assembleTokenResponse(grant *domain.TokenGrant) authsdk.TokenResponse {
	resp := authsdk.TokenResponse{
		AccessToken:    "eg1~" + grant.AccessToken,
		ExpiresIn:      int(grant.ExpiresIn.Seconds()),
		ExpiresAt:      jwtx.FormatCreationDate(grant.IssuedAt.Add(grant.ExpiresIn)),
		TokenType:      "bearer",
		ClientID:       grant.ClientID,
		InternalClient: true,
		ClientService:  clientService,
	}

	if grant.Account != nil {
		resp.AccountID = grant.Account.ID
		resp.RefreshToken = "eg1~" + grant.RefreshToken
		resp.RefreshExpires = int(grant.RefreshExpiresIn.Seconds())
		resp.RefreshExpiresAt = jwtx.FormatCreationDate(grant.IssuedAt.Add(grant.RefreshExpiresIn))
		resp.DisplayName = grant.Account.DisplayName
		resp.InAppID = grant.Account.ID
		resp.DeviceID = grant.DeviceID
	}

	return resp
}
