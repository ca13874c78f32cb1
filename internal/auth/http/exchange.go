package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/driftpeak/helios/internal/auth/service"
	"github.com/driftpeak/helios/pkg/authsdk"
	"github.com/driftpeak/helios/pkg/httpx"
	"github.com/driftpeak/helios/pkg/slogx"
)

// ExchangeCodeHandler serves POST /account/api/oauth/createExchangeCode
type ExchangeCodeHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Exchange Code Issuance Endpoint
//	@Description	Creates an opaque exchange code for an account. Callers authenticate by presenting the shared service secret as endpointAccessToken.
//	@Tags			OAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ExchangeCodeRequest		true	"accountId and endpointAccessToken"
//	@Success		200		{object}	authsdk.ExchangeCodeResponse	"code"
//	@Failure		400		{object}	authsdk.ErrorResponse			"code, originPath, message, timestamp"
//	@Failure		404		{object}	authsdk.ErrorResponse			"code, originPath, message, timestamp"
//	@Router			/account/api/oauth/createExchangeCode [post].
func (h *ExchangeCodeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.ExchangeCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrBadRequest.WriteError(w, r)
		return
	}
	if req.AccountID == "" {
		authsdk.ErrBadRequest.WriteError(w, r)
		return
	}

	code, err := h.SessionService.CreateExchangeCode(ctx, req.AccountID, req.EndpointAccessToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSecret):
			authsdk.ErrInvalidSecret.WriteError(w, r)
		case errors.Is(err, service.ErrAccountNotFound):
			authsdk.ErrAccountNotFound.WriteError(w, r)
		default:
			log.Error("exchange code issuance failed", "account_id", req.AccountID, "err", err)
			authsdk.ErrServerError.WriteError(w, r)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.ExchangeCodeResponse{Code: code})
}
