package http

import (
	"errors"
	"net/http"

	"github.com/driftpeak/helios/internal/auth/service"
	"github.com/driftpeak/helios/pkg/authsdk"
	"github.com/driftpeak/helios/pkg/httpx"
	"github.com/driftpeak/helios/pkg/slogx"
)

// KillHandler serves DELETE /account/api/oauth/sessions/kill/{token}
type KillHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Session Kill Endpoint
//	@Description	Terminates the session behind the token in the path. Returns an empty body on success.
//	@Tags			OAuth
//	@Produce		json
//	@Security		BearerAuth
//	@Param			token	path		string					true	"Access token, eg1~ prefix allowed"
//	@Success		200		{string}	string					"empty body"
//	@Failure		400		{object}	authsdk.ErrorResponse	"code, originPath, message, timestamp"
//	@Failure		404		{object}	authsdk.ErrorResponse	"code, originPath, message, timestamp"
//	@Router			/account/api/oauth/sessions/kill/{token} [delete].
func (h *KillHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if r.Header.Get("Authorization") == "" {
		authsdk.ErrBadRequest.WriteError(w, r)
		return
	}

	token := r.PathValue("token")
	if token == "" {
		authsdk.ErrBadRequest.WriteError(w, r)
		return
	}

	if err := h.SessionService.Kill(ctx, token); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			authsdk.ErrInvalidToken.WriteError(w, r)
		case errors.Is(err, service.ErrAccountNotFound):
			authsdk.ErrAccountNotFound.WriteError(w, r)
		default:
			log.Error("session kill failed", "err", err)
			authsdk.ErrServerError.WriteError(w, r)
		}
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusOK)
}
