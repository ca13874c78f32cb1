package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/driftpeak/helios/internal/auth/domain"
	"github.com/driftpeak/helios/internal/auth/service"
	"github.com/driftpeak/helios/pkg/authsdk"
	"github.com/driftpeak/helios/pkg/httpx"
	"github.com/driftpeak/helios/pkg/jwtx"
	"github.com/driftpeak/helios/pkg/slogx"
)

// VerifyHandler serves GET /account/api/oauth/verify
type VerifyHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Session Verification Endpoint
//	@Description	Resolves a bearer token into its session descriptor. Expiry is recomputed from the token's own creation and lifetime claims.
//	@Tags			OAuth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.VerifyResponse	"token, session_id, account_id, expires_at, ..."
//	@Failure		400	{object}	authsdk.ErrorResponse	"code, originPath, message, timestamp"
//	@Failure		404	{object}	authsdk.ErrorResponse	"code, originPath, message, timestamp"
//	@Router			/account/api/oauth/verify [get].
func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	bearer, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		authsdk.ErrBadRequest.WriteError(w, r)
		return
	}

	session, err := h.SessionService.Verify(ctx, bearer)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			authsdk.ErrInvalidToken.WriteError(w, r)
		case errors.Is(err, service.ErrAccountNotFound):
			authsdk.ErrAccountNotFound.WriteError(w, r)
		default:
			log.Error("session verification failed", "err", err)
			authsdk.ErrServerError.WriteError(w, r)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, assembleVerifyResponse(session))
}

// bearerToken extracts the token from a "bearer <token>" header value. The
// scheme comparison is case-insensitive; the launcher sends it lowercased.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func assembleVerifyResponse(session *domain.Session) authsdk.VerifyResponse {
	return authsdk.VerifyResponse{
		Token:          session.Token,
		SessionID:      session.SessionID,
		TokenType:      "bearer",
		ClientID:       session.ClientID,
		InternalClient: true,
		ClientService:  clientService,
		AccountID:      session.AccountID,
		ExpiresIn:      int(session.ExpiresIn.Seconds()),
		ExpiresAt:      jwtx.FormatCreationDate(session.ExpiresAt),
		AuthMethod:     session.AuthMethod,
		DisplayName:    session.DisplayName,
		InAppID:        session.AccountID,
	}
}
