package http

import (
	"context"
	"net/http"
	"time"

	"github.com/driftpeak/helios/internal/auth/store"
	"github.com/driftpeak/helios/pkg/authsdk"
	"github.com/driftpeak/helios/pkg/httpx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and the status of the backing store
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
//
// pingTokens reports the health of the token backend when it lives outside
// the relational store (redis); nil means token rows share the database and
// its ping covers them.
func ReadyzHandler(startTime time.Time, version string, st store.Store, pingTokens func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authsdk.HealthChecks{
			Database: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if pingTokens != nil {
			checks.TokenStore = "ok"
			if err := pingTokens(r.Context()); err != nil {
				checks.TokenStore = "error: " + err.Error()
				overallStatus = "degraded"
				statusCode = http.StatusServiceUnavailable
			}
		}

		response := authsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
