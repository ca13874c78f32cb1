package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/driftpeak/helios/internal/auth/store/drivers/sqlite"
	"github.com/driftpeak/helios/pkg/authsdk"
	"github.com/driftpeak/helios/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func signAccessToken(t *testing.T, accountID string) string {
	t.Helper()

	token, err := jwtx.NewHS256(testSecret).Sign(
		jwtx.NewAccessClaims(accountID, "launcher", "password", time.Hour, time.Now()),
	)
	require.NoError(t, err)
	return token
}

func TestVerifyEndpoint(t *testing.T) {
	srv, st := newTestServer(t)
	account := seedAccount(t, st, "player@example.com", "hunter2")
	token := signAccessToken(t, account.ID)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/account/api/oauth/verify", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "bearer eg1~"+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body authsdk.VerifyResponse
	decodeBody(t, resp, &body)
	require.Equal(t, account.ID, body.AccountID)
	require.Equal(t, "launcher", body.ClientID)
	require.Equal(t, "password", body.AuthMethod)
	require.Equal(t, "bearer", body.TokenType)
	require.Equal(t, token, body.Token)
	require.Equal(t, 3600, body.ExpiresIn)
	require.NotEmpty(t, body.SessionID)
}

func TestVerifyEndpointRejectsBadTokens(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("no authorization header", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/account/api/oauth/verify")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("garbage bearer token", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/account/api/oauth/verify", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "bearer eg1~garbage")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)

		var envelope authsdk.ErrorResponse
		decodeBody(t, resp, &envelope)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, authsdk.ErrorCodeInvalidToken, envelope.Code)
	})
}

func TestKillEndpoint(t *testing.T) {
	srv, st := newTestServer(t)
	account := seedAccount(t, st, "player@example.com", "hunter2")
	token := signAccessToken(t, account.ID)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/account/api/oauth/sessions/kill/eg1~"+token, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "bearer eg1~"+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Empty(t, body)
}

func TestKillEndpointRequiresAuthorization(t *testing.T) {
	srv, st := newTestServer(t)
	account := seedAccount(t, st, "player@example.com", "hunter2")
	token := signAccessToken(t, account.ID)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/account/api/oauth/sessions/kill/"+token, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateExchangeCodeEndpoint(t *testing.T) {
	srv, st := newTestServer(t)
	account := seedAccount(t, st, "player@example.com", "hunter2")

	post := func(t *testing.T, reqBody authsdk.ExchangeCodeRequest) *http.Response {
		t.Helper()
		payload, err := json.Marshal(reqBody)
		require.NoError(t, err)

		resp, err := http.Post(
			srv.URL+"/account/api/oauth/createExchangeCode",
			"application/json",
			bytes.NewReader(payload),
		)
		require.NoError(t, err)
		return resp
	}

	t.Run("issues a code", func(t *testing.T) {
		resp := post(t, authsdk.ExchangeCodeRequest{
			AccountID:           account.ID,
			EndpointAccessToken: testSecret,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body authsdk.ExchangeCodeResponse
		decodeBody(t, resp, &body)
		require.NotEmpty(t, body.Code)
	})

	t.Run("rejects a wrong secret", func(t *testing.T) {
		resp := post(t, authsdk.ExchangeCodeRequest{
			AccountID:           account.ID,
			EndpointAccessToken: "wrong",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var envelope authsdk.ErrorResponse
		decodeBody(t, resp, &envelope)
		require.Equal(t, authsdk.ErrorCodeInvalidSecret, envelope.Code)
	})

	t.Run("rejects an unknown account", func(t *testing.T) {
		resp := post(t, authsdk.ExchangeCodeRequest{
			AccountID:           "missing-account",
			EndpointAccessToken: testSecret,
		})
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/livez", "/readyz"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)

		var body authsdk.HealthResponse
		decodeBody(t, resp, &body)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		require.Equal(t, "ok", body.Status, path)
	}
}

func TestReadyzChecksTokenBackend(t *testing.T) {
	newServerWithTokensPing := func(t *testing.T, ping func(context.Context) error) *httptest.Server {
		t.Helper()

		st, err := sqlite.NewStore(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = st.Close() })
		require.NoError(t, st.ApplyMigrations())

		router := NewRouter("test", st, slog.New(slog.NewTextHandler(io.Discard, nil)))
		router.TokensPing = ping
		router.ApplyRoutes()

		srv := httptest.NewServer(router)
		t.Cleanup(srv.Close)
		return srv
	}

	t.Run("healthy backend", func(t *testing.T) {
		srv := newServerWithTokensPing(t, func(context.Context) error { return nil })

		resp, err := http.Get(srv.URL + "/readyz")
		require.NoError(t, err)

		var body authsdk.HealthResponse
		decodeBody(t, resp, &body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "ok", body.Status)
		require.NotNil(t, body.Checks)
		require.Equal(t, "ok", body.Checks.TokenStore)
	})

	t.Run("unreachable backend degrades readiness", func(t *testing.T) {
		srv := newServerWithTokensPing(t, func(context.Context) error {
			return errors.New("connection refused")
		})

		resp, err := http.Get(srv.URL + "/readyz")
		require.NoError(t, err)

		var body authsdk.HealthResponse
		decodeBody(t, resp, &body)
		require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		require.Equal(t, "degraded", body.Status)
		require.NotNil(t, body.Checks)
		require.Equal(t, "ok", body.Checks.Database)
		require.Contains(t, body.Checks.TokenStore, "connection refused")
	})
}
