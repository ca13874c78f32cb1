package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/driftpeak/helios/internal/auth/service"
	"github.com/driftpeak/helios/internal/auth/store"
	"github.com/driftpeak/helios/pkg/httpx"
	"github.com/driftpeak/helios/pkg/slogx"

	_ "github.com/driftpeak/helios/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	TokenService   *service.TokenService
	SessionService *service.SessionService

	// TokensPing, when set, adds the external token backend to the
	// readiness checks.
	TokensPing func(context.Context) error
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerOAuth()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Helios Authentication Service API
//	@version		0.1.0
//	@description	Authentication and session core of the helios game-service backend.
//	@description
//	@description				Exchanges client credentials for bearer tokens the game client accepts,
//	@description				enforces device binding and version gating, and manages token lifecycle.
//	@description				Signed tokens use HS256 over the shared service secret and carry the eg1~ prefix on the wire.
//
//	@contact.name				Driftpeak Team
//	@contact.url				https://github.com/driftpeak/helios
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Access token. Format: "bearer eg1~{token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerOAuth() {
	// POST /token - strict rate limit by IP + username to slow brute force
	// across all grant types
	tokenHandler := &TokenHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /account/api/oauth/token",
		httpx.Chain(tokenHandler,
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"),
		),
	)

	// GET /verify - the client polls this, keep the limit high
	verifyHandler := &VerifyHandler{SessionService: r.SessionService}
	r.Mux.Handle("GET /account/api/oauth/verify",
		httpx.Chain(verifyHandler,
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// DELETE /sessions/kill/{token} - moderate rate limit
	killHandler := &KillHandler{SessionService: r.SessionService}
	r.Mux.Handle("DELETE /account/api/oauth/sessions/kill/{token}",
		httpx.Chain(killHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /createExchangeCode - backend-to-backend, moderate rate limit
	exchangeHandler := &ExchangeCodeHandler{SessionService: r.SessionService}
	r.Mux.Handle("POST /account/api/oauth/createExchangeCode",
		httpx.Chain(exchangeHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - monitoring systems may poll frequently
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.TokensPing),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
