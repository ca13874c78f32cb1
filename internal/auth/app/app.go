package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	httpapi "github.com/driftpeak/helios/internal/auth/http"
	"github.com/driftpeak/helios/internal/auth/service"
	"github.com/driftpeak/helios/internal/auth/store"
	redisdriver "github.com/driftpeak/helios/internal/auth/store/drivers/redis"
	"github.com/driftpeak/helios/internal/auth/store/drivers/sqlite"
	"github.com/driftpeak/helios/pkg/cryptox"
	"github.com/driftpeak/helios/pkg/jwtx"
	"github.com/driftpeak/helios/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	tokens store.Tokens
	rdb    *goredis.Client
	codec  *jwtx.Codec

	// Services
	tokenService        *service.TokenService
	sessionService      *service.SessionService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates an Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "helios-auth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		codec: jwtx.NewHS256(cfg.Secret),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	app.initTokenStore()
	app.initServices()
	app.initHTTP()

	if err := app.seedBootstrapAccount(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("auth service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"token_store", app.cfg.TokenStore,
		"version_lock", app.cfg.VersionLock,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Block until a shutdown signal or server error arrives
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if app.rdb != nil {
		if err := app.rdb.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initTokenStore picks the token record backend. Accounts always live in
// sqlite; only the token rows can be moved to redis.
func (app *Application) initTokenStore() {
	if app.cfg.TokenStore == "redis" {
		app.rdb = goredis.NewClient(&goredis.Options{Addr: app.cfg.RedisAddr})
		app.tokens = redisdriver.NewTokens(app.rdb, "helios")
		app.logger.Info("using redis token store", "addr", app.cfg.RedisAddr)
		return
	}

	app.tokens = app.db.Tokens()
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		Store:         app.db,
		Tokens:        app.tokens,
		Devices:       &service.DeviceTracker{Store: app.db},
		Codec:         app.codec,
		VersionLock:   app.cfg.VersionLock,
		VersionSeason: app.cfg.VersionSeason,
		AccessTTL:     jwtx.DefaultAccessTokenTTL,
		RefreshTTL:    jwtx.DefaultRefreshTokenTTL,
	}

	app.sessionService = &service.SessionService{
		Store:       app.db,
		Tokens:      app.tokens,
		Codec:       app.codec,
		Secret:      app.cfg.Secret,
		ExchangeTTL: app.cfg.ExchangeTTL,
	}

	app.bootstrapService = &service.BootstrapService{
		Store:       app.db,
		Email:       app.cfg.BootstrapEmail,
		Password:    app.cfg.BootstrapPassword,
		DisplayName: app.cfg.BootstrapDisplayName,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.tokens,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.ExchangeTTL,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	router.TokenService = app.tokenService
	router.SessionService = app.sessionService
	if app.rdb != nil {
		router.TokensPing = func(ctx context.Context) error {
			return app.rdb.Ping(ctx).Err()
		}
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// seedBootstrapAccount creates the configured first account on an empty
// database so a fresh deployment can log in.
func (app *Application) seedBootstrapAccount() error {
	ctx := slogx.WithContext(context.Background(), app.logger)

	if _, err := app.bootstrapService.Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed bootstrap account: %w", err)
	}
	return nil
}
