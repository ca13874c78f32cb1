package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/driftpeak/helios/pkg/jwtx"
)

type Config struct {
	Secret string // Required: shared signing secret for all issued tokens

	VersionLock   bool // Optional: reject clients whose season differs from VersionSeason
	VersionSeason int  // Required when VersionLock is set

	TokenStore string // Optional: token record backend (sqlite, redis) (default: sqlite)
	RedisAddr  string // Required when TokenStore is redis

	DatabaseFile string // Optional: path to SQLite database file (default: ./auth.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	BootstrapEmail       string // Optional: seed account email (seeded only when the store is empty)
	BootstrapPassword    string // Optional: seed account password
	BootstrapDisplayName string // Optional: seed account display name (default: the email)

	ExchangeTTL time.Duration // Optional: opaque exchange code lifetime (default: 5m)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

var ErrMissingSecret = errors.New("AUTH_SECRET must be set")

func LoadConfig() Config {
	return Config{
		Secret: os.Getenv("AUTH_SECRET"),

		VersionLock:   getEnvBoolOrDefault("AUTH_VERSION_LOCK", false),
		VersionSeason: getEnvIntOrDefault("AUTH_VERSION_SEASON", 0),

		TokenStore: getEnvOrDefault("AUTH_TOKEN_STORE", "sqlite"),
		RedisAddr:  getEnvOrDefault("AUTH_REDIS_ADDR", "localhost:6379"),

		DatabaseFile: getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		PepperFile:   getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),

		BootstrapEmail:       os.Getenv("AUTH_BOOTSTRAP_EMAIL"),
		BootstrapPassword:    os.Getenv("AUTH_BOOTSTRAP_PASSWORD"),
		BootstrapDisplayName: os.Getenv("AUTH_BOOTSTRAP_DISPLAY_NAME"),

		ExchangeTTL: getEnvDurationOrDefault("AUTH_EXCHANGE_TTL", jwtx.DefaultExchangeCodeTTL),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// Validate rejects configurations the service cannot run with.
func (cfg Config) Validate() error {
	if cfg.Secret == "" {
		return ErrMissingSecret
	}
	if cfg.VersionLock && cfg.VersionSeason <= 0 {
		return errors.New("AUTH_VERSION_SEASON must be set when AUTH_VERSION_LOCK is enabled")
	}
	if cfg.TokenStore != "sqlite" && cfg.TokenStore != "redis" {
		return errors.New("AUTH_TOKEN_STORE must be sqlite or redis")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
