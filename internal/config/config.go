package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

const (
	devJWTSecret     = "dev-secret-change-in-production"
	devSessionSecret = "dev-session-secret-change-in-production"
)

// TokenTTL is the lifetime of the login token and its cookie.
const TokenTTL = time.Hour

type Config struct {
	Port            string
	Host            string
	Env             string
	DBDriver        string
	DatabaseDSN     string
	JWTSecret       string
	JWTExpiry       time.Duration
	SessionSecret   string
	NavCacheTTL     time.Duration
	NavQueryTimeout time.Duration
	StaticDir       string
	LogLevel        slog.Level
	LogFormat       string
}

// Load reads configuration from the environment.
func Load() Config {
	cfg, err := load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

func load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "5500"),
		Host:          getEnv("HOST", ""),
		Env:           getEnv("ENV", getEnv("NODE_ENV", "development")),
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/csemotors?parseTime=true"),
		JWTSecret:     getEnv("JWT_SECRET", getEnv("ACCESS_TOKEN_SECRET", devJWTSecret)),
		JWTExpiry:     TokenTTL,
		SessionSecret: getEnv("SESSION_SECRET", devSessionSecret),
		StaticDir:     getEnv("STATIC_DIR", "public"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.NavCacheTTL, err = getDuration("NAV_CACHE_TTL", time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.NavQueryTimeout, err = getDuration("NAV_QUERY_TIMEOUT", 2*time.Second); err != nil {
		return Config{}, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	switch cfg.DBDriver {
	case "mysql", "sqlite":
	default:
		return Config{}, fmt.Errorf("DB_DRIVER must be mysql or sqlite, got %q", cfg.DBDriver)
	}

	// Any environment other than development sends Secure cookies and is
	// treated as deployed, so it must not run on the built-in secrets.
	if !cfg.isDevelopment() {
		if cfg.JWTSecret == devJWTSecret {
			return Config{}, fmt.Errorf("JWT_SECRET must be set in %s environment", cfg.Env)
		}
		if cfg.SessionSecret == devSessionSecret {
			return Config{}, fmt.Errorf("SESSION_SECRET must be set in %s environment", cfg.Env)
		}
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// SecureCookies reports whether cookies must carry the Secure flag.
func (c Config) SecureCookies() bool {
	return !c.isDevelopment()
}

func (c Config) isDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
