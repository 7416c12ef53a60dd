// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// GRPCAddr is the address the gRPC server listens on (e.g. :8080).
	GRPCAddr string `mapstructure:"GRPC_ADDR"`
	// DatabaseURL is the Postgres DSN.
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DBMaxOpenConns int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	// RedisURL is the role cache address (redis://host:port/db). Empty disables the cache.
	RedisURL string `mapstructure:"REDIS_URL"`
	// SessionCacheTTL is how long a user's role bindings stay cached (e.g. "5m").
	SessionCacheTTL string `mapstructure:"SESSION_CACHE_TTL"`

	// JWTPrivateKey is the PEM-encoded private key; only cmd/seed signs tokens.
	JWTPrivateKey string `mapstructure:"JWT_PRIVATE_KEY"`
	// JWTPublicKey is the PEM-encoded public key used to validate access tokens.
	JWTPublicKey string `mapstructure:"JWT_PUBLIC_KEY"`
	JWTIssuer    string `mapstructure:"JWT_ISSUER"`
	JWTAudience  string `mapstructure:"JWT_AUDIENCE"`
	JWTAccessTTL string `mapstructure:"JWT_ACCESS_TTL"`

	// OTLPEndpoint enables OTLP export of traces, metrics and logs when set.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	ServiceName  string `mapstructure:"OTEL_SERVICE_NAME"`

	// Env is the application environment ("development", "production"). Production logs JSON.
	Env      string `mapstructure:"APP_ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
	// DefaultLocale is used for error messages when the caller's accept-language matches no catalog.
	DefaultLocale string `mapstructure:"DEFAULT_LOCALE"`
}

var defaults = map[string]interface{}{
	"GRPC_ADDR":                   ":8080",
	"DATABASE_URL":                "",
	"DB_MAX_OPEN_CONNS":           25,
	"DB_MAX_IDLE_CONNS":           5,
	"REDIS_URL":                   "",
	"SESSION_CACHE_TTL":           "5m",
	"JWT_PRIVATE_KEY":             "",
	"JWT_PUBLIC_KEY":              "",
	"JWT_ISSUER":                  "testplatform-auth",
	"JWT_AUDIENCE":                "testplatform-api",
	"JWT_ACCESS_TTL":              "15m",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
	"OTEL_EXPORTER_OTLP_INSECURE": false,
	"OTEL_SERVICE_NAME":           "workspace-service",
	"APP_ENV":                     "development",
	"LOG_LEVEL":                   "info",
	"DEFAULT_LOCALE":              "en-US",
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()
	// Unmarshal only sees keys viper knows about; a default registers each one.
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.GRPCAddr == "" {
		return errors.New("config: GRPC_ADDR must be set")
	}
	if c.DBMaxOpenConns < 0 || c.DBMaxIdleConns < 0 {
		return errors.New("config: DB_MAX_OPEN_CONNS and DB_MAX_IDLE_CONNS must not be negative")
	}
	if c.DBMaxOpenConns > 0 && c.DBMaxIdleConns > c.DBMaxOpenConns {
		return errors.New("config: DB_MAX_IDLE_CONNS must not exceed DB_MAX_OPEN_CONNS")
	}
	for name, val := range map[string]string{"SESSION_CACHE_TTL": c.SessionCacheTTL, "JWT_ACCESS_TTL": c.JWTAccessTTL} {
		if val == "" {
			continue
		}
		if d, err := time.ParseDuration(val); err != nil || d <= 0 {
			return fmt.Errorf("config: %s must be a positive duration, got %q", name, val)
		}
	}
	return nil
}

// AuthEnabled reports whether a public key is configured for validating access tokens.
func (c *Config) AuthEnabled() bool {
	return c.JWTPublicKey != ""
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AccessTTL parses JWTAccessTTL as a time.Duration. Returns 15m if unset or invalid.
func (c *Config) AccessTTL() time.Duration {
	return durationOr(c.JWTAccessTTL, 15*time.Minute)
}

// RoleCacheTTL parses SessionCacheTTL as a time.Duration. Returns 5m if unset or invalid.
func (c *Config) RoleCacheTTL() time.Duration {
	return durationOr(c.SessionCacheTTL, 5*time.Minute)
}

func durationOr(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
