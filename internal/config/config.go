package config

import (
	"strings"
	"time"
)

// Store driver names.
const (
	DriverREST     = "rest"
	DriverPostgres = "postgres"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Database  DatabaseConfig  `yaml:"database"`
	Session   SessionConfig   `yaml:"session"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	I18n      I18nConfig      `yaml:"i18n"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,Accept-Language"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// StoreConfig holds the hosted store endpoint and credentials. The identity
// provider is always reached through URL; Driver selects how rows are read.
type StoreConfig struct {
	Driver     string        `yaml:"driver"      env:"STORE_DRIVER"      env-default:"rest"`
	URL        string        `yaml:"url"         env:"STORE_URL"         env-required:"true"`
	PublicKey  string        `yaml:"public_key"  env:"STORE_PUBLIC_KEY"  env-required:"true"`
	ServiceKey string        `yaml:"service_key" env:"STORE_SERVICE_KEY"`
	Timeout    time.Duration `yaml:"timeout"     env:"STORE_TIMEOUT"     env-default:"15s"`
}

// HasServiceKey reports whether privileged identity operations are available.
func (s StoreConfig) HasServiceKey() bool {
	return strings.TrimSpace(s.ServiceKey) != ""
}

// DatabaseConfig holds PostgreSQL connection settings for the postgres driver.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// SessionConfig holds local session token settings.
type SessionConfig struct {
	Secret   string        `yaml:"secret"    env:"SESSION_SECRET"`
	Issuer   string        `yaml:"issuer"    env:"SESSION_ISSUER"    env-default:"caselookup"`
	TokenTTL time.Duration `yaml:"token_ttl" env:"SESSION_TOKEN_TTL" env-default:"12h"`
	IdleTTL  time.Duration `yaml:"idle_ttl"  env:"SESSION_IDLE_TTL"  env-default:"2h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds request rate limits for unauthenticated endpoints.
type RateLimitConfig struct {
	SignInPerMinute int           `yaml:"sign_in_per_minute" env:"RATE_LIMIT_SIGN_IN_PER_MINUTE" env-default:"10"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"   env:"RATE_LIMIT_CLEANUP_INTERVAL"   env-default:"5m"`
}

// I18nConfig holds localization settings.
type I18nConfig struct {
	DefaultLocale string `yaml:"default_locale" env:"I18N_DEFAULT_LOCALE" env-default:"en"`
}
