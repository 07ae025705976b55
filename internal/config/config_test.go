package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_URL", "https://store.example.com")
	t.Setenv("STORE_PUBLIC_KEY", "public-anon-key")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Store: StoreConfig{
			Driver:    DriverREST,
			URL:       "https://store.example.com",
			PublicKey: "public-anon-key",
			Timeout:   15 * time.Second,
		},
		Session: SessionConfig{
			Issuer:   "caselookup",
			TokenTTL: 12 * time.Hour,
			IdleTTL:  2 * time.Hour,
		},
		Log:       LogConfig{Level: "info", Format: "json"},
		RateLimit: RateLimitConfig{SignInPerMinute: 10, CleanupInterval: 5 * time.Minute},
		I18n:      I18nConfig{DefaultLocale: "en"},
	}
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

store:
  driver: "postgres"
  url: "https://store.example.com/"
  public_key: "public-anon-key"
  service_key: "service-role-key"
  timeout: "7s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

session:
  secret: "this-is-a-very-long-session-secret-for-testing"
  issuer: "caselookup-test"
  token_ttl: "1h"
  idle_ttl: "30m"

log:
  level: "debug"
  format: "text"

rate_limit:
  sign_in_per_minute: 3

i18n:
  default_locale: "ar"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	// Store
	if cfg.Store.Driver != DriverPostgres {
		t.Errorf("store.driver = %q, want %q", cfg.Store.Driver, DriverPostgres)
	}
	if cfg.Store.URL != "https://store.example.com" {
		t.Errorf("store.url = %q, trailing slash should be trimmed", cfg.Store.URL)
	}
	if !cfg.Store.HasServiceKey() {
		t.Error("store.service_key should be set")
	}
	if cfg.Store.Timeout != 7*time.Second {
		t.Errorf("store.timeout = %v, want 7s", cfg.Store.Timeout)
	}

	// Database
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}

	// Session
	if cfg.Session.Issuer != "caselookup-test" {
		t.Errorf("session.issuer = %q", cfg.Session.Issuer)
	}
	if cfg.Session.IdleTTL != 30*time.Minute {
		t.Errorf("session.idle_ttl = %v, want 30m", cfg.Session.IdleTTL)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}

	if cfg.RateLimit.SignInPerMinute != 3 {
		t.Errorf("rate_limit.sign_in_per_minute = %d, want 3", cfg.RateLimit.SignInPerMinute)
	}
	if cfg.I18n.DefaultLocale != "ar" {
		t.Errorf("i18n.default_locale = %q, want ar", cfg.I18n.DefaultLocale)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("STORE_PUBLIC_KEY", "env-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
	if cfg.Store.PublicKey != "env-key" {
		t.Errorf("store.public_key = %q, want env-key (ENV override)", cfg.Store.PublicKey)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")

	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Store.Driver != DriverREST {
		t.Errorf("store.driver = %q, want rest (default)", cfg.Store.Driver)
	}
	if cfg.Store.HasServiceKey() {
		t.Error("service key should be absent by default")
	}
	if cfg.Session.TokenTTL != 12*time.Hour {
		t.Errorf("session.token_ttl = %v, want 12h (default)", cfg.Session.TokenTTL)
	}
}

func TestLoad_MissingStoreURL_IsFatal(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("STORE_PUBLIC_KEY", "public-anon-key")

	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	if _, err := Load(); err == nil {
		t.Fatal("expected error when STORE_URL is missing")
	}
}

func TestLoad_MissingPublicKey_IsFatal(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("STORE_URL", "https://store.example.com")

	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	if _, err := Load(); err == nil {
		t.Fatal("expected error when STORE_PUBLIC_KEY is missing")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_Valid(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty url", func(c *Config) { c.Store.URL = "  " }},
		{"relative url", func(c *Config) { c.Store.URL = "store.example.com" }},
		{"unsupported scheme", func(c *Config) { c.Store.URL = "ftp://store.example.com" }},
		{"empty public key", func(c *Config) { c.Store.PublicKey = "" }},
		{"unknown driver", func(c *Config) { c.Store.Driver = "mysql" }},
		{"zero store timeout", func(c *Config) { c.Store.Timeout = 0 }},
		{"postgres without dsn", func(c *Config) { c.Store.Driver = DriverPostgres }},
		{"short session secret", func(c *Config) { c.Session.Secret = "short" }},
		{"zero token ttl", func(c *Config) { c.Session.TokenTTL = 0 }},
		{"zero idle ttl", func(c *Config) { c.Session.IdleTTL = 0 }},
		{"zero sign-in rate", func(c *Config) { c.RateLimit.SignInPerMinute = 0 }},
		{"unsupported locale", func(c *Config) { c.I18n.DefaultLocale = "fr" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidate_PostgresWithDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Driver = DriverPostgres
	cfg.Database.DSN = "postgres://u:p@localhost:5432/db"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_EmptySessionSecretAllowed(t *testing.T) {
	cfg := validConfig()
	cfg.Session.Secret = ""

	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty secret should fall back to an ephemeral one: %v", err)
	}
}
