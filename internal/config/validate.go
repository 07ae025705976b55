package config

import (
	"fmt"
	"net/url"
	"strings"
)

var supportedLocales = map[string]bool{"en": true, "ar": true}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Store.validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	if c.Store.Driver == DriverPostgres && strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required when store.driver is %q", DriverPostgres)
	}

	if c.Session.Secret != "" && len(c.Session.Secret) < 32 {
		return fmt.Errorf("session.secret must be at least 32 characters (got %d)", len(c.Session.Secret))
	}
	if c.Session.TokenTTL <= 0 {
		return fmt.Errorf("session.token_ttl must be > 0 (got %s)", c.Session.TokenTTL)
	}
	if c.Session.IdleTTL <= 0 {
		return fmt.Errorf("session.idle_ttl must be > 0 (got %s)", c.Session.IdleTTL)
	}

	if c.RateLimit.SignInPerMinute <= 0 {
		return fmt.Errorf("rate_limit.sign_in_per_minute must be > 0 (got %d)", c.RateLimit.SignInPerMinute)
	}

	if !supportedLocales[c.I18n.DefaultLocale] {
		return fmt.Errorf("i18n.default_locale %q is not supported", c.I18n.DefaultLocale)
	}

	return nil
}

func (s *StoreConfig) validate() error {
	if strings.TrimSpace(s.URL) == "" {
		return fmt.Errorf("url is required")
	}
	if strings.TrimSpace(s.PublicKey) == "" {
		return fmt.Errorf("public_key is required")
	}

	u, err := url.Parse(s.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("url %q must be an absolute http(s) URL", s.URL)
	}
	s.URL = strings.TrimRight(s.URL, "/")

	switch s.Driver {
	case DriverREST, DriverPostgres:
	default:
		return fmt.Errorf("driver must be %q or %q (got %q)", DriverREST, DriverPostgres, s.Driver)
	}

	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", s.Timeout)
	}
	return nil
}
