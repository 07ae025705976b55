// Package gotrue is a client for the hosted identity provider
// ({url}/auth/v1). Privileged user management requires the service key.
package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
)

const (
	authPath     = "/auth/v1"
	maxBodyBytes = 1 << 20
)

// Config holds the identity provider endpoint and credentials.
type Config struct {
	URL        string
	PublicKey  string
	ServiceKey string
	Timeout    time.Duration
}

// Client talks to the identity provider.
type Client struct {
	baseURL    string
	publicKey  string
	serviceKey string
	httpClient *http.Client
	log        *slog.Logger
	now        func() time.Time
}

// NewClient creates a Client. A zero timeout falls back to 15s.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/") + authPath,
		publicKey:  cfg.PublicKey,
		serviceKey: strings.TrimSpace(cfg.ServiceKey),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "gotrue"),
		now:        time.Now,
	}
}

// CanProvision reports whether privileged user management is configured.
func (c *Client) CanProvision() bool {
	return c.serviceKey != ""
}

// SignInWithPassword exchanges email and password for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	body := map[string]string{"email": email, "password": password}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=password", c.publicKey, body, &resp); err != nil {
		return nil, fmt.Errorf("gotrue.SignInWithPassword: %w", err)
	}
	return resp.toDomain(c.now()), nil
}

// RefreshSession exchanges a refresh token for a new session.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*domain.AuthSession, error) {
	body := map[string]string{"refresh_token": refreshToken}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=refresh_token", c.publicKey, body, &resp); err != nil {
		return nil, fmt.Errorf("gotrue.RefreshSession: %w", err)
	}
	return resp.toDomain(c.now()), nil
}

// SignOut revokes the session behind accessToken.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if err := c.do(ctx, http.MethodPost, "/logout", accessToken, nil, nil); err != nil {
		return fmt.Errorf("gotrue.SignOut: %w", err)
	}
	return nil
}

// GetUser resolves the identity behind accessToken.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*domain.Identity, error) {
	var u userResponse
	if err := c.do(ctx, http.MethodGet, "/user", accessToken, nil, &u); err != nil {
		return nil, fmt.Errorf("gotrue.GetUser: %w", err)
	}
	return u.toDomain(), nil
}

// UpdatePassword sets a new password for the identity behind accessToken.
func (c *Client) UpdatePassword(ctx context.Context, accessToken, password string) error {
	body := map[string]string{"password": password}
	if err := c.do(ctx, http.MethodPut, "/user", accessToken, body, nil); err != nil {
		return fmt.Errorf("gotrue.UpdatePassword: %w", err)
	}
	return nil
}

// AdminCreateUser provisions a confirmed identity with email and password.
func (c *Client) AdminCreateUser(ctx context.Context, email, password string) (*domain.Identity, error) {
	if !c.CanProvision() {
		return nil, fmt.Errorf("gotrue.AdminCreateUser: %w", domain.ErrProvisioningUnavailable)
	}
	body := map[string]any{"email": email, "password": password, "email_confirm": true}
	var u userResponse
	if err := c.do(ctx, http.MethodPost, "/admin/users", c.serviceKey, body, &u); err != nil {
		return nil, fmt.Errorf("gotrue.AdminCreateUser: %w", err)
	}
	return u.toDomain(), nil
}

// AdminSetPassword replaces the password of identity id.
func (c *Client) AdminSetPassword(ctx context.Context, id uuid.UUID, password string) error {
	if !c.CanProvision() {
		return fmt.Errorf("gotrue.AdminSetPassword: %w", domain.ErrProvisioningUnavailable)
	}
	body := map[string]string{"password": password}
	if err := c.do(ctx, http.MethodPut, "/admin/users/"+url.PathEscape(id.String()), c.serviceKey, body, nil); err != nil {
		return fmt.Errorf("gotrue.AdminSetPassword: %w", err)
	}
	return nil
}

// AdminDeleteUser removes identity id.
func (c *Client) AdminDeleteUser(ctx context.Context, id uuid.UUID) error {
	if !c.CanProvision() {
		return fmt.Errorf("gotrue.AdminDeleteUser: %w", domain.ErrProvisioningUnavailable)
	}
	if err := c.do(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(id.String()), c.serviceKey, nil, nil); err != nil {
		return fmt.Errorf("gotrue.AdminDeleteUser: %w", err)
	}
	return nil
}

// Health checks that the identity provider answers.
func (c *Client) Health(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, "/health", c.publicKey, nil, nil); err != nil {
		return fmt.Errorf("gotrue.Health: %w", err)
	}
	return nil
}

// do sends a request authorized by bearer. Calls made with the service key
// also present it as apikey; everything else presents the public key.
func (c *Client) do(ctx context.Context, method, path, bearer string, payload, dest any) error {
	apikey := c.publicKey
	if c.serviceKey != "" && bearer == c.serviceKey {
		apikey = c.serviceKey
	}

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", apikey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "gotrue request failed",
			slog.String("method", method),
			slog.String("path", stripQuery(path)),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	c.log.DebugContext(ctx, "gotrue response",
		slog.String("method", method),
		slog.String("path", stripQuery(path)),
		slog.Int("status", resp.StatusCode),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp.StatusCode, body)
	}
	if dest == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func stripQuery(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}
