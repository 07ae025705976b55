// Package postgrest implements gateway.Gateway against a hosted REST row
// API ({url}/rest/v1/{table}).
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/caselookup-backend/internal/gateway"
	"github.com/heartmarshall/caselookup-backend/pkg/ctxutil"
)

const (
	restPath     = "/rest/v1/"
	pingTable    = "profiles"
	maxBodyBytes = 10 << 20
)

// Config holds the endpoint and credentials of the row API.
type Config struct {
	URL       string
	PublicKey string
	Timeout   time.Duration
}

// Client is a gateway.Gateway speaking the REST row protocol.
type Client struct {
	baseURL    string
	publicKey  string
	httpClient *http.Client
	log        *slog.Logger
}

var _ gateway.Gateway = (*Client)(nil)

// NewClient creates a Client. A zero timeout falls back to 15s.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/") + restPath,
		publicKey:  cfg.PublicKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "postgrest"),
	}
}

// Select fetches rows matching q into dest (pointer to slice).
func (c *Client) Select(ctx context.Context, q gateway.Query, dest any) error {
	if err := q.Validate(); err != nil {
		return err
	}
	params := encodeQuery(q)
	params.Set("select", "*")

	_, body, err := c.do(ctx, http.MethodGet, q.Table, params, nil, "")
	if err != nil {
		return fmt.Errorf("postgrest.Select %s: %w", q.Table, err)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("postgrest.Select %s: decode: %w", q.Table, err)
	}
	return nil
}

// Count returns the exact number of rows matching q.
func (c *Client) Count(ctx context.Context, q gateway.Query) (int, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}
	params := encodeQuery(q)
	params.Set("select", "*")
	params.Del("order")

	resp, _, err := c.do(ctx, http.MethodHead, q.Table, params, nil, "count=exact")
	if err != nil {
		return 0, fmt.Errorf("postgrest.Count %s: %w", q.Table, err)
	}
	n, err := parseContentRange(resp.Header.Get("Content-Range"))
	if err != nil {
		return 0, fmt.Errorf("postgrest.Count %s: %w", q.Table, err)
	}
	return n, nil
}

// Insert stores one row and decodes the stored row into dest.
func (c *Client) Insert(ctx context.Context, table string, values gateway.Values, dest any) error {
	if table == "" {
		return fmt.Errorf("postgrest.Insert: empty table")
	}
	_, body, err := c.do(ctx, http.MethodPost, table, nil, values, "return=representation")
	if err != nil {
		return fmt.Errorf("postgrest.Insert %s: %w", table, err)
	}
	if dest == nil {
		return nil
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return fmt.Errorf("postgrest.Insert %s: decode: %w", table, err)
	}
	if len(rows) != 1 {
		return fmt.Errorf("postgrest.Insert %s: expected 1 row, got %d", table, len(rows))
	}
	if err := json.Unmarshal(rows[0], dest); err != nil {
		return fmt.Errorf("postgrest.Insert %s: decode row: %w", table, err)
	}
	return nil
}

// Update patches rows matched by q and decodes them into dest.
func (c *Client) Update(ctx context.Context, q gateway.Query, patch gateway.Values, dest any) error {
	if err := q.ValidateWriteScope(); err != nil {
		return err
	}
	if len(patch) == 0 {
		return fmt.Errorf("postgrest.Update %s: empty patch", q.Table)
	}

	prefer := "return=minimal"
	if dest != nil {
		prefer = "return=representation"
	}
	_, body, err := c.do(ctx, http.MethodPatch, q.Table, encodeQuery(q), patch, prefer)
	if err != nil {
		return fmt.Errorf("postgrest.Update %s: %w", q.Table, err)
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("postgrest.Update %s: decode: %w", q.Table, err)
	}
	return nil
}

// Delete removes rows matched by q and returns the affected count.
func (c *Client) Delete(ctx context.Context, q gateway.Query) (int, error) {
	if err := q.ValidateWriteScope(); err != nil {
		return 0, err
	}
	resp, _, err := c.do(ctx, http.MethodDelete, q.Table, encodeQuery(q), nil, "return=minimal,count=exact")
	if err != nil {
		return 0, fmt.Errorf("postgrest.Delete %s: %w", q.Table, err)
	}
	n, err := parseContentRange(resp.Header.Get("Content-Range"))
	if err != nil {
		return 0, fmt.Errorf("postgrest.Delete %s: %w", q.Table, err)
	}
	return n, nil
}

// Ping checks that the row API answers.
func (c *Client) Ping(ctx context.Context) error {
	params := url.Values{"select": {"id"}, "limit": {"1"}}
	if _, _, err := c.do(ctx, http.MethodHead, pingTable, params, nil, ""); err != nil {
		return fmt.Errorf("postgrest.Ping: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, table string, params url.Values, payload any, prefer string) (*http.Response, []byte, error) {
	reqURL := c.baseURL + url.PathEscape(table)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("encode body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.publicKey)
	req.Header.Set("Authorization", "Bearer "+c.bearer(ctx))
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "postgrest request failed",
			slog.String("method", method),
			slog.String("table", table),
			slog.String("error", err.Error()),
		)
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("read body: %w", err)
	}

	c.log.DebugContext(ctx, "postgrest response",
		slog.String("method", method),
		slog.String("table", table),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, nil, decodeError(resp.StatusCode, body)
	}
	return resp, body, nil
}

// bearer returns the caller's access token so that row-level policies apply
// to the signed-in identity; anonymous calls use the public key.
func (c *Client) bearer(ctx context.Context) string {
	if tok := ctxutil.AccessTokenFromCtx(ctx); tok != "" {
		return tok
	}
	return c.publicKey
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func decodeError(status int, body []byte) error {
	re := &gateway.RemoteError{Status: status}
	var ae apiError
	if len(body) > 0 && json.Unmarshal(body, &ae) == nil {
		re.Code = ae.Code
		re.Message = ae.Message
	}
	if re.Message == "" {
		re.Message = strings.TrimSpace(string(body))
	}
	if re.Message == "" {
		re.Message = http.StatusText(status)
	}
	return re
}

// parseContentRange extracts the total from "0-24/573" or "*/0".
func parseContentRange(h string) (int, error) {
	i := strings.LastIndexByte(h, '/')
	if i < 0 || i == len(h)-1 {
		return 0, fmt.Errorf("missing count in content-range %q", h)
	}
	total := h[i+1:]
	if total == "*" {
		return 0, fmt.Errorf("content-range %q has no exact count", h)
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, fmt.Errorf("parse content-range %q: %w", h, err)
	}
	return n, nil
}
