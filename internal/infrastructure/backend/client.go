// Package backend holds the HTTP side of the gateway: the client gate every
// outbound call passes through, and the auth client built on top of it.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestionmed/admin-gateway/internal/api/metrics"
	"github.com/gestionmed/admin-gateway/internal/core/domain"
	"github.com/gestionmed/admin-gateway/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Client is the single gate for outbound calls to the backend REST API.
// It attaches the bearer token held by the session store and intercepts 401
// responses: the store is cleared first, then the unauthorized hook fires
// (navigation to login plus session-manager convergence), and the call still
// fails so no caller can mistake an invalidated request for a success.
type Client struct {
	base  *url.URL
	http  *http.Client
	store ports.SessionStore
	log   zerolog.Logger

	mu             sync.RWMutex
	onUnauthorized func()
}

// ClientOptions groups Client dependencies.
type ClientOptions struct {
	BaseURL string
	Timeout time.Duration
	Store   ports.SessionStore
	Log     zerolog.Logger
}

// NewClient builds a gate for the backend at BaseURL.
func NewClient(opts ClientOptions) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend base url: %w", err)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base:  base,
		http:  &http.Client{Timeout: timeout},
		store: opts.Store,
		log:   opts.Log,
	}, nil
}

// SetUnauthorizedHandler registers the hook fired once per intercepted 401,
// strictly after the store has been cleared.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

// Do issues a request against the backend. Transport faults propagate
// unchanged. A 401 response is consumed here: the session store is cleared,
// the unauthorized hook runs, and domain.ErrUnauthorized is returned. For
// any other response the caller owns (and must close) the body.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token, ok := c.store.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(method, "transport_error").Inc()
		return nil, err
	}
	metrics.BackendRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.BackendRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if resp.StatusCode == http.StatusUnauthorized {
		_ = resp.Body.Close()
		// The store must be cleared before anything navigates to login, so
		// the login page's startup check never sees a stale token.
		c.store.ClearAll()
		metrics.InvalidationsTotal.WithLabelValues("unauthorized_response").Inc()
		c.log.Info().Str("method", method).Str("path", path).Msg("backend rejected request as unauthorized, session cleared")
		c.fireUnauthorized()
		return nil, domain.ErrUnauthorized
	}

	return resp, nil
}

func (c *Client) fireUnauthorized() {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// Notify posts a fire-and-forget payload using an explicit token instead of
// the store's. Used for session lifecycle notices whose session is already
// gone locally; a 401 here is expected and intercepts nothing.
func (c *Client) Notify(ctx context.Context, path, token string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.JoinPath(path).String(), bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return nil
}

// Envelope is the backend's canonical response shape: {success, data|message}.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// DoJSON issues a JSON request and decodes the response envelope. A non-2xx
// status with a well-formed envelope is still returned to the caller — the
// success flag, not the status, carries the logical outcome.
func (c *Client) DoJSON(ctx context.Context, method, path string, in any) (*Envelope, error) {
	var body io.Reader
	var contentType string
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}

	resp, err := c.Do(ctx, method, path, nil, body, contentType)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &env, nil
}
