// Package upstream is the web service's client of the store backend.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/devportfolio/devportfolio/internal/auth"
	"github.com/devportfolio/devportfolio/internal/config"
	"github.com/devportfolio/devportfolio/internal/portfolio"
)

const (
	defaultTimeout = 8 * time.Second
	maxBodySize    = 10 << 20

	pathPortfolio = "/api/portfolio"
	pathProjects  = "/api/projects"
	pathContact   = "/api/contact"
	pathHealth    = "/health"
)

// Contact is a contact form submission.
type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Health is the store backend's health answer.
type Health struct {
	Status     string `json:"status"`
	Timestamp  string `json:"timestamp"`
	DataExists bool   `json:"data_exists"`
}

// Client calls the store backend. Write calls carry a signed bearer token
// when a secret is configured.
type Client struct {
	baseURL    string
	timeout    time.Duration
	secret     string
	httpClient *http.Client
	now        func() time.Time
}

// Open creates a client from the upstream settings.
func Open(cfg config.Upstream) (*Client, error) {
	if cfg.URL == "" {
		return nil, ErrEmptyURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		timeout:    timeout,
		secret:     cfg.JWTSecret,
		httpClient: &http.Client{},
		now:        time.Now,
	}, nil
}

// URL returns the base URL of the store backend.
func (c *Client) URL() string {
	if c == nil {
		return ""
	}

	return c.baseURL
}

// Test checks the store backend is reachable.
func (c *Client) Test(ctx context.Context) error {
	h, err := c.Health(ctx)
	if err != nil {
		return err
	}

	log.Info().Str("status", h.Status).Bool("data_exists", h.DataExists).
		Msg("store backend connection test successful")

	return nil
}

// Portfolio reads the stored snapshot.
func (c *Client) Portfolio(ctx context.Context) (portfolio.Snapshot, error) {
	var raw json.RawMessage
	if err := c.call(ctx, "portfolio", http.MethodGet, pathPortfolio, nil, false, &raw); err != nil {
		return portfolio.Snapshot{}, err
	}

	s, err := portfolio.Decode(raw)
	if err != nil {
		return portfolio.Snapshot{}, fmt.Errorf("%w: decode portfolio: %w", ErrUnavailable, err)
	}

	return s, nil
}

// Projects reads the stored project list.
func (c *Client) Projects(ctx context.Context) ([]portfolio.Project, error) {
	var raw json.RawMessage
	if err := c.call(ctx, "projects", http.MethodGet, pathProjects, nil, false, &raw); err != nil {
		return nil, err
	}

	projects, err := portfolio.DecodeProjects(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decode projects: %w", ErrUnavailable, err)
	}

	return projects, nil
}

// SavePortfolio stores the snapshot and returns the store backend's answer as is.
func (c *Client) SavePortfolio(ctx context.Context, s portfolio.Snapshot) (json.RawMessage, error) {
	s = s.Clone()
	s.Normalize()

	var resp json.RawMessage
	if err := c.call(ctx, "save", http.MethodPost, pathPortfolio, s, true, &resp); err != nil {
		return nil, err
	}

	return resp, nil
}

// SubmitContact stores a contact message and returns the store backend's message.
func (c *Client) SubmitContact(ctx context.Context, msg Contact) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}

	if err := c.call(ctx, "contact", http.MethodPost, pathContact, msg, false, &resp); err != nil {
		return "", err
	}

	return resp.Message, nil
}

// Health reads the store backend's health.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	if err := c.call(ctx, "health", http.MethodGet, pathHealth, nil, false, &h); err != nil {
		return Health{}, err
	}

	return h, nil
}

// call performs one request and decodes a 2xx body into out. Failures are
// counted per operation.
func (c *Client) call(ctx context.Context, op, method, path string, in any, signed bool, out any) (err error) {
	if c == nil || c.httpClient == nil {
		return ErrClientNotInitialized
	}

	start := time.Now()
	defer func() { observe(op, time.Since(start).Seconds(), err) }()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader

	if in != nil {
		payload, errMarshal := json.Marshal(in)
		if errMarshal != nil {
			return fmt.Errorf("marshal %s request: %w", op, errMarshal)
		}

		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	req.Header.Set("Accept", "application/json")

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if signed && c.secret != "" {
		token, errSign := auth.SignToken(c.secret, auth.IssuerWeb, c.now())
		if errSign != nil {
			return fmt.Errorf("sign %s request: %w", op, errSign)
		}

		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		var e struct {
			Error string `json:"error"`
		}

		_ = json.Unmarshal(data, &e)

		return &RejectedError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %w", ErrUnavailable, op, err)
	}

	return nil
}
