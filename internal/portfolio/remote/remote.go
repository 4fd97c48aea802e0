// Package remote is the admin client's view of the web service API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/devportfolio/devportfolio/internal/portfolio"
)

// Paths of the web service API.
const (
	PathPortfolio = "/api/portfolio"
	PathSave      = "/api/admin/save"
	PathLogin     = "/api/admin/login"

	// DefaultTimeout bounds every call when no timeout is configured.
	DefaultTimeout = 8 * time.Second

	maxBodySize = 10 << 20
)

// PersistStatus tells where a pushed snapshot ended up.
type PersistStatus string

const (
	// StatusDurable means the store backend persisted the snapshot.
	StatusDurable PersistStatus = "durable"
	// StatusLocalOnly means the web service accepted it but could not reach the store backend.
	StatusLocalOnly PersistStatus = "local-only"
)

// PushResult is the web service's answer to a push.
type PushResult struct {
	Success bool
	Message string
	Status  PersistStatus
}

// saveResponse is the body of POST /api/admin/save.
type saveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Storage string `json:"storage"`
	Error   string `json:"error"`
}

// Client talks to the web service. It keeps the session cookie of Login.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the http client. Its cookie jar is used as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for baseURL. A zero timeout uses DefaultTimeout.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{Jar: jar},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// FetchSnapshot reads the current snapshot. Projects and skills that are
// not lists come back as empty lists.
func (c *Client) FetchSnapshot(ctx context.Context) (portfolio.Snapshot, error) {
	const op = "fetch"

	status, body, err := c.do(ctx, http.MethodGet, PathPortfolio, nil)
	if err != nil {
		return portfolio.Snapshot{}, &Error{Op: op, Err: err}
	}

	if status < 200 || status > 299 {
		return portfolio.Snapshot{}, &Error{Op: op, StatusCode: status, Err: statusErr(status)}
	}

	s, err := portfolio.Decode(body)
	if err != nil {
		return portfolio.Snapshot{}, &Error{Op: op, StatusCode: status, Err: fmt.Errorf("decode snapshot: %w", err)}
	}

	return s, nil
}

// PushSnapshot sends the snapshot to the web service. A 2xx answer is never
// an error, even when it reports success=false.
func (c *Client) PushSnapshot(ctx context.Context, s portfolio.Snapshot) (PushResult, error) {
	const op = "push"

	s = s.Clone()
	s.Normalize()

	payload, err := json.Marshal(s)
	if err != nil {
		return PushResult{}, &Error{Op: op, Err: err}
	}

	status, body, err := c.do(ctx, http.MethodPost, PathSave, payload)
	if err != nil {
		return PushResult{}, &Error{Op: op, Err: err}
	}

	var resp saveResponse

	decodeErr := json.Unmarshal(body, &resp)

	switch {
	case status == http.StatusInternalServerError && decodeErr == nil && !resp.Success:
		return PushResult{}, &Error{Op: op, StatusCode: status, Err: fmt.Errorf("%w: %s", ErrRejected, resp.Message)}
	case status < 200 || status > 299:
		return PushResult{}, &Error{Op: op, StatusCode: status, Err: statusErr(status)}
	case decodeErr != nil:
		return PushResult{}, &Error{Op: op, StatusCode: status, Err: fmt.Errorf("decode save response: %w", decodeErr)}
	}

	result := PushResult{
		Success: resp.Success,
		Message: resp.Message,
		Status:  StatusLocalOnly,
	}

	if resp.Success && resp.Storage == "backend" {
		result.Status = StatusDurable
	}

	log.Debug().Bool("success", result.Success).Str("status", string(result.Status)).Msg("snapshot pushed")

	return result, nil
}

// Login opens an admin session. code is the TOTP code, empty when the
// account has no second factor.
func (c *Client) Login(ctx context.Context, username, password, code string) error {
	const op = "login"

	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
		"code":     code,
	})
	if err != nil {
		return &Error{Op: op, Err: err}
	}

	status, _, err := c.do(ctx, http.MethodPost, PathLogin, payload)
	if err != nil {
		return &Error{Op: op, Err: err}
	}

	if status != http.StatusOK {
		return &Error{Op: op, StatusCode: status, Err: statusErr(status)}
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read body: %w", err)
	}

	return resp.StatusCode, data, nil
}

func statusErr(status int) error {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return ErrUnauthorized
	}

	return errors.New(http.StatusText(status))
}
