package myflix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/flixops/flixctl/session"
)

// SessionSource exposes the current login identity to the client. It is
// satisfied by *session.Store; tests may substitute their own.
type SessionSource interface {
	Get() session.Session
	Set(username, token string) error
	Clear() error
}

// Client talks to the myFlix REST API. It owns request construction
// (base URL, JSON bodies, bearer auth) and the normalization of every
// response and failure into a single canonical shape.
type Client struct {
	baseURL    string
	session    SessionSource
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new myFlix API client.
func NewClient(baseURL string, sess SessionSource, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: API base URL is required", ErrInvalidConfig)
	}
	if sess == nil {
		return nil, fmt.Errorf("%w: session store is required", ErrInvalidConfig)
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: sess,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// buildRequest constructs an outbound request. The path is joined to the
// base URL, a non-nil body is JSON-encoded, and when authenticated is
// true the current session token is attached as a bearer header. An
// empty token still produces "Bearer " rather than no header at all;
// rejecting it is the server's job.
func (c *Client) buildRequest(ctx context.Context, method, path string, body any, authenticated bool) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &ClientError{Kind: KindTransport, Err: fmt.Errorf("failed to encode request body: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &ClientError{Kind: KindTransport, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+c.session.Get().Token)
	}

	return req, nil
}

// do executes a request and folds both failure origins into ClientError.
// On success it returns the normalized body, never nil.
func (c *Client) do(ctx context.Context, method, path string, body any, authenticated bool) (json.RawMessage, error) {
	req, err := c.buildRequest(ctx, method, path, body, authenticated)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Bool("authenticated", authenticated).
		Msg("Issuing API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().
			Str("method", method).
			Str("path", path).
			Err(err).
			Msg("Request never reached the server")
		return nil, &ClientError{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error().
			Str("method", method).
			Str("path", path).
			Err(err).
			Msg("Failed to read response body")
		return nil, &ClientError{Kind: KindTransport, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("body", string(raw)).
			Msg("API request failed")
		return nil, &ClientError{Kind: KindHTTP, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	return normalizeBody(raw), nil
}
