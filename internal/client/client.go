// Package client implements the HTTP client for the treasure hunt solving
// service: one POST to submit a problem, one GET to retrieve a persisted
// calculation by id.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"huntctl/internal/hunt"
)

// DefaultTimeout bounds each request; the service computes synchronously so
// anything beyond this is treated as a failure.
const DefaultTimeout = 30 * time.Second

// Client talks to the solving service. It performs no retries and no
// cancellation of its own; callers serialize requests via their own busy
// flags and may cancel through the context.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client; used by tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger attaches a structured logger. Without it the client is silent.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured service address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Solve submits a problem and returns the computed result.
func (c *Client) Solve(ctx context.Context, problem hunt.Problem) (*hunt.SolveResult, error) {
	body, err := json.Marshal(problem)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal problem: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/TreasureHunt/solve", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("solve request failed", zap.Error(err))
		return nil, fmt.Errorf("solve request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := readErrorMessage(resp)
		c.logger.Warn("solve rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}

	var result hunt.SolveResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode solve response: %w", err)
	}

	c.logger.Info("solve completed",
		zap.Int("id", result.ID),
		zap.Int("minimumFuel", result.MinimumFuel),
		zap.Duration("elapsed", time.Since(start)))
	return &result, nil
}

// Lookup retrieves a persisted calculation by its positive integer id.
func (c *Client) Lookup(ctx context.Context, id int) (*hunt.Record, error) {
	if id <= 0 {
		return nil, fmt.Errorf("id must be positive, got %d", id)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/TreasureHunt/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("lookup request failed", zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := readErrorMessage(resp)
		c.logger.Warn("lookup rejected",
			zap.Int("id", id),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}

	var record hunt.Record
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode lookup response: %w", err)
	}

	c.logger.Info("lookup completed",
		zap.Int("id", record.ID),
		zap.Duration("elapsed", time.Since(start)))
	return &record, nil
}

// APIError is a non-2xx response reduced to a single human-readable
// message, already extracted from the body where possible.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// readErrorMessage reduces a failure response body to one message string.
// The service usually sends {"message": ...}; ASP.NET-style problem
// details use {"title": ...}. Unparsable bodies degrade to their raw text,
// then to the HTTP status line.
func readErrorMessage(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var body struct {
		Message string `json:"message"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Title != "" {
			return body.Title
		}
	}

	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return fmt.Sprintf("request failed with status %d", resp.StatusCode)
}
