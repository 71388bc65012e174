// Package schedclient is a typed client for the WeSign scheduler service.
// It exists for API smoke tests: every response is validated against a JSON
// Schema before it is decoded, so contract drift fails loudly.
package schedclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

var (
	// ErrNotFound maps 404 responses.
	ErrNotFound = errors.New("schedule not found")
	// ErrBadRequest maps 400/422 responses.
	ErrBadRequest = errors.New("scheduler rejected request")
)

// Client talks to the scheduler REST API.
type Client struct {
	baseURL string
	token   string
	hc      *http.Client
	limiter *rate.Limiter
}

// Option customizes a Client.
type Option func(*Client)

// WithToken sets a bearer token for authenticated deployments.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithRateLimit overrides the default 10 req/s smoke-test budget.
func WithRateLimit(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// NewClient creates a scheduler client for baseURL (no trailing slash needed).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(10), 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Health checks the service health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil, "")
}

// CreateSchedule registers a new schedule and returns it with the
// server-assigned ID and next run.
func (c *Client) CreateSchedule(ctx context.Context, s Schedule) (*Schedule, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadRequest, err)
	}
	var out Schedule
	if err := c.do(ctx, http.MethodPost, "/api/schedules", s, &out, scheduleSchema); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSchedule fetches one schedule by ID.
func (c *Client) GetSchedule(ctx context.Context, id string) (*Schedule, error) {
	var out Schedule
	if err := c.do(ctx, http.MethodGet, "/api/schedules/"+id, nil, &out, scheduleSchema); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSchedules returns all schedules.
func (c *Client) ListSchedules(ctx context.Context) ([]Schedule, error) {
	var out []Schedule
	if err := c.do(ctx, http.MethodGet, "/api/schedules", nil, &out, scheduleListSchema); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateSchedule replaces a schedule definition.
func (c *Client) UpdateSchedule(ctx context.Context, id string, s Schedule) (*Schedule, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadRequest, err)
	}
	var out Schedule
	if err := c.do(ctx, http.MethodPut, "/api/schedules/"+id, s, &out, scheduleSchema); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSchedule removes a schedule.
func (c *Client) DeleteSchedule(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/schedules/"+id, nil, nil, "")
}

// PauseSchedule disables a schedule without deleting it.
func (c *Client) PauseSchedule(ctx context.Context, id string) (*Schedule, error) {
	var out Schedule
	if err := c.do(ctx, http.MethodPost, "/api/schedules/"+id+"/pause", nil, &out, scheduleSchema); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResumeSchedule re-enables a paused schedule.
func (c *Client) ResumeSchedule(ctx context.Context, id string) (*Schedule, error) {
	var out Schedule
	if err := c.do(ctx, http.MethodPost, "/api/schedules/"+id+"/resume", nil, &out, scheduleSchema); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats fetches the scheduler statistics.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	if err := c.do(ctx, http.MethodGet, "/api/schedules/stats", nil, &out, statsSchema); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, schema string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrBadRequest, truncate(data))
	case resp.StatusCode >= 300:
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, truncate(data))
	}

	if out == nil {
		return nil
	}
	if schema != "" {
		if err := validateAgainstSchema(schema, data); err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

func truncate(b []byte) string {
	const max = 512
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
