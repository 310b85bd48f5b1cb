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

	"github.com/fonovalabs/fonova-web/internal/logging"
)

// envelope is the response shape shared by every backend endpoint.
type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Email     string          `json:"email"`
	Token     string          `json:"token"`
	User      json.RawMessage `json:"user"`
	MessageID string          `json:"messageId"`
}

// Client talks to the content backend.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	quoteClient *http.Client
}

// New creates a client for baseURL. A zero timeout means DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: timeout},
		quoteClient: &http.Client{Timeout: max(timeout, QuoteTimeout)},
	}
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) doJSON(ctx context.Context, operation, method, path, token string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.send(ctx, operation, c.httpClient, req)
}

// send executes req and decodes the envelope. Non-2xx statuses and
// success=false bodies become *APIError.
func (c *Client) send(ctx context.Context, operation string, hc *http.Client, req *http.Request) (*envelope, error) {
	logger := logging.NewLogger(ctx)
	start := time.Now()

	resp, err := hc.Do(req)
	if err != nil {
		recordCall(time.Since(start), err)
		logger.LogError(operation, err)
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	if err != nil {
		recordCall(duration, err)
		logger.LogError(operation, err)
		return nil, fmt.Errorf("%w: read response: %v", ErrUnreachable, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= 400 || decodeErr != nil || !env.Success {
		apiErr := &APIError{Status: resp.StatusCode, Message: env.Message}
		recordCall(duration, apiErr)
		logger.LogWarnf(operation, "backend status=%d success=%t message=%q", resp.StatusCode, env.Success, env.Message)
		return nil, apiErr
	}

	recordCall(duration, nil)
	return &env, nil
}
