package compliance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"legalflow/pkg/config"
	"legalflow/pkg/logging"
	"legalflow/pkg/version"
)

const (
	DefaultEndpoint        = config.DefaultAPIURL
	DefaultTimeout         = 30 * time.Second
	DefaultRateLimitDetail = "Daily limit reached."

	maxPreviewLen = 200
)

// Client posts chat turns to the hosted compliance agent.
type Client struct {
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a client from the API section of the config.
func NewClient(cfg config.APIConfig) *Client {
	return newClientWithHTTPClient(cfg, &http.Client{})
}

func newClientWithHTTPClient(cfg config.APIConfig, httpClient *http.Client) *Client {
	endpoint := strings.TrimSpace(cfg.URL)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		endpoint:   endpoint,
		timeout:    timeout,
		httpClient: httpClient,
		userAgent:  "legalflow/" + version.Summary(),
	}
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Timeout returns the per-request deadline.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// SendMessage posts one user message and returns the agent's reply.
// The request is cancelled after the client timeout even if ctx lives longer.
func (c *Client) SendMessage(ctx context.Context, message, threadID string) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(Request{Message: message, ThreadID: threadID})
	if err != nil {
		return Response{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	logger := slog.Default()
	if logger.Enabled(ctx, logging.LevelTrace) {
		logger.Log(ctx, logging.LevelTrace, "compliance_request_body", "json", string(payload))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	slog.Debug("compliance_request_start",
		"url", c.endpoint,
		"thread_id", threadID,
		"message_len", len(message),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		slog.Error("compliance_request_error", "error", err, "elapsed", time.Since(start))
		return Response{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("compliance_response_read_error", "error", err)
		return Response{}, fmt.Errorf("failed to read response: %w", err)
	}

	slog.Debug("compliance_response",
		"status_code", resp.StatusCode,
		"response_size", len(body),
		"elapsed", time.Since(start),
	)
	if logger.Enabled(ctx, logging.LevelTrace) {
		logger.Log(ctx, logging.LevelTrace, "compliance_response_body", "json", string(body))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("compliance_error_status",
			"status_code", resp.StatusCode,
			"response_preview", preview(string(body)),
		)
		if resp.StatusCode == http.StatusTooManyRequests {
			return Response{}, &RateLimitError{Detail: rateLimitDetail(body)}
		}
		return Response{}, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		slog.Error("compliance_response_decode_error", "error", err)
		return Response{}, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return out, nil
}

// rateLimitDetail extracts a non-empty string "detail" field, falling back
// to DefaultRateLimitDetail for anything else.
func rateLimitDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return DefaultRateLimitDetail
	}
	detail, ok := eb.Detail.(string)
	if !ok || strings.TrimSpace(detail) == "" {
		return DefaultRateLimitDetail
	}
	return detail
}

func preview(s string) string {
	if len(s) > maxPreviewLen {
		return s[:maxPreviewLen] + "..."
	}
	return s
}
