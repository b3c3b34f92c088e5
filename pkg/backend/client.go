package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wwwzhouhui/jimeng-mcp-server/internal/observability"
	"github.com/wwwzhouhui/jimeng-mcp-server/pkg/tool"
)

// Config holds backend client configuration.
type Config struct {
	BaseURL string
	APIKey  string
}

// Client issues tool invocations against the Jimeng API. It is
// stateless between calls: every invocation is its own request with its
// own timeout, and nothing is cached or pooled by business logic.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a backend client.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("backend API key is required")
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		// Per-call deadlines come from the request context; the client
		// itself carries no global timeout.
		httpClient: &http.Client{},
		logger:     logger,
	}, nil
}

// Invoke issues exactly one blocking POST for the normalized request and
// converts every outcome, success or failure, into an envelope value.
// There are no retries here; retrying is a caller concern.
func (c *Client) Invoke(ctx context.Context, req *tool.NormalizedRequest) tool.Envelope {
	body, err := json.Marshal(req.Payload)
	if err != nil {
		return c.failure(req, tool.ErrTransport, "failed to encode request payload: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, req.Timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+req.Endpoint, bytes.NewReader(body))
	if err != nil {
		return c.failure(req, tool.ErrTransport, "failed to build request: %v", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Info().
		Str("tool", req.Tool).
		Str("endpoint", req.Endpoint).
		Dur("timeout", req.Timeout).
		Msg("Invoking backend")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return c.failure(req, tool.ErrTimeout,
				"backend request timed out: timeout (%ds), the Jimeng API may be responding slowly, please retry later",
				int(req.Timeout.Seconds()))
		}
		return c.failure(req, tool.ErrTransport, "backend request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return c.failure(req, tool.ErrTimeout,
				"backend request timed out: timeout (%ds), the Jimeng API may be responding slowly, please retry later",
				int(req.Timeout.Seconds()))
		}
		return c.failure(req, tool.ErrTransport, "failed to read backend response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.failure(req, tool.ErrBackendStatus,
			"backend returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return c.failure(req, tool.ErrTransport, "invalid backend response body: %v", err)
	}

	env := shape(req, &parsed)
	if !env.OK && env.Err != nil {
		observability.RecordBackendError(string(env.Err.Kind))
	}
	return env
}

func (c *Client) failure(req *tool.NormalizedRequest, kind tool.ErrorKind, format string, args ...interface{}) tool.Envelope {
	env := tool.Failure(kind, format, args...)
	c.logger.Error().
		Str("tool", req.Tool).
		Str("kind", string(kind)).
		Msg(env.Err.Message)
	observability.RecordBackendError(string(kind))
	return env
}
