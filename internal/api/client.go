package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/frahmantamala/employee-portal/internal"
	"github.com/frahmantamala/employee-portal/pkg/logger"
)

// TokenSource supplies the bearer token attached to outgoing requests.
// An empty token means no session; the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// Client is the single egress point to the portal backend. It attaches
// the bearer credential, sets JSON headers, throttles outbound calls
// and classifies failures into transport, server and decode errors.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
}

func NewClient(cfg Config, tokens TokenSource) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = int(rps)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// errorEnvelope is the common error body shape. Endpoints that send a
// different shape fall back to the generic status message.
type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return internal.NewTransportError("request cancelled", err)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return internal.NewDecodeError("failed to encode request body", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return internal.NewTransportError("failed to create request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := logger.From(ctx)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed before reaching server",
			"method", method,
			"path", path,
			"error", err)
		return internal.NewTransportError("no response from server", err)
	}
	defer resp.Body.Close()

	log.Debug("portal request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(started).Milliseconds())

	if resp.StatusCode >= 400 {
		return c.serverError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return internal.NewDecodeError(
			fmt.Sprintf("unexpected response shape from %s", path), err)
	}

	return nil
}

func (c *Client) serverError(resp *http.Response) error {
	var envelope errorEnvelope

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(raw) > 0 {
		// best effort; a non-JSON error body keeps the generic message
		_ = json.Unmarshal(raw, &envelope)
	}

	message := envelope.Message
	if message == "" {
		message = envelope.Error
	}
	if message == "" {
		message = fmt.Sprintf("server returned status %d", resp.StatusCode)
	}

	return internal.NewServerError(resp.StatusCode, message)
}
