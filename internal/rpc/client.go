package rpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fystack/bnbchain-adapter/pkg/ratelimiter"
	"github.com/fystack/bnbchain-adapter/pkg/retry"
)

// AuthConfig holds optional authentication for hosted API gateways.
type AuthConfig struct {
	Type    string            `json:"type"`  // "bearer", "api_key", "custom"
	Token   string            `json:"token"` // For bearer/api_key
	Headers map[string]string `json:"headers"`
}

type ClientConfig struct {
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// Retryable reports whether the status is worth another attempt.
func (e *HTTPError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// BaseClient is a rate limited, retrying REST client bound to one base URL.
type BaseClient struct {
	httpClient  *http.Client
	baseURL     string
	auth        *AuthConfig
	cfg         ClientConfig
	rateLimiter *ratelimiter.RateLimiter
}

func NewBaseClient(baseURL string, auth *AuthConfig, cfg ClientConfig, rl *ratelimiter.RateLimiter) *BaseClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = retry.DefaultInterval
	}
	return &BaseClient{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		auth:        auth,
		cfg:         cfg,
		rateLimiter: rl,
	}
}

func (c *BaseClient) URL() string { return c.baseURL }

// Get performs a GET, retrying network errors, 429 and 5xx responses.
func (c *BaseClient) Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	var body []byte
	op := func() error {
		data, err := c.do(ctx, http.MethodGet, endpoint, params)
		if err != nil {
			var httpErr *HTTPError
			if errors.As(err, &httpErr) && !httpErr.Retryable() {
				return retry.Permanent(err)
			}
			if ctx.Err() != nil {
				return retry.Permanent(ctx.Err())
			}
			return err
		}
		body = data
		return nil
	}

	if c.cfg.MaxRetries <= 0 {
		if err := op(); err != nil {
			return nil, unwrapPermanent(err)
		}
		return body, nil
	}

	err := retry.Exponential(ctx, op, retry.ExponentialConfig{
		InitialInterval: c.cfg.RetryDelay,
		MaxRetries:      uint64(c.cfg.MaxRetries),
		OnRetry: func(err error, next time.Duration) {
			slog.Debug("Retrying request", "endpoint", endpoint, "next", next, "err", err)
		},
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func unwrapPermanent(err error) error {
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		return perm.Err
	}
	return err
}

func (c *BaseClient) do(ctx context.Context, method, endpoint string, params url.Values) ([]byte, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	c.setAuthHeaders(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	slog.Debug("HTTP request completed", "url", u, "status", resp.StatusCode, "elapsed", time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return data, &HTTPError{StatusCode: resp.StatusCode, URL: u, Body: string(data)}
	}
	return data, nil
}

func (c *BaseClient) setAuthHeaders(req *http.Request) {
	if c.auth == nil {
		return
	}
	switch c.auth.Type {
	case "bearer":
		req.Header.Set("Authorization", "Bearer "+c.auth.Token)
	case "api_key":
		req.Header.Set("X-API-Key", c.auth.Token)
	case "custom":
		for k, v := range c.auth.Headers {
			req.Header.Set(k, v)
		}
	}
}
