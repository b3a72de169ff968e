package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/memexlabs/memex-go/pkg/apierror"
)

// Client is the authenticated channel every service sends requests through.
// It is safe for concurrent use; the only shared-write path is SetAPIKey,
// which is a single atomic swap read fresh per request.
type Client struct {
	baseURL    string
	maxRetries int
	debug      bool
	timeout    time.Duration

	apiKey     atomic.Pointer[string]
	httpClient *http.Client
	logger     hclog.Logger

	// retryTimer and retryNotify are test seams for the backoff machinery.
	// Both nil in production.
	retryTimer  backoff.Timer
	retryNotify backoff.Notify
}

// New builds a Client from cfg, applying defaults for unset fields and
// validating the result. A nil logger disables logging.
func New(cfg Config, logger hclog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	switch cfg.MaxRetries {
	case MaxRetriesDisabled:
		cfg.MaxRetries = 0
	case 0:
		cfg.MaxRetries = DefaultMaxRetries
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	c := &Client{
		baseURL:    cfg.BaseURL,
		maxRetries: cfg.MaxRetries,
		debug:      cfg.Debug,
		timeout:    cfg.Timeout,
		httpClient: cfg.newHTTPClient(),
		logger:     logger.Named("transport"),
	}
	c.apiKey.Store(&cfg.APIKey)
	return c, nil
}

// SetAPIKey rotates the bearer token. Requests already in flight keep the
// key they were sent with; subsequent requests pick up the new one.
func (c *Client) SetAPIKey(key string) {
	c.apiKey.Store(&key)
}

// Snapshot returns an immutable copy of the effective configuration,
// including the current API key.
func (c *Client) Snapshot() Config {
	return Config{
		APIKey:     *c.apiKey.Load(),
		BaseURL:    c.baseURL,
		Timeout:    c.timeout,
		MaxRetries: c.maxRetries,
		Debug:      c.debug,
	}
}

// Do sends one API request and decodes a 2xx JSON response into result
// (which may be nil). Transient failures (no response, 429, 5xx) are retried
// up to MaxRetries times with exponential backoff, honoring a 429
// Retry-After hint. Each call owns its retry state; concurrent requests
// never share counters.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, result any) error {
	endpoint, err := c.buildURL(path, query)
	if err != nil {
		return &apierror.Error{Message: fmt.Sprintf("failed to build request URL: %v", err)}
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return &apierror.Error{Message: fmt.Sprintf("failed to encode request body: %v", err)}
		}
	}

	hinted := &serverHintBackOff{delegate: newBackOff()}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(hinted, uint64(c.maxRetries)), ctx)

	// lastErr holds the typed error from classification so the caller sees
	// it, not backoff bookkeeping, once retries are exhausted.
	var lastErr error
	op := func() error {
		typed, retryable, retryAfter := c.attempt(ctx, method, endpoint, payload, result)
		if typed == nil {
			return nil
		}
		lastErr = typed
		if !retryable {
			return backoff.Permanent(typed)
		}
		hinted.hint = time.Duration(retryAfter) * time.Second
		return typed
	}

	if err := backoff.RetryNotifyWithTimer(op, policy, c.retryNotify, c.retryTimer); err != nil {
		if lastErr != nil {
			return lastErr
		}
		return err
	}
	return nil
}

// serverHintBackOff substitutes a server-supplied Retry-After delay for the
// next interval when one is pending. The wrapped schedule still advances, and
// the wrapper sits under WithMaxRetries so hinted retries count against the
// cap like any other.
type serverHintBackOff struct {
	delegate backoff.BackOff
	hint     time.Duration
}

func (b *serverHintBackOff) NextBackOff() time.Duration {
	next := b.delegate.NextBackOff()
	if b.hint > 0 {
		next = b.hint
		b.hint = 0
	}
	return next
}

func (b *serverHintBackOff) Reset() {
	b.hint = 0
	b.delegate.Reset()
}

// newBackOff returns the retry schedule: 1s, 2s, 4s, 8s, then 10s flat.
func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// attempt performs a single request/response cycle and classifies the
// outcome. It reports whether the failure is transient and, for rate
// limits, the server-supplied retry hint in seconds.
func (c *Client) attempt(ctx context.Context, method, endpoint string, payload []byte, result any) (typed error, retryable bool, retryAfter int) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return &apierror.Error{Message: fmt.Sprintf("failed to create request: %v", err)}, false, 0
	}
	req.Header.Set("Authorization", "Bearer "+*c.apiKey.Load())
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := uuid.NewString()
	if c.debug {
		c.logger.Debug("sending request",
			"request_id", requestID,
			"method", method,
			"url", endpoint,
			"payload", string(payload),
		)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.debug {
			c.logger.Debug("request failed", "request_id", requestID, "error", err)
		}
		// No response at all is treated as transient.
		return &apierror.Error{
			Message: "no response from server",
			Details: map[string]any{"cause": err.Error()},
		}, true, 0
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apierror.Error{
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Status:  resp.StatusCode,
		}, true, 0
	}

	if c.debug {
		c.logger.Debug("received response",
			"request_id", requestID,
			"status", resp.StatusCode,
			"body", string(respBody),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		typed := classifyStatus(resp, respBody)
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		if rl, ok := typed.(*apierror.RateLimitError); ok {
			retryAfter = rl.RetryAfter
		}
		return typed, retryable, retryAfter
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &apierror.Error{
				Message: fmt.Sprintf("failed to decode response: %v", err),
				Status:  resp.StatusCode,
			}, false, 0
		}
	}
	return nil, false, 0
}

// errorBody is the error envelope the API uses for non-2xx responses.
type errorBody struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

// classifyStatus is the sole place HTTP failures become typed errors.
// Services propagate the result unchanged.
func classifyStatus(resp *http.Response, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)
	msg := eb.Error
	if msg == "" {
		msg = eb.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if msg == "" {
			msg = "invalid or missing API key"
		}
		return &apierror.AuthenticationError{Message: msg}
	case http.StatusNotFound:
		if msg == "" {
			msg = "resource not found"
		}
		return &apierror.NotFoundError{Message: msg}
	case http.StatusTooManyRequests:
		if msg == "" {
			msg = "rate limit exceeded"
		}
		return &apierror.RateLimitError{
			Message:    msg,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	default:
		if msg == "" {
			msg = "API request failed"
		}
		return &apierror.Error{Message: msg, Status: resp.StatusCode, Details: eb.Details}
	}
}

func parseRetryAfter(header string) int {
	if header == "" {
		return 0
	}
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return 0
	}
	return secs
}

func (c *Client) buildURL(path string, query url.Values) (string, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", err
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}
