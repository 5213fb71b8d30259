package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"commerce-adapter-layer/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds every outbound call that does not already carry a
// deadline. A call may time out, it may never hang.
const DefaultTimeout = 30 * time.Second

// Options configures a per-platform client.
type Options struct {
	// Timeout applied when the caller's context has no deadline.
	Timeout time.Duration
	// MinInterval is the fixed minimum delay between calls, for platforms
	// that rate-limit without sending Retry-After headers.
	MinInterval time.Duration
	Logger      zerolog.Logger
	// Transport overrides the underlying http.Client, used by tests.
	Transport *http.Client
}

// Client wraps all outbound platform calls with rate limiting, deadline
// enforcement, and the single-retry 429 policy. Adapters must not duplicate
// retry logic; this is the one place that knows HTTP-429 semantics.
type Client struct {
	platform    domain.Platform
	http        *http.Client
	limiter     *rate.Limiter
	minInterval time.Duration
	timeout     time.Duration
	logger      zerolog.Logger
}

// New creates a client for one platform.
func New(platform domain.Platform, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MinInterval <= 0 {
		opts.MinInterval = 500 * time.Millisecond
	}
	httpClient := opts.Transport
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		platform:    platform,
		http:        httpClient,
		limiter:     rate.NewLimiter(rate.Every(opts.MinInterval), 1),
		minInterval: opts.MinInterval,
		timeout:     opts.Timeout,
		logger:      opts.Logger,
	}
}

// Platform returns the platform this client serves.
func (c *Client) Platform() domain.Platform { return c.platform }

// DoJSON performs a request with an optional JSON body, decodes a JSON
// response into out (when out is non-nil), and returns the response headers
// for pagination metadata. Error mapping:
//
//	429 after one delayed retry  -> *domain.RateLimitError
//	timeout / connection failure -> *domain.NetworkError
//	other 4xx                    -> *domain.PlatformAPIError (non-retryable)
//	5xx                          -> *domain.PlatformAPIError (retryable by caller policy)
func (c *Client) DoJSON(ctx context.Context, method, url string, headers http.Header, body, out interface{}) (http.Header, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	resp, err := c.send(ctx, method, url, headers, payload, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return resp.Header, fmt.Errorf("failed to decode %s response: %w", c.platform, err)
		}
	} else {
		io.Copy(io.Discard, resp.Body)
	}
	return resp.Header, nil
}

// DoForm performs a form-encoded POST (OAuth token endpoints) and decodes
// the JSON response. Same error mapping as DoJSON.
func (c *Client) DoForm(ctx context.Context, url string, headers http.Header, form string, out interface{}) error {
	if headers == nil {
		headers = http.Header{}
	}
	headers.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.send(ctx, http.MethodPost, url, headers, []byte(form), false)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode %s token response: %w", c.platform, err)
		}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, url string, headers http.Header, payload []byte, jsonBody bool) (*http.Response, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.attempt(ctx, method, url, headers, payload, jsonBody)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusTooManyRequests {
		return c.classify(resp)
	}

	// One delayed retry on 429, honoring Retry-After when present.
	retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	delay := c.minInterval
	if retryAfter > 0 {
		delay = time.Duration(retryAfter * float64(time.Second))
	}
	c.logger.Warn().
		Str("platform", string(c.platform)).
		Str("url", url).
		Dur("delay", delay).
		Msg("Rate limited, retrying once")
	observeRetry(c.platform)

	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return nil, &domain.NetworkError{Platform: c.platform, Err: ctx.Err()}
	}

	resp, err = c.attempt(ctx, method, url, headers, payload, jsonBody)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &domain.RateLimitError{Platform: c.platform, RetryAfter: retryAfter}
	}
	return c.classify(resp)
}

func (c *Client) attempt(ctx context.Context, method, url string, headers http.Header, payload []byte, jsonBody bool) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &domain.NetworkError{Platform: c.platform, Err: err}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if jsonBody && payload != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	observeRequest(c.platform, resp, err, time.Since(start))
	if err != nil {
		// Timeouts and connection failures are both retryable by the caller.
		return nil, &domain.NetworkError{Platform: c.platform, Err: err}
	}
	return resp, nil
}

// classify maps non-2xx responses into the error taxonomy. The response body
// is consumed for error statuses so the platform's own message survives.
func (c *Client) classify(resp *http.Response) (*http.Response, error) {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	resp.Body.Close()
	message := strings.TrimSpace(string(snippet))

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &domain.AuthenticationError{Platform: c.platform, Reason: fmt.Sprintf("status %d: %s", resp.StatusCode, message)}
	}
	return nil, &domain.PlatformAPIError{
		Platform:   c.platform,
		StatusCode: resp.StatusCode,
		Message:    message,
		Retryable:  resp.StatusCode >= 500,
	}
}

// parseRetryAfter handles both delta-seconds and HTTP-date forms.
func parseRetryAfter(v string) float64 {
	if v == "" {
		return 0
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil && secs >= 0 {
		return secs
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t).Seconds(); d > 0 {
			return d
		}
	}
	return 0
}
