// Package fetch provides the resilient HTTP layer used by the page scraping
// strategies: request pacing, identity rotation, blocking detection, and
// retry with exponential backoff.
package fetch

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"ytextract/internal/retry"
)

// blockingPhrases are substrings whose presence in an otherwise successful
// response body marks it as an anti-bot page rather than real content.
var blockingPhrases = []string{
	"unusual traffic",
	"captcha",
	"blocked",
	"access denied",
	"too many requests",
}

// MinPlausibleBody is the smallest body size (in bytes) accepted as a real
// video page. YouTube watch pages run to hundreds of kilobytes; anything
// under this is an error page or a stub.
const MinPlausibleBody = 1000

// Config holds fetcher configuration.
type Config struct {
	// Timeout for individual HTTP requests.
	Timeout time.Duration

	// Retry configuration for the attempt loop.
	Retry retry.Config

	// PacingMin and PacingMax bound the randomized delay inserted before
	// every attempt, including the first. Zero values disable pacing
	// (used by tests).
	PacingMin time.Duration
	PacingMax time.Duration

	// MinBodyBytes is the smallest acceptable body for a page fetch.
	// Defaults to MinPlausibleBody.
	MinBodyBytes int

	// RateLimiter configuration.
	RateLimiter RateLimiterConfig

	// CircuitBreaker configuration.
	CircuitBreaker CircuitBreakerConfig
}

// DefaultConfig returns sensible defaults for the fetcher.
func DefaultConfig() *Config {
	return &Config{
		Timeout:        15 * time.Second,
		Retry:          retry.DefaultConfig(),
		PacingMin:      500 * time.Millisecond,
		PacingMax:      2 * time.Second,
		MinBodyBytes:   MinPlausibleBody,
		RateLimiter:    DefaultRateLimiterConfig(),
		CircuitBreaker: DefaultCircuitBreakerConfig(),
	}
}

// Client fetches pages with retry, pacing, and identity rotation.
// It is safe for concurrent use.
type Client struct {
	base        *http.Client
	config      *Config
	rateLimiter *RateLimiter
	breaker     *CircuitBreaker
	identities  *IdentityPool
}

// Options adjust a single Fetch call.
type Options struct {
	// MaxAttempts overrides the configured attempt budget when > 0.
	MaxAttempts int
	// Identity pins a specific request identity instead of rotating.
	Identity *Identity
	// Headers are applied after the identity headers and win on conflict.
	Headers map[string]string
}

// Response is a fully-read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// New creates a fetcher with the given configuration.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.MinBodyBytes == 0 {
		cfg.MinBodyBytes = MinPlausibleBody
	}

	transport := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     20,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		base: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		config:      cfg,
		rateLimiter: NewRateLimiter(cfg.RateLimiter),
		breaker:     NewCircuitBreaker(cfg.CircuitBreaker),
		identities:  NewIdentityPool(nil),
	}
}

// Fetch performs a GET with pacing, identity rotation, blocking detection,
// and retries. Soft failures (blocking phrases, short bodies, HTTP 429) are
// retried up to the attempt budget; other non-2xx statuses fail immediately.
// Once the budget is spent the last error is returned wrapped in ErrExhausted.
func (c *Client) Fetch(ctx context.Context, urlStr string, opts *Options) (*Response, error) {
	if opts == nil {
		opts = &Options{}
	}

	domain := extractDomain(urlStr)
	if err := c.breaker.Allow(domain); err != nil {
		return nil, err
	}

	retryCfg := c.config.Retry
	if opts.MaxAttempts > 0 {
		retryCfg.MaxAttempts = opts.MaxAttempts
	}

	var result *Response

	err := retry.Do(ctx, retryCfg, isRetryableFetchError, func(ctx context.Context) error {
		// Pace every attempt so the request cadence stays plausible.
		if err := c.pace(ctx); err != nil {
			return err
		}
		if err := c.rateLimiter.Wait(ctx, urlStr); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
		if err != nil {
			return err
		}

		identity := c.identities.Next()
		if opts.Identity != nil {
			identity = *opts.Identity
		}
		for k, v := range identity.Headers {
			// Let the transport negotiate compression so bodies arrive
			// decoded.
			if strings.EqualFold(k, "Accept-Encoding") {
				continue
			}
			req.Header.Set(k, v)
		}
		for k, v := range opts.Headers {
			req.Header.Set(k, v)
		}

		resp, err := c.base.Do(req)
		if err != nil {
			return fmt.Errorf("http request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response body: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			return &RateLimitError{
				StatusCode: resp.StatusCode,
				RetryAfter: parseRetryAfter(resp.Header),
			}
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &HTTPError{StatusCode: resp.StatusCode, Body: body}
		}

		if reason, blocked := c.classifyBody(body); blocked {
			return &BlockedError{Reason: reason, BodySize: len(body)}
		}

		result = &Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       body,
		}
		return nil
	})

	if err != nil {
		c.breaker.RecordFailure(domain)
		return nil, err
	}

	c.breaker.RecordSuccess(domain)
	return result, nil
}

// classifyBody checks a successful response body for blocking signals.
func (c *Client) classifyBody(body []byte) (string, bool) {
	if len(body) < c.config.MinBodyBytes {
		return "implausibly short body", true
	}
	lower := strings.ToLower(string(body))
	for _, phrase := range blockingPhrases {
		if strings.Contains(lower, phrase) {
			return "blocking phrase: " + phrase, true
		}
	}
	return "", false
}

// pace sleeps a randomized interval within the configured pacing bounds.
func (c *Client) pace(ctx context.Context) error {
	min, max := c.config.PacingMin, c.config.PacingMax
	if max <= 0 || max < min {
		return nil
	}
	d := min
	if max > min {
		d = min + time.Duration(rand.Int63n(int64(max-min)))
	}
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// parseRetryAfter extracts the Retry-After header value as a duration.
func parseRetryAfter(header http.Header) time.Duration {
	retryAfter := header.Get("Retry-After")
	if retryAfter == "" {
		return 0
	}
	var seconds int
	if _, err := fmt.Sscanf(retryAfter, "%d", &seconds); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(retryAfter); err == nil {
		return time.Until(t)
	}
	return 0
}

// Close releases idle connections held by the underlying transport.
func (c *Client) Close() error {
	if c.base != nil {
		c.base.CloseIdleConnections()
	}
	return nil
}
