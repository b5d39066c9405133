package fetch

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter paces requests per upstream domain using a token bucket.
// It keeps the client under the cadence YouTube tolerates regardless of how
// many extraction calls run concurrently.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	config   RateLimiterConfig
}

// RateLimiterConfig defines per-domain request rates.
type RateLimiterConfig struct {
	// PageRPS is requests per second for page fetches (default: 1.0)
	PageRPS float64
	// CustomRates maps domains to RPS values. A rate of 0 disables
	// limiting for that domain.
	CustomRates map[string]float64
}

// DefaultRateLimiterConfig returns conservative defaults for scraping.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		PageRPS:     1.0,
		CustomRates: make(map[string]float64),
	}
}

// NewRateLimiter creates a new rate limiter with the given configuration.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.PageRPS == 0 {
		cfg.PageRPS = DefaultRateLimiterConfig().PageRPS
	}
	if cfg.CustomRates == nil {
		cfg.CustomRates = make(map[string]float64)
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		config:   cfg,
	}
}

// Wait blocks until the rate limit allows a request for the given URL, or
// the context is done.
func (rl *RateLimiter) Wait(ctx context.Context, urlStr string) error {
	if rl == nil {
		return nil
	}
	limiter := rl.getLimiter(urlStr)
	if limiter == nil {
		return nil
	}
	return limiter.Wait(ctx)
}

// getLimiter returns the rate limiter for a given URL, creating one if
// necessary. Returns nil when the domain is unlimited.
func (rl *RateLimiter) getLimiter(urlStr string) *rate.Limiter {
	domain := extractDomain(urlStr)
	rps := rl.getRPS(domain)
	if rps == 0 {
		return nil
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.limiters[domain]; ok {
		return limiter
	}

	// Burst of 1: each request waits its full share of the interval.
	limiter := rate.NewLimiter(rate.Limit(rps), 1)
	rl.limiters[domain] = limiter
	return limiter
}

// getRPS returns the requests per second for a given domain.
func (rl *RateLimiter) getRPS(domain string) float64 {
	if rps, ok := rl.config.CustomRates[domain]; ok {
		return rps
	}
	return rl.config.PageRPS
}

// extractDomain extracts the host (without port) from a URL string.
func extractDomain(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return "unknown"
	}
	host := u.Hostname()
	if host == "" {
		return "unknown"
	}
	return host
}
