// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"ytextract/fetch"
	"ytextract/internal/retry"
)

// Config holds all application configuration.
type Config struct {
	// Addr is the listen address for the HTTP server (default: ":5000")
	Addr string `json:"addr"`

	// APIKey is the YouTube Data API key. Empty forces scraping-only mode.
	APIKey string `json:"api_key"`

	// RequestTimeout bounds one whole extraction call, across all
	// strategies, retries, and probes.
	RequestTimeout time.Duration `json:"request_timeout"`

	// FetchTimeout bounds a single page fetch.
	FetchTimeout time.Duration `json:"fetch_timeout"`
	// ProbeTimeout bounds a single thumbnail existence check.
	ProbeTimeout time.Duration `json:"probe_timeout"`

	// MaxAttempts is the page fetch attempt budget.
	MaxAttempts int `json:"max_attempts"`
	// InitialBackoff is the delay before the second fetch attempt.
	InitialBackoff time.Duration `json:"initial_backoff"`
	// MaxBackoff caps the delay between fetch attempts.
	MaxBackoff time.Duration `json:"max_backoff"`

	// PacingMin and PacingMax bound the randomized delay before every
	// outbound page fetch. Setting both to zero disables pacing.
	PacingMin time.Duration `json:"pacing_min"`
	PacingMax time.Duration `json:"pacing_max"`

	// PageRPS is the per-domain request rate for page fetches.
	PageRPS float64 `json:"page_rps"`

	// CallerRPM is the per-caller-IP request budget per minute for the
	// HTTP API.
	CallerRPM int `json:"caller_rpm"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:           ":5000",
		RequestTimeout: 60 * time.Second,
		FetchTimeout:   15 * time.Second,
		ProbeTimeout:   5 * time.Second,
		MaxAttempts:    3,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     30 * time.Second,
		PacingMin:      500 * time.Millisecond,
		PacingMax:      2 * time.Second,
		PageRPS:        1.0,
		CallerRPM:      10,
	}
}

// Load loads configuration from a .env file, a JSON config file, and
// environment variables. Priority: env vars > config file > defaults.
func Load() (*Config, error) {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if err := cfg.loadFromFile(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile attempts to load config from ytextract.json in the current
// directory or the user config directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"ytextract.json",
		filepath.Join(os.Getenv("HOME"), ".config", "ytextract", "ytextract.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("YTEXTRACT_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("YTEXTRACT_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Addr = ":" + v
	}
	if v := os.Getenv("YTEXTRACT_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RequestTimeout = d
		}
	}
	if v := os.Getenv("YTEXTRACT_FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.FetchTimeout = d
		}
	}
	if v := os.Getenv("YTEXTRACT_PROBE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.ProbeTimeout = d
		}
	}
	if v := os.Getenv("YTEXTRACT_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxAttempts = n
		}
	}
	if v := os.Getenv("YTEXTRACT_INITIAL_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.InitialBackoff = d
		}
	}
	if v := os.Getenv("YTEXTRACT_MAX_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.MaxBackoff = d
		}
	}
	if v := os.Getenv("YTEXTRACT_PACING_MIN"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.PacingMin = d
		}
	}
	if v := os.Getenv("YTEXTRACT_PACING_MAX"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.PacingMax = d
		}
	}
	if v := os.Getenv("YTEXTRACT_PAGE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.PageRPS = f
		}
	}
	if v := os.Getenv("YTEXTRACT_CALLER_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.CallerRPM = n
		}
	}
}

// Validate checks that configuration values are valid and consistent.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive")
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("probe_timeout must be positive")
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1")
	}
	if c.InitialBackoff <= 0 {
		return fmt.Errorf("initial_backoff must be positive")
	}
	if c.MaxBackoff < c.InitialBackoff {
		return fmt.Errorf("max_backoff must be >= initial_backoff")
	}
	if c.PacingMin < 0 || c.PacingMax < c.PacingMin {
		return fmt.Errorf("pacing bounds must satisfy 0 <= pacing_min <= pacing_max")
	}
	if c.PageRPS < 0 {
		return fmt.Errorf("page_rps must be non-negative")
	}
	if c.CallerRPM < 1 {
		return fmt.Errorf("caller_rpm must be at least 1")
	}
	return nil
}

// FetcherConfig maps the relevant settings onto a fetch configuration.
func (c *Config) FetcherConfig() *fetch.Config {
	fc := fetch.DefaultConfig()
	fc.Timeout = c.FetchTimeout
	fc.Retry = retry.Config{
		MaxAttempts:    c.MaxAttempts,
		InitialBackoff: c.InitialBackoff,
		MaxBackoff:     c.MaxBackoff,
		Multiplier:     2.0,
		JitterFraction: 0.2,
	}
	fc.PacingMin = c.PacingMin
	fc.PacingMax = c.PacingMax
	fc.RateLimiter.PageRPS = c.PageRPS
	return fc
}
