package fetch

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiterPacesPerDomain(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{PageRPS: 100})

	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := rl.Wait(ctx, "https://example.com/page"); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}
	// Burst of 1 at 100 rps: two of the three waits pay ~10ms each.
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Errorf("expected pacing between requests, elapsed %v", elapsed)
	}
}

func TestRateLimiterCustomRateDisables(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		PageRPS:     0.001,
		CustomRates: map[string]float64{"fast.example.com": 0},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	for i := 0; i < 5; i++ {
		if err := rl.Wait(ctx, "https://fast.example.com/x"); err != nil {
			t.Fatalf("unlimited domain must never block: %v", err)
		}
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=x", "www.youtube.com"},
		{"http://example.com:8080/path", "example.com"},
		{"not a url", "unknown"},
		{"", "unknown"},
	}
	for _, tc := range tests {
		if got := extractDomain(tc.url); got != tc.want {
			t.Errorf("extractDomain(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
