package fetch

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, RecoveryTimeout: time.Hour})

	for i := 0; i < 2; i++ {
		cb.RecordFailure("example.com")
		if err := cb.Allow("example.com"); err != nil {
			t.Fatalf("circuit must stay closed under threshold, got %v after %d failures", err, i+1)
		}
	}

	cb.RecordFailure("example.com")
	if cb.State("example.com") != CircuitOpen {
		t.Fatalf("expected open state, got %v", cb.State("example.com"))
	}
	if err := cb.Allow("example.com"); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestCircuitBreakerPerDomain(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, RecoveryTimeout: time.Hour})

	cb.RecordFailure("bad.example.com")
	if err := cb.Allow("bad.example.com"); err == nil {
		t.Error("failing domain must be open")
	}
	if err := cb.Allow("good.example.com"); err != nil {
		t.Errorf("other domains must stay closed, got %v", err)
	}
}

func TestCircuitBreakerRecovery(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, RecoveryTimeout: 5 * time.Millisecond})

	cb.RecordFailure("example.com")
	if err := cb.Allow("example.com"); err == nil {
		t.Fatal("expected open circuit")
	}

	time.Sleep(10 * time.Millisecond)

	// Recovery window elapsed: one probe request goes through.
	if err := cb.Allow("example.com"); err != nil {
		t.Fatalf("expected half-open probe to be allowed, got %v", err)
	}
	if cb.State("example.com") != CircuitHalfOpen {
		t.Fatalf("expected half-open, got %v", cb.State("example.com"))
	}
	// A second request while the probe is in flight fails fast.
	if err := cb.Allow("example.com"); err == nil {
		t.Error("expected concurrent request to be rejected in half-open")
	}

	cb.RecordSuccess("example.com")
	if cb.State("example.com") != CircuitClosed {
		t.Errorf("success must close the circuit, got %v", cb.State("example.com"))
	}
	if err := cb.Allow("example.com"); err != nil {
		t.Errorf("closed circuit must allow, got %v", err)
	}
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, RecoveryTimeout: time.Millisecond})

	cb.RecordFailure("example.com")
	time.Sleep(5 * time.Millisecond)
	if err := cb.Allow("example.com"); err != nil {
		t.Fatalf("probe must be allowed, got %v", err)
	}

	cb.RecordFailure("example.com")
	if cb.State("example.com") != CircuitOpen {
		t.Errorf("failed probe must reopen the circuit, got %v", cb.State("example.com"))
	}
}

func TestCircuitStateString(t *testing.T) {
	if CircuitClosed.String() != "closed" || CircuitOpen.String() != "open" || CircuitHalfOpen.String() != "half-open" {
		t.Error("unexpected state strings")
	}
}
