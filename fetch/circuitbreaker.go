package fetch

import (
	"errors"
	"sync"
	"time"
)

// CircuitState represents the state of a circuit breaker.
type CircuitState int

const (
	// CircuitClosed is the normal state where requests are allowed.
	CircuitClosed CircuitState = iota
	// CircuitOpen is the state where requests fail fast.
	CircuitOpen
	// CircuitHalfOpen is the testing state where one request is allowed.
	CircuitHalfOpen
)

// String returns the string representation of a circuit state.
func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned when the circuit breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig configures circuit breaker behavior.
type CircuitBreakerConfig struct {
	// FailureThreshold is the number of consecutive failures to open the
	// circuit. Default: 5
	FailureThreshold int
	// RecoveryTimeout is how long the circuit stays open before
	// transitioning to half-open. Default: 30 seconds
	RecoveryTimeout time.Duration
}

// DefaultCircuitBreakerConfig returns sensible defaults.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		RecoveryTimeout:  30 * time.Second,
	}
}

// circuitState holds the state for a single circuit.
type circuitState struct {
	state             CircuitState
	consecutiveErrors int
	lastStateChange   time.Time
	halfOpenInFlight  bool
}

// CircuitBreaker tracks failures per upstream domain and fails fast when a
// domain has stopped responding usefully, instead of burning the attempt
// budget against a dead or hostile host.
type CircuitBreaker struct {
	circuits map[string]*circuitState
	mu       sync.Mutex
	config   CircuitBreakerConfig
}

// NewCircuitBreaker creates a new circuit breaker with the given configuration.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = DefaultCircuitBreakerConfig().FailureThreshold
	}
	if cfg.RecoveryTimeout <= 0 {
		cfg.RecoveryTimeout = DefaultCircuitBreakerConfig().RecoveryTimeout
	}
	return &CircuitBreaker{
		circuits: make(map[string]*circuitState),
		config:   cfg,
	}
}

// Allow reports whether a request to the given domain should proceed.
// Returns nil if allowed, or ErrCircuitOpen if the circuit is open.
func (cb *CircuitBreaker) Allow(domain string) error {
	if cb == nil {
		return nil
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	c, ok := cb.circuits[domain]
	if !ok {
		return nil
	}

	switch c.state {
	case CircuitClosed:
		return nil
	case CircuitOpen:
		if time.Since(c.lastStateChange) >= cb.config.RecoveryTimeout {
			c.state = CircuitHalfOpen
			c.lastStateChange = time.Now()
			c.halfOpenInFlight = true
			return nil
		}
		return ErrCircuitOpen
	case CircuitHalfOpen:
		if c.halfOpenInFlight {
			return ErrCircuitOpen
		}
		c.halfOpenInFlight = true
		return nil
	}
	return nil
}

// RecordSuccess records a successful request, closing the circuit.
func (cb *CircuitBreaker) RecordSuccess(domain string) {
	if cb == nil {
		return
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	c, ok := cb.circuits[domain]
	if !ok {
		return
	}
	c.state = CircuitClosed
	c.consecutiveErrors = 0
	c.halfOpenInFlight = false
	c.lastStateChange = time.Now()
}

// RecordFailure records a failed request, opening the circuit once the
// failure threshold is reached.
func (cb *CircuitBreaker) RecordFailure(domain string) {
	if cb == nil {
		return
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	c, ok := cb.circuits[domain]
	if !ok {
		c = &circuitState{state: CircuitClosed}
		cb.circuits[domain] = c
	}

	c.consecutiveErrors++
	c.halfOpenInFlight = false

	if c.state == CircuitHalfOpen || c.consecutiveErrors >= cb.config.FailureThreshold {
		c.state = CircuitOpen
		c.lastStateChange = time.Now()
	}
}

// State returns the current state of the circuit for a domain.
func (cb *CircuitBreaker) State(domain string) CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if c, ok := cb.circuits[domain]; ok {
		return c.state
	}
	return CircuitClosed
}
