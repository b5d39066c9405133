package fetch

import (
	"errors"
	"fmt"
	"time"

	"ytextract/internal/retry"
)

// BlockedError indicates the upstream returned a successful status but the
// body shows signs of anti-bot defenses (blocking phrases or an implausibly
// short payload). Blocked responses are retryable.
type BlockedError struct {
	// Reason describes what triggered the classification.
	Reason string
	// BodySize is the size of the rejected body in bytes.
	BodySize int
}

// Error returns a string representation of the blocking error.
func (e *BlockedError) Error() string {
	return fmt.Sprintf("response blocked (%s, %d bytes)", e.Reason, e.BodySize)
}

// RateLimitError indicates the server rate limited the request (HTTP 429).
// Rate limit errors are retryable.
type RateLimitError struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// RetryAfter indicates how long the server asked us to wait, if known.
	RetryAfter time.Duration
}

// Error returns a string representation of the rate limit error.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (status %d): retry after %v", e.StatusCode, e.RetryAfter)
	}
	return fmt.Sprintf("rate limited (status %d)", e.StatusCode)
}

// HTTPError indicates a non-success, non-retryable HTTP response.
type HTTPError struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Body is the response body.
	Body []byte
}

// Error returns a string representation of the HTTP error.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: status %d", e.StatusCode)
}

// ErrExhausted is returned (wrapped) when the attempt budget was spent
// without a usable response.
var ErrExhausted = retry.ErrExhausted

// IsBlocked reports whether err (or any error it wraps) is a BlockedError.
func IsBlocked(err error) bool {
	var be *BlockedError
	return errors.As(err, &be)
}

// isRetryableFetchError classifies fetch errors for the retry loop.
// Blocking and rate limiting are soft failures; any other HTTP error status
// terminates immediately. Transport errors stay retryable.
func isRetryableFetchError(err error) bool {
	if !retry.IsRetryable(err) {
		return false
	}

	var blockErr *BlockedError
	if errors.As(err, &blockErr) {
		return true
	}

	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return true
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return false
	}

	return true
}
