package ytextract

import (
	"ytextract/extract"
	"ytextract/fetch"
)

// Error handling types exported for library users.
//
// All error types support the standard patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, ytextract.ErrExhausted) {
//		fmt.Println("upstream kept blocking us")
//	}
//
// Using errors.As() for typed errors:
//
//	var blockErr *ytextract.BlockedError
//	if errors.As(err, &blockErr) {
//		fmt.Printf("blocked: %s\n", blockErr.Reason)
//	}
//
// Note that Extractor.Extract itself never returns an error: strategy
// failures are absorbed and the worst case is a record full of sentinel
// values. These types surface only when using the fetch layer directly.

// Type aliases for convenient error handling.
type (
	// BlockedError marks a response rejected as an anti-bot page.
	BlockedError = fetch.BlockedError
	// RateLimitError marks an HTTP 429 from the upstream.
	RateLimitError = fetch.RateLimitError
	// HTTPError marks a non-retryable HTTP error status.
	HTTPError = fetch.HTTPError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrExhausted indicates the fetch attempt budget was spent.
	ErrExhausted = fetch.ErrExhausted
	// ErrCircuitOpen indicates a domain is failing fast after repeated errors.
	ErrCircuitOpen = fetch.ErrCircuitOpen
	// ErrNoVideoID indicates no identifier could be derived from a URL.
	ErrNoVideoID = extract.ErrNoVideoID
	// ErrNoAPIKey indicates the Data API strategy has no credential.
	ErrNoAPIKey = extract.ErrNoAPIKey
)

// IsBlocked reports whether err stems from upstream blocking detection.
func IsBlocked(err error) bool {
	return fetch.IsBlocked(err)
}
