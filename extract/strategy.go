package extract

import (
	"context"
	"errors"
)

// Sentinel errors for extraction strategies.
var (
	// ErrNoVideoID indicates a strategy needs an identifier that could not
	// be derived from the URL.
	ErrNoVideoID = errors.New("extract: no video id")

	// ErrNoAPIKey indicates the Data API strategy has no credential.
	ErrNoAPIKey = errors.New("extract: no api key configured")
)

// Strategy is one self-contained method of obtaining video metadata from the
// platform. Implementations own their raw HTTP responses for the duration of
// a single Extract call and share no mutable state with each other.
//
// Extract returns a Result whose empty fields mean "not supplied". An error
// means the strategy produced no signal at all; the orchestrator logs it and
// moves on, so implementations should not retry beyond what their fetch layer
// already does.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, url, videoID string) (*Result, error)
}
