// Package extract implements multi-strategy YouTube metadata extraction:
// several independent strategies tried in priority order, partial results
// merged field by field, and a composite record that is always well-formed
// no matter how badly the upstream misbehaves.
package extract

import (
	"context"
	"log"
	"net/http"
	"time"

	"ytextract/fetch"
)

// Config holds extractor configuration.
type Config struct {
	// APIKey enables the Data API strategy when non-empty. Without it the
	// extractor runs in scraping-only mode.
	APIKey string

	// Fetcher configures the resilient fetch layer shared by the
	// scraping strategies. Nil uses fetch.DefaultConfig.
	Fetcher *fetch.Config

	// ProbeTimeout bounds each thumbnail existence check.
	ProbeTimeout time.Duration
}

// DefaultConfig returns sensible extractor defaults.
func DefaultConfig() *Config {
	return &Config{
		Fetcher:      fetch.DefaultConfig(),
		ProbeTimeout: 5 * time.Second,
	}
}

// Extractor runs extraction strategies in a fixed priority order and merges
// their output. It holds no per-call state and is safe for concurrent use;
// strategies within one call always run sequentially, because a later
// strategy is only worth trying once an earlier one has under-delivered.
type Extractor struct {
	strategies    []Strategy
	fetcher       *fetch.Client
	probe         *http.Client
	thumbnailBase string
}

// NewExtractor builds an extractor with the production strategy order:
// Data API first when a key is configured (cheapest per field, never
// blocked), then oEmbed, then the mobile and desktop page scrapes.
func NewExtractor(ctx context.Context, cfg *Config) *Extractor {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = 5 * time.Second
	}

	fetcher := fetch.New(cfg.Fetcher)

	var strategies []Strategy
	if cfg.APIKey != "" {
		api, err := NewAPIStrategy(ctx, cfg.APIKey)
		if err != nil {
			log.Printf("extract: data api unavailable, scraping only: %v", err)
		} else {
			strategies = append(strategies, api)
		}
	}
	strategies = append(strategies,
		NewOEmbedStrategy(fetcher),
		NewMobileScrapeStrategy(fetcher),
		NewDesktopScrapeStrategy(fetcher),
	)

	return &Extractor{
		strategies:    strategies,
		fetcher:       fetcher,
		probe:         &http.Client{Timeout: cfg.ProbeTimeout},
		thumbnailBase: defaultThumbnailBase,
	}
}

// NewWithStrategies builds an extractor over an explicit strategy list.
// With a nil fetcher, tag scraping and thumbnail probing are skipped.
func NewWithStrategies(fetcher *fetch.Client, strategies ...Strategy) *Extractor {
	e := &Extractor{
		strategies:    strategies,
		fetcher:       fetcher,
		thumbnailBase: defaultThumbnailBase,
	}
	if fetcher != nil {
		e.probe = &http.Client{Timeout: 5 * time.Second}
	}
	return e
}

// Extract is the sole entry point: it derives the video identifier, folds
// the strategy list into the best composite it can, and always returns a
// well-formed record. No strategy failure, tag failure, or probe failure
// ever propagates past this boundary.
func (e *Extractor) Extract(ctx context.Context, rawURL string) Composite {
	videoID, _ := ParseVideoID(rawURL)
	if videoID == "" {
		log.Printf("extract: no video id derived from %q, identifier-dependent strategies will be skipped", rawURL)
	}

	var best *Result
	for _, strategy := range e.strategies {
		result, err := strategy.Extract(ctx, rawURL, videoID)
		if err != nil {
			log.Printf("extract: strategy %s failed: %v", strategy.Name(), err)
			continue
		}

		switch result.signal() {
		case signalFull:
			best = merge(best, result)
			log.Printf("extract: strategy %s succeeded", strategy.Name())
			return e.assemble(ctx, rawURL, videoID, best)
		case signalPartial:
			best = merge(best, result)
			if best.signal() == signalFull {
				log.Printf("extract: strategy %s completed a partial result", strategy.Name())
				return e.assemble(ctx, rawURL, videoID, best)
			}
			log.Printf("extract: strategy %s partial (title=%v description=%v)",
				strategy.Name(), result.Title != "", result.Description != "")
		default:
			log.Printf("extract: strategy %s produced no signal", strategy.Name())
		}
	}

	return e.assemble(ctx, rawURL, videoID, best)
}

// assemble builds the composite record. Tags and thumbnail are resolved
// independently of title/description; a failure in one field never blanks
// out another.
func (e *Extractor) assemble(ctx context.Context, rawURL, videoID string, best *Result) Composite {
	c := Composite{
		Title:       SentinelTitleNotFound,
		Description: SentinelDescriptionNotFound,
		Tags:        []string{},
		VideoID:     videoID,
	}

	if best == nil {
		c.Title = SentinelAllMethodsFailed
		c.Description = SentinelNoContent
	} else {
		if best.Title != "" {
			c.Title = best.Title
		}
		if best.Description != "" {
			c.Description = best.Description
		}
		c.Channel = best.Channel
		c.PublishedAt = best.PublishedAt
		c.ViewCount = best.ViewCount
		c.LikeCount = best.LikeCount
	}

	// Prefer tags a strategy already supplied (the Data API exposes the
	// same field); scrape only when nothing did.
	if best != nil && len(best.Tags) > 0 {
		c.Tags = best.Tags
	} else if tags := scrapeTags(ctx, e.fetcher, rawURL); len(tags) > 0 {
		c.Tags = tags
	}

	if videoID != "" {
		if thumb := resolveThumbnail(ctx, e.probe, e.thumbnailBase, videoID); thumb != "" {
			c.Thumbnail = thumb
		} else if best != nil {
			c.Thumbnail = best.Thumbnail
		}
	}

	return c
}
