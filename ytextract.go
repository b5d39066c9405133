package ytextract

import (
	"context"
	"sync"

	"ytextract/extract"
)

// Composite is the record returned by Extract.
type Composite = extract.Composite

var (
	defaultOnce      sync.Once
	defaultExtractor *extract.Extractor
)

// Extract fetches metadata for the video at url using a process-wide default
// extractor in scraping-only mode. The returned record is always well-formed;
// see extract.Extractor for configurable use, including the Data API.
func Extract(ctx context.Context, url string) Composite {
	defaultOnce.Do(func() {
		defaultExtractor = extract.NewExtractor(context.Background(), nil)
	})
	return defaultExtractor.Extract(ctx, url)
}
