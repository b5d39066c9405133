// Package ytextract extracts metadata (title, description, tags, thumbnail)
// for a YouTube video given only its public URL.
//
// Because the official Data API needs a credential and carries quota limits,
// ytextract layers several extraction strategies — the Data API, the public
// oEmbed endpoint, and mobile/desktop page scrapes — and falls back between
// them until one produces usable data. Partial successes are merged field by
// field, so a title from one source and a description from another still add
// up to a complete record.
//
// # Quick start
//
// Extract metadata with the default configuration:
//
//	ctx := context.Background()
//	result := ytextract.Extract(ctx, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
//	fmt.Println(result.Title)
//	fmt.Println(result.Description)
//
// Extract never fails: in the worst case every field of the returned record
// holds a human-readable placeholder ("Title not found", "All extraction
// methods failed"). Partial metadata is still useful to callers, so the
// design degrades gracefully instead of failing loudly.
//
// # Configuration
//
// Settings load from a .env file, ytextract.json (current directory or
// ~/.config/ytextract/), and environment variables, in increasing priority:
//
//   - YTEXTRACT_API_KEY: YouTube Data API key (empty = scraping-only mode)
//   - YTEXTRACT_ADDR: HTTP listen address for the bundled server
//   - YTEXTRACT_REQUEST_TIMEOUT: bound on one whole extraction call
//   - YTEXTRACT_MAX_ATTEMPTS: page fetch attempt budget
//   - YTEXTRACT_PACING_MIN / YTEXTRACT_PACING_MAX: outbound pacing bounds
//   - YTEXTRACT_CALLER_RPM: per-caller-IP request budget per minute
//
// # Advanced usage
//
// For more control, use the sub-packages directly:
//
//   - extract: strategies, the orchestrator, and text normalization
//   - fetch: the resilient HTTP layer (pacing, identity rotation, retries)
//   - server: the thin HTTP API over the extractor
//   - config: configuration management
//
// Example with a custom fetcher:
//
//	fc := fetch.DefaultConfig()
//	fc.PacingMax = 5 * time.Second
//	e := extract.NewExtractor(ctx, &extract.Config{Fetcher: fc})
//	result := e.Extract(ctx, url)
package ytextract
