package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"ytextract/fetch"
)

// defaultOEmbedEndpoint is YouTube's public oEmbed endpoint. It needs no
// credential and is rarely blocked, but only exposes a title.
const defaultOEmbedEndpoint = "https://www.youtube.com/oembed"

// oembedResponse is the subset of the oEmbed JSON document we consume.
// See https://oembed.com/#section2.3.
type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// OEmbedStrategy resolves a title through the oEmbed endpoint and makes one
// best-effort attempt to scrape a description off the watch page. Its result
// is usually a title-only partial that later strategies fill in.
type OEmbedStrategy struct {
	endpoint string
	client   *http.Client
	fetcher  *fetch.Client
}

// NewOEmbedStrategy creates the strategy. The fetcher is used only for the
// description augmentation; the oEmbed call itself goes out directly with a
// short timeout and no retry.
func NewOEmbedStrategy(fetcher *fetch.Client) *OEmbedStrategy {
	return &OEmbedStrategy{
		endpoint: defaultOEmbedEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		fetcher:  fetcher,
	}
}

// Name identifies this strategy in logs.
func (s *OEmbedStrategy) Name() string { return "oembed" }

// Extract fetches the oEmbed document and, when a title comes back, tries to
// augment it with a description scraped from the page. Augmentation failures
// are swallowed: a title-only partial is still useful.
func (s *OEmbedStrategy) Extract(ctx context.Context, videoURL, _ string) (*Result, error) {
	doc, err := s.fetchOEmbed(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Title:     CleanText(doc.Title),
		Channel:   doc.AuthorName,
		Thumbnail: doc.ThumbnailURL,
	}
	if result.Title == "" {
		return result, nil
	}

	if desc := s.scrapeDescription(ctx, videoURL); desc != "" {
		result.Description = desc
	}
	return result, nil
}

// fetchOEmbed calls the oEmbed endpoint for the given video URL.
func (s *OEmbedStrategy) fetchOEmbed(ctx context.Context, videoURL string) (*oembedResponse, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse oembed endpoint: %w", err)
	}
	q := u.Query()
	q.Set("url", videoURL)
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", fetch.PlainIdentity.Headers["User-Agent"])
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oembed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
		return nil, fmt.Errorf("oembed status %d: %s", resp.StatusCode, body)
	}

	var doc oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse oembed response: %w", err)
	}
	return &doc, nil
}

// scrapeDescription pulls a short description from the watch page. Single
// attempt; the oEmbed strategy should stay cheap.
func (s *OEmbedStrategy) scrapeDescription(ctx context.Context, videoURL string) string {
	if s.fetcher == nil {
		return ""
	}
	resp, err := s.fetcher.Fetch(ctx, videoURL, &fetch.Options{
		MaxAttempts: 1,
		Identity:    &fetch.PlainIdentity,
	})
	if err != nil {
		return ""
	}
	if m := reShortDescription.FindSubmatch(resp.Body); len(m) > 1 {
		return CleanText(string(m[1]))
	}
	return ""
}
