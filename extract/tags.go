package extract

import (
	"context"
	"regexp"
	"strings"

	"ytextract/fetch"
)

// MaxTags caps the tag list on a composite result.
const MaxTags = 20

// Tag-bearing JSON array fields found in watch-page script payloads.
var tagFieldPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"keywords":\s*\[(.*?)\]`),
	regexp.MustCompile(`"tags":\s*\[(.*?)\]`),
	regexp.MustCompile(`"hashtags":\s*\[(.*?)\]`),
}

var reQuotedToken = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)

// extractTags pulls every quoted token out of any matched tag array,
// concatenated across fields, deduplicated in first-seen order and capped
// at MaxTags.
func extractTags(content string) []string {
	var all []string
	for _, re := range tagFieldPatterns {
		m := re.FindStringSubmatch(content)
		if len(m) < 2 {
			continue
		}
		for _, token := range reQuotedToken.FindAllStringSubmatch(m[1], -1) {
			all = append(all, token[1])
		}
	}
	return dedupeTags(all)
}

// dedupeTags removes duplicates while preserving first-seen order, drops
// tokens that trim to nothing, and caps the result at MaxTags.
func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, trimmed)
		if len(out) == MaxTags {
			break
		}
	}
	return out
}

// scrapeTags fetches the page once and extracts tags from it. Any failure
// degrades to an empty list; tags must never sink an extraction.
func scrapeTags(ctx context.Context, fetcher *fetch.Client, videoURL string) []string {
	if fetcher == nil {
		return nil
	}
	resp, err := fetcher.Fetch(ctx, videoURL, &fetch.Options{MaxAttempts: 1})
	if err != nil {
		return nil
	}
	return extractTags(string(resp.Body))
}
