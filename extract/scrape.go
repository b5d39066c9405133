package extract

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"ytextract/fetch"
)

// Script-payload extraction patterns. The player response embedded in watch
// pages holds the cleanest data; HTML elements and open-graph tags are the
// fallbacks. Escaped quotes inside the JSON string values are handled by the
// (?:[^"\\]|\\.)* alternation.
var (
	reVideoDetailsTitle = regexp.MustCompile(`(?s)"videoDetails":\s*\{[^}]*?"title":"((?:[^"\\]|\\.)*)"`)
	reHTMLTitleDesktop  = regexp.MustCompile(`(?s)<title[^>]*>([^<]+?)\s*-\s*YouTube</title>`)
	reTitleNearLength   = regexp.MustCompile(`(?s)"title":"((?:[^"\\]|\\.)*?)"[^}]*?"lengthSeconds"`)
	reHTMLTitleAny      = regexp.MustCompile(`<title[^>]*>([^<]+)</title>`)
	reTitleJSON         = regexp.MustCompile(`"title":"([^"]*)"`)

	reVideoDetailsDesc = regexp.MustCompile(`(?s)"videoDetails":\s*\{[^}]*?"shortDescription":"((?:[^"\\]|\\.)*)"`)
	reShortDescription = regexp.MustCompile(`"shortDescription":"((?:[^"\\]|\\.)*)"`)
	reSimpleTextDesc   = regexp.MustCompile(`"description":\s*\{"simpleText":"((?:[^"\\]|\\.)*)"\}`)
	reDescriptionJSON  = regexp.MustCompile(`"description":"([^"]*)"`)
)

// pattern is one candidate way of locating a field in a raw page payload.
type pattern struct {
	name string
	find func(content string) string
}

// regexPattern builds a pattern from a regexp's first capture group.
func regexPattern(name string, re *regexp.Regexp) pattern {
	return pattern{name: name, find: func(content string) string {
		if m := re.FindStringSubmatch(content); len(m) > 1 {
			return m[1]
		}
		return ""
	}}
}

// metaPattern builds a pattern that reads a <meta> tag's content attribute,
// matching on either the property or name attribute.
func metaPattern(name, key string) pattern {
	return pattern{name: name, find: func(content string) string {
		return findMetaContent(content, key)
	}}
}

// firstNonEmpty tries patterns in order and returns the first match that
// survives normalization. A match that normalizes to an empty string does
// not count.
func firstNonEmpty(content string, patterns []pattern) string {
	for _, p := range patterns {
		raw := p.find(content)
		if raw == "" {
			continue
		}
		if cleaned := CleanText(raw); cleaned != "" {
			return cleaned
		}
	}
	return ""
}

// findMetaContent scans the document for a meta tag whose property or name
// attribute equals key and returns its content attribute. The tokenizer
// unescapes entity references in attribute values for us.
func findMetaContent(content, key string) string {
	z := html.NewTokenizer(strings.NewReader(content))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "meta" || !hasAttr {
				continue
			}
			var prop, val string
			for {
				k, v, more := z.TagAttr()
				switch string(k) {
				case "property", "name":
					prop = string(v)
				case "content":
					val = string(v)
				}
				if !more {
					break
				}
			}
			if prop == key {
				return val
			}
		}
	}
}

// Desktop watch-page candidates, in priority order.
var (
	desktopTitlePatterns = []pattern{
		regexPattern("video-details-title", reVideoDetailsTitle),
		regexPattern("html-title", reHTMLTitleDesktop),
		metaPattern("og-title", "og:title"),
		regexPattern("title-near-length", reTitleNearLength),
	}
	desktopDescPatterns = []pattern{
		regexPattern("video-details-description", reVideoDetailsDesc),
		regexPattern("short-description", reShortDescription),
		metaPattern("og-description", "og:description"),
		regexPattern("simple-text-description", reSimpleTextDesc),
	}
)

// Mobile page candidates. The mobile frontend serves a leaner document, so
// the plain title element and open-graph tags lead.
var (
	mobileTitlePatterns = []pattern{
		{name: "html-title", find: func(content string) string {
			if m := reHTMLTitleAny.FindStringSubmatch(content); len(m) > 1 {
				return strings.ReplaceAll(m[1], " - YouTube", "")
			}
			return ""
		}},
		regexPattern("title-json", reTitleJSON),
		metaPattern("og-title", "og:title"),
	}
	mobileDescPatterns = []pattern{
		metaPattern("og-description", "og:description"),
		regexPattern("description-json", reDescriptionJSON),
		metaPattern("meta-description", "description"),
	}
)

// DesktopScrapeStrategy fetches the canonical desktop page under a rotating
// browser identity and runs the desktop pattern lists over it.
type DesktopScrapeStrategy struct {
	fetcher *fetch.Client
}

// NewDesktopScrapeStrategy creates the desktop page scrape strategy.
func NewDesktopScrapeStrategy(fetcher *fetch.Client) *DesktopScrapeStrategy {
	return &DesktopScrapeStrategy{fetcher: fetcher}
}

// Name identifies this strategy in logs.
func (s *DesktopScrapeStrategy) Name() string { return "desktop-scrape" }

// Extract fetches the page and extracts title and description. Blocked or
// implausible responses surface as fetch errors, not empty fields.
func (s *DesktopScrapeStrategy) Extract(ctx context.Context, videoURL, _ string) (*Result, error) {
	resp, err := s.fetcher.Fetch(ctx, desktopURL(videoURL), nil)
	if err != nil {
		return nil, err
	}
	content := string(resp.Body)
	return &Result{
		Title:       firstNonEmpty(content, desktopTitlePatterns),
		Description: firstNonEmpty(content, desktopDescPatterns),
	}, nil
}

// MobileScrapeStrategy fetches the mobile subdomain under a pinned mobile
// browser identity. The mobile frontend is served from different
// infrastructure and often stays reachable when the desktop page blocks.
type MobileScrapeStrategy struct {
	fetcher *fetch.Client
}

// NewMobileScrapeStrategy creates the mobile page scrape strategy.
func NewMobileScrapeStrategy(fetcher *fetch.Client) *MobileScrapeStrategy {
	return &MobileScrapeStrategy{fetcher: fetcher}
}

// Name identifies this strategy in logs.
func (s *MobileScrapeStrategy) Name() string { return "mobile-scrape" }

// Extract fetches the mobile variant of the page and runs the mobile
// pattern lists over it.
func (s *MobileScrapeStrategy) Extract(ctx context.Context, videoURL, _ string) (*Result, error) {
	resp, err := s.fetcher.Fetch(ctx, mobileURL(videoURL), &fetch.Options{
		Identity: &fetch.MobileIdentity,
	})
	if err != nil {
		return nil, err
	}
	content := string(resp.Body)
	return &Result{
		Title:       firstNonEmpty(content, mobileTitlePatterns),
		Description: firstNonEmpty(content, mobileDescPatterns),
	}, nil
}

// desktopURL maps mobile URLs back to the canonical desktop host.
func desktopURL(videoURL string) string {
	return strings.Replace(videoURL, "m.youtube.com", "www.youtube.com", 1)
}

// mobileURL maps canonical URLs to the mobile subdomain.
func mobileURL(videoURL string) string {
	return strings.Replace(videoURL, "www.youtube.com", "m.youtube.com", 1)
}
