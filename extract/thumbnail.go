package extract

import (
	"context"
	"net/http"
)

// defaultThumbnailBase is the host serving static thumbnails per video ID.
const defaultThumbnailBase = "https://img.youtube.com/vi"

// thumbnailQualities are the fixed quality tiers, highest resolution first.
var thumbnailQualities = []string{
	"maxresdefault",
	"hqdefault",
	"mqdefault",
	"default",
}

// ThumbnailURLs returns the candidate thumbnail URLs for a video, highest
// resolution first. Returns nil when the identifier is absent.
func ThumbnailURLs(videoID string) []string {
	return thumbnailURLs(defaultThumbnailBase, videoID)
}

func thumbnailURLs(base, videoID string) []string {
	if videoID == "" {
		return nil
	}
	urls := make([]string, 0, len(thumbnailQualities))
	for _, quality := range thumbnailQualities {
		urls = append(urls, base+"/"+videoID+"/"+quality+".jpg")
	}
	return urls
}

// resolveThumbnail probes the quality tiers with lightweight existence
// checks and returns the first URL that responds successfully. Probe
// failures just move on to the next tier.
func resolveThumbnail(ctx context.Context, client *http.Client, base, videoID string) string {
	if client == nil {
		return ""
	}
	for _, candidate := range thumbnailURLs(base, videoID) {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, candidate, nil)
		if err != nil {
			continue
		}
		resp, err := client.Do(req)
		if err != nil {
			continue
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			return candidate
		}
	}
	return ""
}
