package extract

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// APIStrategy fetches metadata through the YouTube Data API v3. It is the
// richest source (channel, publish time, counts, tags, best thumbnail) but
// requires an API key and burns quota, so it is only placed first in the
// strategy order when a key is configured.
type APIStrategy struct {
	service *youtube.Service
}

// NewAPIStrategy creates a Data API strategy authenticated with the given key.
func NewAPIStrategy(ctx context.Context, apiKey string) (*APIStrategy, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &APIStrategy{service: service}, nil
}

// Name identifies this strategy in logs.
func (s *APIStrategy) Name() string { return "data-api" }

// Extract looks the video up by identifier. The API is assumed reliable, so
// the call is made once with no retry. A well-formed "no such video" answer
// yields an empty result rather than an error; only transport and quota
// failures error out.
func (s *APIStrategy) Extract(ctx context.Context, _ string, videoID string) (*Result, error) {
	if videoID == "" {
		return nil, ErrNoVideoID
	}

	resp, err := s.service.Videos.
		List([]string{"snippet", "statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return &Result{}, nil
		}
		return nil, fmt.Errorf("videos.list: %w", err)
	}
	if len(resp.Items) == 0 {
		// Upstream answered but knows no such video.
		return &Result{}, nil
	}

	item := resp.Items[0]
	result := &Result{}

	if sn := item.Snippet; sn != nil {
		result.Title = CleanText(sn.Title)
		result.Description = CleanText(sn.Description)
		result.Channel = sn.ChannelTitle
		result.PublishedAt = sn.PublishedAt
		result.Tags = dedupeTags(sn.Tags)
		result.Thumbnail = bestThumbnail(sn.Thumbnails)
	}
	if st := item.Statistics; st != nil {
		result.ViewCount = int64(st.ViewCount)
		result.LikeCount = int64(st.LikeCount)
	}

	return result, nil
}

// bestThumbnail picks the highest-resolution thumbnail the API exposes.
func bestThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, candidate := range []*youtube.Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if candidate != nil && candidate.Url != "" {
			return candidate.Url
		}
	}
	return ""
}
