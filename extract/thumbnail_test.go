package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestThumbnailURLs(t *testing.T) {
	urls := ThumbnailURLs("abc123")
	if len(urls) != 4 {
		t.Fatalf("expected 4 quality tiers, got %d", len(urls))
	}
	if urls[0] != "https://img.youtube.com/vi/abc123/maxresdefault.jpg" {
		t.Errorf("highest tier first, got %q", urls[0])
	}
	if urls[3] != "https://img.youtube.com/vi/abc123/default.jpg" {
		t.Errorf("lowest tier last, got %q", urls[3])
	}

	if got := ThumbnailURLs(""); got != nil {
		t.Errorf("no id, no candidates: got %#v", got)
	}
}

func TestResolveThumbnailFallsThroughTiers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD probe, got %s", r.Method)
		}
		if strings.Contains(r.URL.Path, "maxresdefault") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := &http.Client{Timeout: time.Second}
	got := resolveThumbnail(context.Background(), client, server.URL+"/vi", "abc123")
	want := server.URL + "/vi/abc123/hqdefault.jpg"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveThumbnailAllMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := &http.Client{Timeout: time.Second}
	if got := resolveThumbnail(context.Background(), client, server.URL+"/vi", "abc123"); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}

func TestResolveThumbnailNilClient(t *testing.T) {
	if got := resolveThumbnail(context.Background(), nil, defaultThumbnailBase, "abc123"); got != "" {
		t.Errorf("nil client must resolve nothing, got %q", got)
	}
}
