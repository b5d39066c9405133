package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOEmbedTitleOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("expected format=json, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title":"An oEmbed Title","author_name":"Some Channel","thumbnail_url":"https://i.ytimg.com/vi/x/hqdefault.jpg"}`))
	}))
	defer server.Close()

	s := &OEmbedStrategy{
		endpoint: server.URL,
		client:   &http.Client{Timeout: time.Second},
	}

	result, err := s.Extract(context.Background(), "https://www.youtube.com/watch?v=x", "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Title != "An oEmbed Title" {
		t.Errorf("got title %q", result.Title)
	}
	if result.Description != "" {
		t.Errorf("no fetcher, description must stay empty, got %q", result.Description)
	}
	if result.Channel != "Some Channel" {
		t.Errorf("got channel %q", result.Channel)
	}
	if result.Thumbnail == "" {
		t.Error("expected thumbnail from oembed document")
	}
}

func TestOEmbedAugmentsDescription(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<script>{"shortDescription":"Scraped description"}</script>`))
	}))
	defer page.Close()

	oembed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":"A Title"}`))
	}))
	defer oembed.Close()

	fetcher := newTestFetcher()
	defer fetcher.Close()

	s := &OEmbedStrategy{
		endpoint: oembed.URL,
		client:   &http.Client{Timeout: time.Second},
		fetcher:  fetcher,
	}

	result, err := s.Extract(context.Background(), page.URL, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Title != "A Title" {
		t.Errorf("got title %q", result.Title)
	}
	if result.Description != "Scraped description" {
		t.Errorf("got description %q", result.Description)
	}
}

func TestOEmbedErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	s := &OEmbedStrategy{
		endpoint: server.URL,
		client:   &http.Client{Timeout: time.Second},
	}

	if _, err := s.Extract(context.Background(), "https://www.youtube.com/watch?v=x", "x"); err == nil {
		t.Fatal("expected error for non-200 oembed status")
	}
}

func TestOEmbedEmptyDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	s := &OEmbedStrategy{
		endpoint: server.URL,
		client:   &http.Client{Timeout: time.Second},
	}

	result, err := s.Extract(context.Background(), "https://www.youtube.com/watch?v=x", "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Title != "" || result.Description != "" {
		t.Errorf("expected no-signal result, got %+v", result)
	}
}
