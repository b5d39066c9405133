package extract

import (
	"context"
	"errors"
	"testing"
)

// stubStrategy returns a canned result (or error) and counts invocations.
type stubStrategy struct {
	name   string
	result *Result
	err    error
	calls  int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Extract(ctx context.Context, url, videoID string) (*Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

const watchURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func TestExtractEarlyExitOnFullResult(t *testing.T) {
	first := &stubStrategy{name: "first", result: &Result{Title: "A Title", Description: "A description"}}
	second := &stubStrategy{name: "second", result: &Result{Title: "ignored", Description: "ignored"}}

	e := NewWithStrategies(nil, first, second)
	got := e.Extract(context.Background(), watchURL)

	if got.Title != "A Title" || got.Description != "A description" {
		t.Errorf("unexpected composite: %+v", got)
	}
	if first.calls != 1 {
		t.Errorf("first strategy: expected 1 call, got %d", first.calls)
	}
	if second.calls != 0 {
		t.Errorf("later strategies must not run after a full result, got %d calls", second.calls)
	}
}

func TestExtractMergesPartialResults(t *testing.T) {
	titleOnly := &stubStrategy{name: "title-only", result: &Result{Title: "A Title"}}
	descOnly := &stubStrategy{name: "desc-only", result: &Result{Description: "A description"}}
	never := &stubStrategy{name: "never", result: &Result{Title: "x", Description: "y"}}

	e := NewWithStrategies(nil, titleOnly, descOnly, never)
	got := e.Extract(context.Background(), watchURL)

	if got.Title != "A Title" {
		t.Errorf("expected merged title, got %q", got.Title)
	}
	if got.Description != "A description" {
		t.Errorf("expected merged description, got %q", got.Description)
	}
	if never.calls != 0 {
		t.Errorf("merge completed the record, third strategy must not run")
	}
}

func TestExtractEarlierFieldsWin(t *testing.T) {
	first := &stubStrategy{name: "first", result: &Result{Title: "Early Title"}}
	second := &stubStrategy{name: "second", result: &Result{Title: "Late Title", Description: "desc"}}

	e := NewWithStrategies(nil, first, second)
	got := e.Extract(context.Background(), watchURL)

	if got.Title != "Early Title" {
		t.Errorf("earlier strategy's field must win, got %q", got.Title)
	}
	if got.Description != "desc" {
		t.Errorf("later strategy must fill the gap, got %q", got.Description)
	}
}

func TestExtractAllStrategiesFail(t *testing.T) {
	boom := errors.New("boom")
	a := &stubStrategy{name: "a", err: boom}
	b := &stubStrategy{name: "b", err: boom}

	e := NewWithStrategies(nil, a, b)
	got := e.Extract(context.Background(), watchURL)

	if got.Title != SentinelAllMethodsFailed {
		t.Errorf("expected %q, got %q", SentinelAllMethodsFailed, got.Title)
	}
	if got.Description != SentinelNoContent {
		t.Errorf("expected %q, got %q", SentinelNoContent, got.Description)
	}
	if got.Tags == nil || len(got.Tags) != 0 {
		t.Errorf("expected empty non-nil tag list, got %#v", got.Tags)
	}
	if got.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("video id must survive total failure, got %q", got.VideoID)
	}
	if a.calls != 1 || b.calls != 1 {
		t.Errorf("every strategy must be tried: %d, %d", a.calls, b.calls)
	}
}

func TestExtractEmptyResultsYieldFieldSentinels(t *testing.T) {
	empty := &stubStrategy{name: "empty", result: &Result{}}

	e := NewWithStrategies(nil, empty)
	got := e.Extract(context.Background(), watchURL)

	// A strategy ran without error but supplied nothing: per-field
	// sentinels, not the all-failed pair.
	if got.Title != SentinelTitleNotFound {
		t.Errorf("expected %q, got %q", SentinelTitleNotFound, got.Title)
	}
	if got.Description != SentinelDescriptionNotFound {
		t.Errorf("expected %q, got %q", SentinelDescriptionNotFound, got.Description)
	}
}

func TestExtractSentinelContentNotMisclassified(t *testing.T) {
	// Upstream content that happens to equal a sentinel string is data,
	// not a failure marker.
	tricky := &stubStrategy{name: "tricky", result: &Result{
		Title:       SentinelTitleNotFound,
		Description: "a real description",
	}}

	e := NewWithStrategies(nil, tricky)
	got := e.Extract(context.Background(), watchURL)

	if got.Title != SentinelTitleNotFound {
		t.Errorf("got %q", got.Title)
	}
	if got.Description != "a real description" {
		t.Errorf("content must pass through, got %q", got.Description)
	}
}

func TestExtractNoVideoID(t *testing.T) {
	full := &stubStrategy{name: "full", result: &Result{Title: "T", Description: "D"}}

	e := NewWithStrategies(nil, full)
	got := e.Extract(context.Background(), "https://example.com/not-youtube")

	if got.VideoID != "" {
		t.Errorf("expected empty video id, got %q", got.VideoID)
	}
	if got.Thumbnail != "" {
		t.Errorf("thumbnail requires a video id, got %q", got.Thumbnail)
	}
	if got.Title != "T" {
		t.Errorf("strategies that need no id must still run, got %q", got.Title)
	}
}

func TestExtractStrategyTagsPreferred(t *testing.T) {
	tagged := &stubStrategy{name: "tagged", result: &Result{
		Title:       "T",
		Description: "D",
		Tags:        []string{"go", "testing"},
	}}

	e := NewWithStrategies(nil, tagged)
	got := e.Extract(context.Background(), watchURL)

	if len(got.Tags) != 2 || got.Tags[0] != "go" || got.Tags[1] != "testing" {
		t.Errorf("expected strategy tags, got %#v", got.Tags)
	}
}

func TestMerge(t *testing.T) {
	base := &Result{Title: "base", Tags: []string{"a"}}
	next := &Result{Title: "next", Description: "next desc", Tags: []string{"b"}, Channel: "ch"}

	out := merge(base, next)
	if out.Title != "base" {
		t.Errorf("base field must win, got %q", out.Title)
	}
	if out.Description != "next desc" {
		t.Errorf("gap must be filled, got %q", out.Description)
	}
	if len(out.Tags) != 1 || out.Tags[0] != "a" {
		t.Errorf("base tags must win, got %#v", out.Tags)
	}
	if out.Channel != "ch" {
		t.Errorf("enrichment gap must be filled, got %q", out.Channel)
	}

	// Inputs stay untouched.
	if base.Description != "" {
		t.Errorf("merge mutated base: %+v", base)
	}

	if got := merge(nil, next); got != next {
		t.Error("merge(nil, next) must return next")
	}
	if got := merge(base, nil); got != base {
		t.Error("merge(base, nil) must return base")
	}
}

func TestResultSignal(t *testing.T) {
	tests := []struct {
		name string
		r    *Result
		want signal
	}{
		{"nil", nil, signalNone},
		{"empty", &Result{}, signalNone},
		{"title only", &Result{Title: "t"}, signalPartial},
		{"description only", &Result{Description: "d"}, signalPartial},
		{"both", &Result{Title: "t", Description: "d"}, signalFull},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.signal(); got != tc.want {
				t.Errorf("signal() = %v, want %v", got, tc.want)
			}
		})
	}
}
