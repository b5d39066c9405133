package extract

// Sentinel strings exposed at the composite boundary. They are presentation
// values only: inside the package an absent field is the empty string, so
// upstream content that happens to equal a sentinel can never be
// misclassified as a failure.
const (
	SentinelTitleNotFound       = "Title not found"
	SentinelDescriptionNotFound = "Description not found"
	SentinelAllMethodsFailed    = "All extraction methods failed"
	SentinelNoContent           = "Could not extract video information"
)

// Result is the unit a single strategy returns. An empty string or zero
// value means the strategy did not supply that field. Results are created
// fresh per invocation and never mutated afterwards; the orchestrator merges
// them by constructing new values.
type Result struct {
	Title       string
	Description string
	Tags        []string

	// Enrichment fields, populated only by sources that expose them.
	Channel     string
	PublishedAt string
	ViewCount   int64
	LikeCount   int64
	Thumbnail   string
}

// signal classifies how much usable data a result carries.
type signal int

const (
	// signalNone: neither title nor description present.
	signalNone signal = iota
	// signalPartial: exactly one of title/description present.
	signalPartial
	// signalFull: both title and description present.
	signalFull
)

func (r *Result) signal() signal {
	if r == nil {
		return signalNone
	}
	switch {
	case r.Title != "" && r.Description != "":
		return signalFull
	case r.Title != "" || r.Description != "":
		return signalPartial
	default:
		return signalNone
	}
}

// merge combines two results field by field. Fields already present in base
// win; next only fills gaps. Neither input is mutated.
func merge(base, next *Result) *Result {
	if base == nil {
		return next
	}
	if next == nil {
		return base
	}

	out := *base
	if out.Title == "" {
		out.Title = next.Title
	}
	if out.Description == "" {
		out.Description = next.Description
	}
	if len(out.Tags) == 0 {
		out.Tags = next.Tags
	}
	if out.Channel == "" {
		out.Channel = next.Channel
	}
	if out.PublishedAt == "" {
		out.PublishedAt = next.PublishedAt
	}
	if out.ViewCount == 0 {
		out.ViewCount = next.ViewCount
	}
	if out.LikeCount == 0 {
		out.LikeCount = next.LikeCount
	}
	if out.Thumbnail == "" {
		out.Thumbnail = next.Thumbnail
	}
	return &out
}

// Composite is the final record returned to callers. Every field falls back
// to a sentinel or empty value; a Composite is always well-formed.
type Composite struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	VideoID     string   `json:"video_id,omitempty"`

	// Enrichment fields, present only when the Data API contributed.
	Channel     string `json:"channel,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	ViewCount   int64  `json:"view_count,omitempty"`
	LikeCount   int64  `json:"like_count,omitempty"`
}
