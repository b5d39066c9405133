package extract

import (
	"net/url"
	"strings"
)

// ParseVideoID derives the canonical video identifier from any accepted
// YouTube URL shape:
//
//   - https://youtu.be/<id>
//   - https://www.youtube.com/watch?v=<id>
//   - https://www.youtube.com/embed/<id>
//   - https://www.youtube.com/v/<id>
//
// Trailing query or fragment noise is stripped from the identifier. The
// second return value is false when no identifier could be derived; callers
// must treat that as a valid outcome and skip identifier-dependent work.
func ParseVideoID(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	var id string
	switch u.Hostname() {
	case "youtu.be":
		id = strings.TrimPrefix(u.Path, "/")
		if i := strings.IndexByte(id, '/'); i >= 0 {
			id = id[:i]
		}
	case "www.youtube.com", "youtube.com", "m.youtube.com":
		switch {
		case strings.Contains(u.Path, "/watch"):
			id = u.Query().Get("v")
		case strings.Contains(u.Path, "/embed/"):
			id = afterMarker(u.Path, "/embed/")
		case strings.Contains(u.Path, "/v/"):
			id = afterMarker(u.Path, "/v/")
		}
	}

	// Strip anything after a & or ? that leaked into the identifier.
	id, _, _ = strings.Cut(id, "&")
	id, _, _ = strings.Cut(id, "?")

	if id == "" {
		return "", false
	}
	return id, true
}

// afterMarker returns the path segment following marker, truncated at the
// next slash.
func afterMarker(path, marker string) string {
	_, rest, ok := strings.Cut(path, marker)
	if !ok {
		return ""
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
