package extract

import "testing"

func TestParseVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		id   string
		ok   bool
	}{
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch bare host", "https://youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch mobile host", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch extra params", "https://www.youtube.com/watch?v=ABC123&list=PL1&t=30s", "ABC123", true},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"short link with timestamp", "https://youtu.be/ABC123?t=5", "ABC123", true},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"embed with query", "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1", "dQw4w9WgXcQ", true},
		{"legacy v path", "https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch without v", "https://www.youtube.com/watch?list=PL1", "", false},
		{"channel page", "https://www.youtube.com/@somechannel", "", false},
		{"unrelated host", "https://vimeo.com/12345", "", false},
		{"not a url", "::::", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := ParseVideoID(tc.url)
			if ok != tc.ok || id != tc.id {
				t.Errorf("ParseVideoID(%q) = (%q, %v), want (%q, %v)", tc.url, id, ok, tc.id, tc.ok)
			}
		})
	}
}
