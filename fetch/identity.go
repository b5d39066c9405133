package fetch

import "sync/atomic"

// Identity is one outbound request identity: a realistic set of
// browser-identifying headers presented to the upstream.
type Identity struct {
	// Name labels the identity for logging.
	Name string
	// Headers are applied to every request made under this identity.
	Headers map[string]string
}

// Well-known pinned identities for strategies that require a specific
// client shape rather than a rotating one.
var (
	// MobileIdentity mimics Safari on iOS and is pinned by the mobile
	// page scrape.
	MobileIdentity = Identity{
		Name: "mobile-safari",
		Headers: map[string]string{
			"User-Agent":      "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1",
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.5",
		},
	}

	// PlainIdentity is a minimal non-browser identity for endpoints that
	// tolerate automated clients (oEmbed).
	PlainIdentity = Identity{
		Name: "plain",
		Headers: map[string]string{
			"User-Agent": "Mozilla/5.0 (compatible; ytextract/1.0)",
		},
	}
)

// DefaultIdentities returns the built-in pool of desktop browser identities.
func DefaultIdentities() []Identity {
	return []Identity{
		{
			Name: "chrome-windows",
			Headers: map[string]string{
				"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
				"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
				"Accept-Language": "en-US,en;q=0.5",
				"Accept-Encoding": "gzip, deflate",
				"Connection":      "keep-alive",
				"DNT":             "1",
			},
		},
		{
			Name: "firefox-linux",
			Headers: map[string]string{
				"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
				"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
				"Accept-Language": "en-US,en;q=0.5",
				"Connection":      "keep-alive",
			},
		},
		{
			Name: "safari-mac",
			Headers: map[string]string{
				"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
				"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
				"Accept-Language": "en-US,en;q=0.9",
				"Connection":      "keep-alive",
			},
		},
		{
			Name: "edge-windows",
			Headers: map[string]string{
				"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0",
				"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
				"Accept-Language": "en-US,en;q=0.5",
				"Connection":      "keep-alive",
			},
		},
	}
}

// IdentityPool hands out identities round-robin. The pool is immutable after
// construction and safe for concurrent use.
type IdentityPool struct {
	identities []Identity
	next       atomic.Uint32
}

// NewIdentityPool creates a pool from the given identities, falling back to
// the built-in set when none are provided.
func NewIdentityPool(identities []Identity) *IdentityPool {
	if len(identities) == 0 {
		identities = DefaultIdentities()
	}
	return &IdentityPool{identities: identities}
}

// Next returns the next identity in rotation.
func (p *IdentityPool) Next() Identity {
	n := p.next.Add(1) - 1
	return p.identities[int(n)%len(p.identities)]
}

// Size returns the number of identities in the pool.
func (p *IdentityPool) Size() int {
	return len(p.identities)
}
