package server

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// callerLimiter rate limits API callers per client IP. It is an explicitly
// injected component with its own lock, not ambient process state.
type callerLimiter struct {
	mu       sync.Mutex
	callers  map[string]*callerEntry
	perMin   int
	lastSeen time.Duration
}

type callerEntry struct {
	limiter *rate.Limiter
	seen    time.Time
}

// newCallerLimiter allows perMin requests per minute per caller IP, with a
// burst of perMin. Idle callers are pruned after an hour.
func newCallerLimiter(perMin int) *callerLimiter {
	return &callerLimiter{
		callers:  make(map[string]*callerEntry),
		perMin:   perMin,
		lastSeen: time.Hour,
	}
}

// Allow reports whether the caller identified by ip may proceed.
func (cl *callerLimiter) Allow(ip string) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	entry, ok := cl.callers[ip]
	if !ok {
		entry = &callerEntry{
			limiter: rate.NewLimiter(rate.Limit(float64(cl.perMin)/60.0), cl.perMin),
		}
		cl.callers[ip] = entry
	}
	entry.seen = time.Now()
	return entry.limiter.Allow()
}

// prune drops entries for callers not seen recently.
func (cl *callerLimiter) prune() {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	cutoff := time.Now().Add(-cl.lastSeen)
	for ip, entry := range cl.callers {
		if entry.seen.Before(cutoff) {
			delete(cl.callers, ip)
		}
	}
}

// pruneLoop prunes periodically until stop is closed.
func (cl *callerLimiter) pruneLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cl.prune()
		case <-stop:
			return
		}
	}
}
