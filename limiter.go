package lettersmith

import (
	"sync"
	"time"
)

// rateLimiter is a per-IP rolling-window limiter guarding the export
// endpoint, which produces file downloads and is the only handler worth
// throttling; preview must stay unthrottled for live typing.
type rateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
}

func newRateLimiter(max int, window time.Duration) *rateLimiter {
	l := &rateLimiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
	}
	go l.cleanup()
	return l
}

// cleanup sweeps every tracked IP once per window and deletes entries with
// no hits left, so clients that stop exporting do not stay in the map.
func (l *rateLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	for range ticker.C {
		cutoff := time.Now().Add(-l.window)
		l.mu.Lock()
		for ip, hits := range l.hits {
			fresh := hits[:0]
			for _, t := range hits {
				if t.After(cutoff) {
					fresh = append(fresh, t)
				}
			}
			if len(fresh) == 0 {
				delete(l.hits, ip)
			} else {
				l.hits[ip] = fresh
			}
		}
		l.mu.Unlock()
	}
}

// Allow records a hit for ip and reports whether it stays within the
// window budget. Expired hits for the calling IP are pruned inline; idle
// IPs are evicted by the cleanup sweep.
func (l *rateLimiter) Allow(ip string) bool {
	now := time.Now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	fresh := l.hits[ip][:0]
	for _, t := range l.hits[ip] {
		if t.After(cutoff) {
			fresh = append(fresh, t)
		}
	}
	if len(fresh) >= l.max {
		l.hits[ip] = fresh
		return false
	}
	l.hits[ip] = append(fresh, now)
	return true
}
