package blogfront

import (
	"sync"
	"time"
)

// AttemptLimiter rate-limits failed sign-in and sign-up attempts per IP
// address.
type AttemptLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	max      int
	window   time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

// NewAttemptLimiter creates an AttemptLimiter that allows max failed
// attempts per window.
func NewAttemptLimiter(max int, window time.Duration) *AttemptLimiter {
	l := &AttemptLimiter{
		attempts: make(map[string][]time.Time),
		max:      max,
		window:   window,
		done:     make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *AttemptLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.prune()
		case <-l.done:
			return
		}
	}
}

func (l *AttemptLimiter) prune() {
	cutoff := time.Now().Add(-l.window)
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, hits := range l.attempts {
		kept := recent(hits, cutoff)
		if len(kept) == 0 {
			delete(l.attempts, ip)
		} else {
			l.attempts[ip] = kept
		}
	}
}

func recent(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// Check returns true if the IP has not exceeded the limit.
// It does not record an attempt; call Record on failure.
func (l *AttemptLimiter) Check(ip string) bool {
	cutoff := time.Now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := recent(l.attempts[ip], cutoff)
	if len(kept) == 0 {
		delete(l.attempts, ip)
	} else {
		l.attempts[ip] = kept
	}
	return len(kept) < l.max
}

// Record registers a failed attempt for the given IP.
func (l *AttemptLimiter) Record(ip string) {
	l.mu.Lock()
	l.attempts[ip] = append(l.attempts[ip], time.Now())
	l.mu.Unlock()
}

// Stop ends the background cleanup.
func (l *AttemptLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}
