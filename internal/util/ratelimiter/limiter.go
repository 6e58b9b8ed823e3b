package ratelimiter

import (
	"sync"
	"time"
)

// Limiter provides simple time-based rate limiting: at most one allowed
// action per interval. It is safe for concurrent use. The download path
// uses it to throttle transfer progress log lines on large media files.
type Limiter struct {
	mu          sync.Mutex
	interval    time.Duration
	lastAllowed time.Time
}

// New creates a rate limiter with the specified interval.
func New(interval time.Duration) *Limiter {
	return &Limiter{interval: interval}
}

// Allow reports whether an action is allowed now. When allowed, the call
// itself is recorded as the last allowed action. When denied, the second
// return value is the remaining wait.
func (l *Limiter) Allow() (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	since := now.Sub(l.lastAllowed)
	if since >= l.interval {
		l.lastAllowed = now
		return true, 0
	}
	return false, l.interval - since
}

// Interval returns the configured rate limit interval.
func (l *Limiter) Interval() time.Duration {
	return l.interval
}
