// Package ratelimit provides a fixed-window request counter keyed by a
// caller-supplied identifier. Counters live in process memory only.
package ratelimit

import (
	"sync"
	"time"
)

type window struct {
	count   int
	startAt time.Time
}

// Limiter allows up to limit calls per key within each window. When a
// window's attempts are exhausted, further calls are rejected until the
// window elapses and the counter resets.
type Limiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

// New builds a Limiter allowing limit calls per key per windowSize.
func New(limit int, windowSize time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  windowSize,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

// Allow records an attempt for key and reports whether it is within the
// window's budget.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.current(key)
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Remaining reports how many attempts are left for key in the current
// window without consuming one.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.current(key)
	if left := l.limit - w.count; left > 0 {
		return left
	}
	return 0
}

// ResetAt reports when the current window for key expires.
func (l *Limiter) ResetAt(key string) time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current(key).startAt.Add(l.window)
}

// current returns the live window for key, rolling over an expired one.
// Callers must hold l.mu.
func (l *Limiter) current(key string) *window {
	now := l.now()
	w, ok := l.windows[key]
	if !ok || !now.Before(w.startAt.Add(l.window)) {
		w = &window{startAt: now}
		l.windows[key] = w
	}
	return w
}
