// Package ratelimit provides a sliding-window request limiter with
// introspection into the current window state.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Limiter admits at most maxRequests calls per rolling window. Wait blocks
// the caller until the window has room; Remaining and ResetTime report the
// state of the window at call time.
type Limiter struct {
	maxRequests int
	window      time.Duration
	now         func() time.Time

	mu     sync.Mutex
	starts []time.Time
}

// New constructs a Limiter admitting maxRequests per window.
func New(maxRequests int, window time.Duration) (*Limiter, error) {
	if maxRequests <= 0 {
		return nil, errors.New("max requests must be positive")
	}
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	return &Limiter{
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
		starts:      make([]time.Time, 0, maxRequests),
	}, nil
}

// Wait blocks until the window admits one more request, then records it.
// It returns early with the context error if ctx is canceled while waiting.
func (l *Limiter) Wait(ctx context.Context) error {
	for {
		l.mu.Lock()
		l.prune(l.now())
		if len(l.starts) < l.maxRequests {
			l.starts = append(l.starts, l.now())
			l.mu.Unlock()
			return nil
		}
		wait := l.starts[0].Add(l.window).Sub(l.now())
		l.mu.Unlock()

		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Remaining reports how many requests the current window still admits.
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prune(l.now())
	return l.maxRequests - len(l.starts)
}

// ResetTime reports when the oldest recorded request leaves the window,
// which is the earliest instant a currently blocked caller can proceed.
// With an empty window it returns the current time.
func (l *Limiter) ResetTime() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	l.prune(now)
	if len(l.starts) == 0 {
		return now
	}
	return l.starts[0].Add(l.window)
}

func (l *Limiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(l.starts) && !l.starts[i].After(cutoff) {
		i++
	}
	if i > 0 {
		l.starts = append(l.starts[:0], l.starts[i:]...)
	}
}
