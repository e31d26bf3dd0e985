package ratelimit

import (
	"context"
	"sync"
	"time"
)

type source struct {
	mu   sync.Mutex
	last time.Time
}

// Limiter spaces outbound calls so that at least a minimum interval elapses
// between consecutive requests to the same source. Each source's mutex is
// held across the wait, so concurrent callers are serialized rather than all
// sleeping off the same stale "last call" timestamp.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	sources  map[string]*source
}

// New creates a limiter with the given minimum spacing between calls.
func New(interval time.Duration) *Limiter {
	return &Limiter{
		interval: interval,
		sources:  make(map[string]*source),
	}
}

// Wait blocks until the minimum interval since the last call to key has
// elapsed, then records the new call time. Returns early if ctx is done;
// this is advisory throttling, not a circuit breaker, so no error is
// reported either way.
func (l *Limiter) Wait(ctx context.Context, key string) {
	l.mu.Lock()
	s, ok := l.sources[key]
	if !ok {
		s = &source{}
		l.sources[key] = s
	}
	l.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if wait := l.interval - time.Since(s.last); wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
		}
	}
	s.last = time.Now()
}
