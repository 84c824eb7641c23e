// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ratelimit implements the per-user sliding window applied to bot
// commands.
package ratelimit

import (
	"sync"
	"time"
)

const (
	defaultMaxEvents = 30
	defaultWindow    = 60 * time.Second
)

// Limiter tracks event timestamps per user inside a sliding window. A user
// exceeding the limit is refused until old events age out of the window.
type Limiter struct {
	mu        sync.Mutex
	maxEvents int
	window    time.Duration
	events    map[int64][]time.Time
	now       func() time.Time
}

// New returns a limiter allowing maxEvents per window. Zero values select
// the defaults (30 events per 60s).
func New(maxEvents int, window time.Duration) *Limiter {
	if maxEvents <= 0 {
		maxEvents = defaultMaxEvents
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &Limiter{
		maxEvents: maxEvents,
		window:    window,
		events:    make(map[int64][]time.Time),
		now:       time.Now,
	}
}

// Allow records one event for userID and reports whether it is within the
// limit. Refused events are not recorded.
func (l *Limiter) Allow(userID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.events[userID][:0]
	for _, ts := range l.events[userID] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.maxEvents {
		l.events[userID] = kept
		return false
	}

	l.events[userID] = append(kept, now)
	return true
}
