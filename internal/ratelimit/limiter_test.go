// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllow_UnderLimit(t *testing.T) {
	l := New(3, time.Minute)
	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(1), "event %d should be allowed", i)
	}
	assert.False(t, l.Allow(1))
}

func TestAllow_PerUserIsolation(t *testing.T) {
	l := New(1, time.Minute)
	assert.True(t, l.Allow(1))
	assert.False(t, l.Allow(1))
	assert.True(t, l.Allow(2))
}

func TestAllow_WindowSlides(t *testing.T) {
	current := time.Unix(1700000000, 0)
	l := New(2, time.Minute)
	l.now = func() time.Time { return current }

	assert.True(t, l.Allow(1))
	assert.True(t, l.Allow(1))
	assert.False(t, l.Allow(1))

	// Past the window, the old events age out.
	current = current.Add(61 * time.Second)
	assert.True(t, l.Allow(1))
}

func TestAllow_RefusedEventsNotCounted(t *testing.T) {
	current := time.Unix(1700000000, 0)
	l := New(1, time.Minute)
	l.now = func() time.Time { return current }

	assert.True(t, l.Allow(1))
	for i := 0; i < 10; i++ {
		assert.False(t, l.Allow(1))
	}

	// Only the single accepted event occupies the window.
	current = current.Add(61 * time.Second)
	assert.True(t, l.Allow(1))
}

func TestNew_Defaults(t *testing.T) {
	l := New(0, 0)
	assert.Equal(t, defaultMaxEvents, l.maxEvents)
	assert.Equal(t, defaultWindow, l.window)
}
