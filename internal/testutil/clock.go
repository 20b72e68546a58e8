// Package testutil provides deterministic helpers for tests.
package testutil

import (
	"sync"
	"time"
)

// FrozenClock provides a thread-safe deterministic time source for tests.
//
// Audit rows carry wall-clock timestamps; tests that compare stored rows
// need those timestamps fixed. The clock starts at a caller-chosen instant
// and advances by a fixed step on each call, so repeated runs of the same
// test produce identical created_at values in order.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type FrozenClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewFrozenClock creates a clock frozen at the given instant.
//
// Each call to Now advances the clock by step. A zero step yields the
// same instant on every call.
func NewFrozenClock(start time.Time, step time.Duration) *FrozenClock {
	return &FrozenClock{now: start, step: step}
}

// Now returns the current instant and advances the clock by the step.
func (c *FrozenClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Current returns the current instant without advancing.
func (c *FrozenClock) Current() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Reset rewinds the clock to the given instant.
func (c *FrozenClock) Reset(start time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = start
}
