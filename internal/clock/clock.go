// Package clock provides a testable abstraction over wall-clock time.
//
// The analysis engine windows blink events over trailing wall-clock
// intervals; injecting a Clock lets tests drive those windows
// deterministically without real-time waiting.
package clock

import (
	"sync"
	"time"
)

// Clock provides the time operations the engine depends on.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// NowMillis returns the current time as Unix milliseconds.
	NowMillis() int64

	// Since returns the duration since t.
	Since(t time.Time) time.Duration
}

// Real implements Clock using the standard time package.
type Real struct{}

// Now returns the current time.
func (Real) Now() time.Time { return time.Now() }

// NowMillis returns the current Unix time in milliseconds.
func (Real) NowMillis() int64 { return time.Now().UnixMilli() }

// Since returns the time elapsed since t.
func (Real) Since(t time.Time) time.Duration { return time.Since(t) }

// Mock is a manually controlled clock for testing.
type Mock struct {
	mu  sync.Mutex
	now time.Time
}

// NewMock creates a Mock set to the given time.
func NewMock(t time.Time) *Mock {
	return &Mock{now: t}
}

// Now returns the mocked current time.
func (c *Mock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// NowMillis returns the mocked current Unix time in milliseconds.
func (c *Mock) NowMillis() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.UnixMilli()
}

// Since returns the duration between t and the mocked current time.
func (c *Mock) Since(t time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Sub(t)
}

// Set moves the mock clock to a specific time.
func (c *Mock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the mock clock forward by d.
func (c *Mock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
