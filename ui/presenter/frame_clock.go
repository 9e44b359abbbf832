package presenter

import "sync"

// FrameClock queues work for the next display refresh. It implements the
// tracking scheduler; the Loop drains it once per tick on the Tk thread.
type FrameClock struct {
	mu      sync.Mutex
	pending []func()
	spare   []func()
}

// RequestFrame runs fn at the next refresh.
func (c *FrameClock) RequestFrame(fn func()) {
	if c == nil || fn == nil {
		return
	}
	c.mu.Lock()
	c.pending = append(c.pending, fn)
	c.mu.Unlock()
}

// Pending returns the number of queued callbacks.
func (c *FrameClock) Pending() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// RunPending runs the callbacks queued before the call. Callbacks requested
// while running wait for the next refresh.
func (c *FrameClock) RunPending() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	run := c.pending
	c.pending, c.spare = c.spare[:0], nil
	c.mu.Unlock()
	for i, fn := range run {
		fn()
		run[i] = nil
	}
	c.mu.Lock()
	c.spare = run[:0]
	c.mu.Unlock()
	return len(run)
}
