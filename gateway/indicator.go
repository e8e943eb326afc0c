package gateway

import "sync"

// Indicator is the busy-state capability the view layer hands to the
// Gateway: Show before a call is dispatched, Hide once it settles.
type Indicator interface {
	Show()
	Hide()
}

// NopIndicator discards busy signals. The Gateway defaults to it so it can
// run without a view layer attached.
type NopIndicator struct{}

func (NopIndicator) Show() {}
func (NopIndicator) Hide() {}

// CountingIndicator reference-counts overlapping calls around an inner
// indicator: the inner Show fires when the count goes 0→1 and the inner
// Hide when it returns to 0. Without it, two overlapping calls would hide
// the shared indicator while one of them is still in flight.
type CountingIndicator struct {
	mu    sync.Mutex
	count int
	inner Indicator
}

// NewCountingIndicator wraps inner with reference counting. A nil inner is
// treated as a no-op sink.
func NewCountingIndicator(inner Indicator) *CountingIndicator {
	if inner == nil {
		inner = NopIndicator{}
	}
	return &CountingIndicator{inner: inner}
}

func (c *CountingIndicator) Show() {
	c.mu.Lock()
	c.count++
	first := c.count == 1
	c.mu.Unlock()
	if first {
		c.inner.Show()
	}
}

func (c *CountingIndicator) Hide() {
	c.mu.Lock()
	last := false
	if c.count > 0 {
		c.count--
		last = c.count == 0
	}
	c.mu.Unlock()
	if last {
		c.inner.Hide()
	}
}
