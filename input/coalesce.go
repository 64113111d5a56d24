package input

// FlushFunc applies a coalesced pointer position.
type FlushFunc func(x, y float64)

// Coalescer bounds the cost of fast drags by collapsing a burst of pointer
// positions into at most one flush per rendering tick. Only the most recent
// request survives; FlushNow bypasses the tick for commit-on-release.
type Coalescer struct {
	flush   FlushFunc
	pending bool
	x, y    float64
}

// NewCoalescer creates a coalescer that delivers positions to flush.
func NewCoalescer(flush FlushFunc) *Coalescer {
	return &Coalescer{flush: flush}
}

// Request records a position for the next tick, replacing any pending one.
func (c *Coalescer) Request(x, y float64) {
	c.pending = true
	c.x, c.y = x, y
}

// Tick delivers the pending position, if any, and reports whether a flush
// happened. The host calls this once per rendering frame.
func (c *Coalescer) Tick() bool {
	if !c.pending {
		return false
	}
	c.pending = false
	c.flush(c.x, c.y)
	return true
}

// FlushNow delivers the given position immediately, discarding any pending
// request so the same drag cannot flush twice.
func (c *Coalescer) FlushNow(x, y float64) {
	c.pending = false
	c.flush(x, y)
}

// Cancel drops the pending request without delivering it.
func (c *Coalescer) Cancel() {
	c.pending = false
}

// Pending reports whether a request is waiting for the next tick.
func (c *Coalescer) Pending() bool {
	return c.pending
}
