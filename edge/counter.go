// Package edge counts falling-edge events raised from interrupt context and
// hands them to the control loop once per tick.
package edge

// Counter is the only state shared between the edge interrupt and the main
// loop. RecordEdge and Drain run inside the same critical section, so an
// interrupt can never land between the read and the reset of Drain.
type Counter struct {
	cs    criticalSection
	count uint32
}

func NewCounter() *Counter { return &Counter{} }

// RecordEdge adds one edge. It is safe to call from an interrupt handler:
// it neither blocks on anything but the critical section nor allocates.
func (c *Counter) RecordEdge() {
	state := c.cs.enter()
	c.count++
	c.cs.exit(state)
}

// Drain returns the edges recorded since the previous Drain and resets the
// counter to zero in one indivisible step.
func (c *Counter) Drain() uint32 {
	state := c.cs.enter()
	n := c.count
	c.count = 0
	c.cs.exit(state)
	return n
}

// Value reads the pending count without resetting it.
func (c *Counter) Value() uint32 {
	state := c.cs.enter()
	n := c.count
	c.cs.exit(state)
	return n
}
