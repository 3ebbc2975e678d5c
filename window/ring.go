// Package window keeps a fixed-size history of per-tick counts.
package window

import "errors"

var ErrInvalidSize = errors.New("window size must be positive")

// Aggregator is a ring of per-tick counts. Slots are overwritten in place,
// never shifted; cursor always names the next slot to overwrite and sum is
// kept equal to the total of all slots.
type Aggregator struct {
	slots  []uint32
	cursor int
	sum    uint32
	ticks  uint64
}

// New allocates the ring once; it never grows afterwards.
func New(size int) (*Aggregator, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	return &Aggregator{slots: make([]uint32, size)}, nil
}

// PushTick records the count observed during one tick, replacing the count
// from size ticks ago.
func (a *Aggregator) PushTick(count uint32) {
	a.sum = a.sum - a.slots[a.cursor] + count
	a.slots[a.cursor] = count
	a.cursor++
	if a.cursor == len(a.slots) {
		a.cursor = 0
	}
	a.ticks++
}

// RollingSum returns the events counted across the last Size ticks.
// Slots not yet written contribute zero.
func (a *Aggregator) RollingSum() uint32 { return a.sum }

func (a *Aggregator) Size() int { return len(a.slots) }

func (a *Aggregator) Cursor() int { return a.cursor }

// Ticks is the number of PushTick calls since construction.
func (a *Aggregator) Ticks() uint64 { return a.ticks }

// Slots returns a copy of the ring, oldest slot first.
func (a *Aggregator) Slots() []uint32 {
	out := make([]uint32, 0, len(a.slots))
	out = append(out, a.slots[a.cursor:]...)
	return append(out, a.slots[:a.cursor]...)
}
