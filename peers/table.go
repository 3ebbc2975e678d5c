// Package peers tracks the link-layer addresses a node has discovered.
package peers

import (
	"errors"
	"fmt"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	proto "github.com/ystepanoff/pulsecast/protocol"
)

var (
	ErrTableFull       = errors.New("peer table at capacity")
	ErrInvalidCapacity = errors.New("peer table capacity must be positive")
)

// OverflowPolicy selects what Register does once the table is full.
type OverflowPolicy uint8

const (
	// DropNew rejects the newcomer and keeps every existing peer.
	DropNew OverflowPolicy = iota
	// EvictOldest forgets the earliest registered peer to admit the newcomer.
	EvictOldest
)

func (p OverflowPolicy) String() string {
	switch p {
	case DropNew:
		return "drop-new"
	case EvictOldest:
		return "evict-oldest"
	}
	return fmt.Sprintf("OverflowPolicy(%d)", uint8(p))
}

// ParseOverflowPolicy maps the String form back to a policy.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch s {
	case "drop-new", "":
		return DropNew, nil
	case "evict-oldest":
		return EvictOldest, nil
	}
	return DropNew, fmt.Errorf("unknown overflow policy %q", s)
}

// Result describes what a Register call did.
type Result uint8

const (
	Registered Result = iota
	AlreadyPresent
	Dropped
	Evicted
)

func (r Result) String() string {
	switch r {
	case Registered:
		return "registered"
	case AlreadyPresent:
		return "already-present"
	case Dropped:
		return "dropped"
	case Evicted:
		return "evicted"
	}
	return fmt.Sprintf("Result(%d)", uint8(r))
}

// Table is a bounded set of peer addresses. It is owned by the main loop
// and is not safe for concurrent use. Entries are never touched on lookup,
// so the LRU order is plain insertion order.
type Table struct {
	entries  *simplelru.LRU[proto.Address, struct{}]
	capacity int
	policy   OverflowPolicy
	evicted  proto.Address
}

func New(capacity int, policy OverflowPolicy) (*Table, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	t := &Table{capacity: capacity, policy: policy}
	entries, err := simplelru.NewLRU[proto.Address, struct{}](capacity, func(addr proto.Address, _ struct{}) {
		t.evicted = addr
	})
	if err != nil {
		return nil, err
	}
	t.entries = entries
	return t, nil
}

func (t *Table) Contains(addr proto.Address) bool { return t.entries.Contains(addr) }

// Register adds addr if it is not already known. When the table is full the
// outcome depends on the overflow policy: DropNew returns Dropped together
// with ErrTableFull; EvictOldest returns Evicted and the displaced address
// is available from LastEvicted.
func (t *Table) Register(addr proto.Address) (Result, error) {
	if addr.IsBroadcast() {
		return Dropped, proto.ErrBroadcastPeer
	}
	if t.entries.Contains(addr) {
		return AlreadyPresent, nil
	}
	if t.entries.Len() >= t.capacity && t.policy == DropNew {
		return Dropped, ErrTableFull
	}
	if t.entries.Add(addr, struct{}{}) {
		return Evicted, nil
	}
	return Registered, nil
}

// LastEvicted returns the address most recently displaced under EvictOldest.
func (t *Table) LastEvicted() proto.Address { return t.evicted }

func (t *Table) Len() int { return t.entries.Len() }

func (t *Table) Capacity() int { return t.capacity }

func (t *Table) Policy() OverflowPolicy { return t.policy }

// Addresses lists known peers, earliest registered first.
func (t *Table) Addresses() []proto.Address { return t.entries.Keys() }
