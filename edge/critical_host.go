//go:build !tinygo && !baremetal

// This file is built only for non-embedded targets, where the "interrupt"
// is another goroutine.
package edge

import "sync"

type criticalSection struct {
	mu sync.Mutex
}

func (cs *criticalSection) enter() uintptr {
	cs.mu.Lock()
	return 0
}

func (cs *criticalSection) exit(uintptr) { cs.mu.Unlock() }
