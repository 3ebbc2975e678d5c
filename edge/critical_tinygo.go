//go:build tinygo || baremetal

// This file is built only for embedded targets, where the edge handler runs
// as a real interrupt on the single core.
package edge

import "runtime/interrupt"

// criticalSection masks interrupts for its duration. Nesting is safe because
// exit restores the previous mask rather than unconditionally enabling.
type criticalSection struct{}

func (criticalSection) enter() uintptr { return uintptr(interrupt.Disable()) }

func (criticalSection) exit(state uintptr) { interrupt.Restore(interrupt.State(state)) }
