//go:build !tinygo && !baremetal

// This file is built only for non-embedded targets (host-based testing).
package pulsecast

import (
	"github.com/ystepanoff/pulsecast/driver/stub"
	"github.com/ystepanoff/pulsecast/transport"
)

// NewRadio returns a link on the process-wide in-memory medium, so every
// node created in one process hears the others.
func NewRadio(addr Address) *transport.Link {
	return transport.NewLinkWithDriver(addr, stub.New())
}
