//go:build tinygo || baremetal

// This file is built only for embedded targets (using real radio hardware).
package pulsecast

import (
	"github.com/ystepanoff/pulsecast/driver/nrf"
	"github.com/ystepanoff/pulsecast/transport"
)

func NewRadio(addr Address) *transport.Link {
	return transport.NewLinkWithDriver(addr, nrf.New())
}
