// Package pulsecast provides a façade over the node, transport and protocol
// packages for programs that just want to run a counting node.
package pulsecast

import (
	"github.com/ystepanoff/pulsecast/edge"
	"github.com/ystepanoff/pulsecast/node"
	"github.com/ystepanoff/pulsecast/protocol"
	"github.com/ystepanoff/pulsecast/transport"
)

// The radio constructors are split into build-tag specific files:
// - constructors_nrf.go - for embedded platforms (//go:build tinygo || baremetal)
// - constructors_host.go - for development/testing (//go:build !tinygo && !baremetal)

type (
	Address = protocol.Address
	Frame   = protocol.Frame
	Radio   = transport.Radio
	Link    = transport.Link
	Node    = node.Node
	Config  = node.Config
	Option  = node.Option
	Sink    = node.Sink
	Counter = edge.Counter
	Handler = edge.Handler
)

var (
	ErrInvalidPayload   = protocol.ErrInvalidPayload
	ErrMalformedPayload = protocol.ErrMalformedPayload
	ErrTransportInit    = protocol.ErrTransportInit
	ErrInvalidChannel   = protocol.ErrInvalidChannel
	ErrTimeout          = protocol.ErrTimeout

	Broadcast = protocol.Broadcast
)

var (
	DefaultConfig = node.DefaultConfig
	WithClock     = node.WithClock
	WithLogger    = node.WithLogger
	WithSink      = node.WithSink
)

// NewNode wires a radio for addr, an edge counter and a node together. The
// returned handler is what the button interrupt should call.
func NewNode(addr Address, cfg Config, debounce edge.Debouncer, opts ...Option) (*Node, *Handler, error) {
	counter := edge.NewCounter()
	n, err := node.New(NewRadio(addr), counter, cfg, opts...)
	if err != nil {
		return nil, nil, err
	}
	return n, edge.NewHandler(counter, debounce), nil
}
