package transport

import (
	"time"

	proto "github.com/ystepanoff/pulsecast/protocol"
)

// RadioDriver is the interface that wraps the basic radio operations.
// Rx with a zero timeout must not block: it returns proto.ErrTimeout when no
// frame is pending.
type RadioDriver interface {
	StartHFCLK()
	Configure(address uint32, prefix byte, channel uint8) error
	SetChannel(channel uint8) error
	Tx(data []byte) error
	Rx(timeout time.Duration) ([]byte, error)
}

// SendStatus reports how far a frame got.
type SendStatus uint8

const (
	StatusSent SendStatus = iota
	StatusFailed
)

func (s SendStatus) String() string {
	if s == StatusSent {
		return "sent"
	}
	return "failed"
}

// Radio is the connectionless transport the node consumes. No ordering or
// delivery guarantee is assumed, and none of the methods may block.
type Radio interface {
	Initialise() error
	Address() proto.Address
	Send(dst proto.Address, payload []byte) (SendStatus, error)
	TryReceive() (proto.Frame, bool)
	AddPeer(addr proto.Address) error
	RemovePeer(addr proto.Address)
}
