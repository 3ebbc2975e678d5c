package transport

import (
	"fmt"

	proto "github.com/ystepanoff/pulsecast/protocol"
	"github.com/ystepanoff/pulsecast/telemetry"
)

// Every node listens on the same radio pipe; link-layer addressing happens
// inside the frame.
const (
	pipeAddress = 0xE7E7E7E7
	pipePrefix  = 0xE7
)

// Link turns a byte-level RadioDriver into a Radio: it frames outbound
// payloads with the node's address, and filters inbound frames down to those
// addressed to this node or to everyone.
type Link struct {
	addr    proto.Address
	driver  RadioDriver
	channel uint8
	peers   map[proto.Address]struct{}
	corrupt uint64

	corruptFrames telemetry.Counter
}

func NewLinkWithDriver(addr proto.Address, d RadioDriver) *Link {
	return &Link{
		addr:    addr,
		driver:  d,
		channel: proto.DefaultChannel,
		peers:   make(map[proto.Address]struct{}),

		corruptFrames: telemetry.InboundFrames.WithLabelValues(addr.String(), "corrupt"),
	}
}

func (l *Link) Initialise() error {
	l.driver.StartHFCLK()
	if err := l.driver.Configure(pipeAddress, pipePrefix, l.channel); err != nil {
		return fmt.Errorf("%w: %v", proto.ErrTransportInit, err)
	}
	return nil
}

func (l *Link) Address() proto.Address { return l.addr }

func (l *Link) SetChannel(ch uint8) error {
	if ch > 125 {
		return proto.ErrInvalidChannel
	}
	l.channel = ch
	return l.driver.SetChannel(ch)
}

// AddPeer makes addr a valid unicast destination. The nRF radio has no
// hardware peer list, so this is bookkeeping only and never fills up.
func (l *Link) AddPeer(addr proto.Address) error {
	if addr.IsBroadcast() {
		return proto.ErrBroadcastPeer
	}
	l.peers[addr] = struct{}{}
	return nil
}

// RemovePeer forgets a unicast destination. Unknown addresses are ignored.
func (l *Link) RemovePeer(addr proto.Address) { delete(l.peers, addr) }

// Peers is the number of unicast destinations currently registered.
func (l *Link) Peers() int { return len(l.peers) }

func (l *Link) Send(dst proto.Address, payload []byte) (SendStatus, error) {
	if len(payload) > proto.MaxPayloadSize {
		return StatusFailed, proto.ErrInvalidPayload
	}
	if !dst.IsBroadcast() {
		if _, ok := l.peers[dst]; !ok {
			return StatusFailed, fmt.Errorf("%v: %w", dst, proto.ErrUnknownPeer)
		}
	}

	frame := &proto.Frame{
		Source:      l.addr,
		Destination: dst,
		Payload:     payload,
	}
	if err := l.driver.Tx(proto.EncodeFrame(frame)); err != nil {
		return StatusFailed, err
	}
	return StatusSent, nil
}

// TryReceive returns the next frame meant for this node, skipping corrupt
// frames, our own echoes and unicast traffic for other nodes.
func (l *Link) TryReceive() (proto.Frame, bool) {
	for {
		data, err := l.driver.Rx(0)
		if err != nil {
			return proto.Frame{}, false
		}
		frame := proto.DecodeFrame(data)
		if frame == nil {
			l.corrupt++
			l.corruptFrames.Inc()
			continue
		}
		if frame.Source == l.addr {
			continue
		}
		if frame.Destination != l.addr && !frame.Destination.IsBroadcast() {
			continue
		}
		return *frame, true
	}
}

// Corrupt counts frames that failed length, CRC or terminal checks.
func (l *Link) Corrupt() uint64 { return l.corrupt }
