package node

import (
	"errors"
	"sync"

	proto "github.com/ystepanoff/pulsecast/protocol"
	"github.com/ystepanoff/pulsecast/transport"
)

type sentFrame struct {
	dst     proto.Address
	payload string
}

// mockRadio implements transport.Radio for testing.
type mockRadio struct {
	mu      sync.Mutex
	addr    proto.Address
	inbox   []proto.Frame
	sent    []sentFrame
	peers   []proto.Address
	initErr error
	sendErr func(dst proto.Address) error
	onSend  func(dst proto.Address)
}

func newMockRadio(addr proto.Address) *mockRadio { return &mockRadio{addr: addr} }

func (r *mockRadio) Initialise() error { return r.initErr }

func (r *mockRadio) Address() proto.Address { return r.addr }

func (r *mockRadio) Send(dst proto.Address, payload []byte) (transport.SendStatus, error) {
	r.mu.Lock()
	onSend, sendErr := r.onSend, r.sendErr
	r.mu.Unlock()

	if onSend != nil {
		onSend(dst)
	}
	if sendErr != nil {
		if err := sendErr(dst); err != nil {
			return transport.StatusFailed, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentFrame{dst: dst, payload: string(payload)})
	return transport.StatusSent, nil
}

func (r *mockRadio) TryReceive() (proto.Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.inbox) == 0 {
		return proto.Frame{}, false
	}
	f := r.inbox[0]
	r.inbox = r.inbox[1:]
	return f, true
}

func (r *mockRadio) AddPeer(addr proto.Address) error {
	if addr.IsBroadcast() {
		return proto.ErrBroadcastPeer
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.peers = append(r.peers, addr)
	return nil
}

func (r *mockRadio) RemovePeer(addr proto.Address) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.peers {
		if p == addr {
			r.peers = append(r.peers[:i], r.peers[i+1:]...)
			return
		}
	}
}

func (r *mockRadio) inject(src, dst proto.Address, payload string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inbox = append(r.inbox, proto.Frame{Source: src, Destination: dst, Payload: []byte(payload)})
}

func (r *mockRadio) sentTo(dst proto.Address) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, s := range r.sent {
		if s.dst == dst {
			out = append(out, s.payload)
		}
	}
	return out
}

func (r *mockRadio) broadcasts() []string { return r.sentTo(proto.Broadcast) }

var errRadioDown = errors.New("radio down")

func failTo(target proto.Address) func(proto.Address) error {
	return func(dst proto.Address) error {
		if dst == target {
			return errRadioDown
		}
		return nil
	}
}
