//go:build !tinygo && !baremetal

package stub

import (
	"sync"
	"time"

	proto "github.com/ystepanoff/pulsecast/protocol"
	"github.com/ystepanoff/pulsecast/transport"
)

// Medium is a shared in-memory "air": every frame transmitted by one
// attached Driver on a channel is heard by all other Drivers tuned to it.
type Medium struct {
	mu      sync.Mutex
	drivers []*Driver
}

func NewMedium() *Medium { return &Medium{} }

// Default is the medium used by the host constructors.
var Default = NewMedium()

// Attach creates a driver listening on this medium.
func (m *Medium) Attach() *Driver {
	d := &Driver{medium: m, channel: proto.DefaultChannel}
	m.mu.Lock()
	m.drivers = append(m.drivers, d)
	m.mu.Unlock()
	return d
}

func (m *Medium) deliver(from *Driver, channel uint8, frame []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.drivers {
		if d == from {
			continue
		}
		d.mu.Lock()
		if d.configured && d.channel == channel {
			cp := make([]byte, len(frame))
			copy(cp, frame)
			d.rxBuf.push(cp)
		}
		d.mu.Unlock()
	}
}

// Driver implements a mock radio driver for host-side testing
type Driver struct {
	medium     *Medium
	mu         sync.Mutex
	rxBuf      ringBuffer
	txBuf      ringBuffer
	channel    uint8
	configured bool
	txErr      error
	configErr  error
}

// New returns a driver on the Default medium.
func New() transport.RadioDriver { return Default.Attach() }

func (d *Driver) StartHFCLK() {}

func (d *Driver) Configure(address uint32, prefix byte, channel uint8) error {
	if channel > 125 {
		return proto.ErrInvalidChannel
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.configErr != nil {
		return d.configErr
	}
	d.channel = channel
	d.configured = true
	return nil
}

func (d *Driver) SetChannel(channel uint8) error {
	if channel > 125 {
		return proto.ErrInvalidChannel
	}
	d.mu.Lock()
	d.channel = channel
	d.mu.Unlock()
	return nil
}

func (d *Driver) Tx(data []byte) error {
	d.mu.Lock()
	if d.txErr != nil {
		err := d.txErr
		d.mu.Unlock()
		return err
	}
	frame := make([]byte, len(data))
	copy(frame, data)
	d.txBuf.push(frame)
	channel := d.channel
	d.mu.Unlock()

	if d.medium != nil {
		d.medium.deliver(d, channel, frame)
	}
	return nil
}

func (d *Driver) Rx(timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)
	for {
		d.mu.Lock()
		frame, ok := d.rxBuf.pop()
		d.mu.Unlock()
		if ok {
			out := make([]byte, len(frame))
			copy(out, frame)
			return out, nil
		}

		if timeout <= 0 || time.Now().After(deadline) {
			return nil, proto.ErrTimeout
		}
		time.Sleep(1 * time.Millisecond)
	}
}

func (d *Driver) InjectRx(data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	frame := make([]byte, len(data))
	copy(frame, data)
	d.rxBuf.push(frame)
}

func (d *Driver) GetTxLog() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.txBuf.snapshot()
}

// FailTx makes every following Tx return err; nil restores normal operation.
func (d *Driver) FailTx(err error) {
	d.mu.Lock()
	d.txErr = err
	d.mu.Unlock()
}

// FailConfigure makes the next Configure calls return err.
func (d *Driver) FailConfigure(err error) {
	d.mu.Lock()
	d.configErr = err
	d.mu.Unlock()
}

const ringCapacity = 64

type ringBuffer struct {
	data       [ringCapacity][]byte
	head, tail int // head = next pop, tail = next push
	count      int
}

func (rb *ringBuffer) push(frame []byte) {
	if rb.count == ringCapacity {
		// Overwrite the oldest when buffer is full to keep memory bounded
		rb.data[rb.tail] = nil
		rb.head = (rb.head + 1) % ringCapacity
		rb.count--
	}
	rb.data[rb.tail] = frame
	rb.tail = (rb.tail + 1) % ringCapacity
	rb.count++
}

func (rb *ringBuffer) pop() ([]byte, bool) {
	if rb.count == 0 {
		return nil, false
	}
	frame := rb.data[rb.head]
	rb.data[rb.head] = nil
	rb.head = (rb.head + 1) % ringCapacity
	rb.count--
	return frame, true
}

func (rb *ringBuffer) snapshot() [][]byte {
	out := make([][]byte, rb.count)
	idx := 0
	i := rb.head
	for c := 0; c < rb.count; c++ {
		p := rb.data[i]
		cp := make([]byte, len(p))
		copy(cp, p)
		out[idx] = cp
		idx++
		i = (i + 1) % ringCapacity
	}
	return out
}
