//go:build tinygo || baremetal

package nrf

import (
	"time"
	"unsafe"

	proto "github.com/ystepanoff/pulsecast/protocol"
	"github.com/ystepanoff/pulsecast/transport"

	"device/nrf"
)

// Driver provides a RadioDriver backed by the real NRF peripheral registers.
// It keeps an internal buffer for packet TX/RX operations. Between calls the
// radio is left armed in RX so that frames arriving while the main loop is
// busy are caught; Rx only polls the END event.
type Driver struct {
	phy      PHY
	buffer   [proto.MaxFrameSize]byte
	rxActive bool
}

func New() transport.RadioDriver { return &Driver{phy: DefaultPHY} }

// NewWithPHY is New with a non-default data rate or transmit power.
func NewWithPHY(phy PHY) transport.RadioDriver { return &Driver{phy: phy} }

func (d *Driver) StartHFCLK() { startHFCLK() }

func (d *Driver) Configure(address uint32, prefix byte, channel uint8) error {
	d.disable()
	return configure(d.phy, address, prefix, channel)
}

func (d *Driver) SetChannel(channel uint8) error {
	if channel > 125 {
		return proto.ErrInvalidChannel
	}
	d.disable()
	setFrequency(channel)
	return nil
}

func (d *Driver) Tx(data []byte) error {
	d.disable()
	copy(d.buffer[:], data)
	nrf.RADIO.PACKETPTR.Set(uint32(uintptr(unsafe.Pointer(&d.buffer[0]))))
	nrf.RADIO.EVENTS_READY.Set(0)
	nrf.RADIO.EVENTS_END.Set(0)
	nrf.RADIO.TASKS_TXEN.Set(1)
	for nrf.RADIO.EVENTS_READY.Get() == 0 {
	}
	nrf.RADIO.TASKS_START.Set(1)
	for nrf.RADIO.EVENTS_END.Get() == 0 {
	}
	nrf.RADIO.TASKS_DISABLE.Set(1)
	for nrf.RADIO.STATE.Get() != nrf.RADIO_STATE_STATE_Disabled {
	}
	return nil
}

// Rx returns a received frame, waiting at most timeout. A zero timeout polls.
func (d *Driver) Rx(timeout time.Duration) ([]byte, error) {
	if !d.rxActive {
		d.arm()
	}
	start := time.Now()
	for nrf.RADIO.EVENTS_END.Get() == 0 {
		if time.Since(start) >= timeout {
			return nil, proto.ErrTimeout
		}
	}
	nrf.RADIO.EVENTS_END.Set(0)
	valid := nrf.RADIO.CRCSTATUS.Get() == 1

	pktLen := int(d.buffer[0]) + 1
	if pktLen > proto.MaxFrameSize {
		pktLen = proto.MaxFrameSize
	}
	out := make([]byte, pktLen)
	copy(out, d.buffer[:pktLen])

	// Re-arm for the next frame before handing this one up.
	nrf.RADIO.TASKS_START.Set(1)

	if !valid {
		return nil, proto.ErrTimeout
	}
	return out, nil
}

func (d *Driver) arm() {
	nrf.RADIO.PACKETPTR.Set(uint32(uintptr(unsafe.Pointer(&d.buffer[0]))))
	nrf.RADIO.EVENTS_READY.Set(0)
	nrf.RADIO.EVENTS_END.Set(0)
	nrf.RADIO.TASKS_RXEN.Set(1)
	for nrf.RADIO.EVENTS_READY.Get() == 0 {
	}
	nrf.RADIO.TASKS_START.Set(1)
	d.rxActive = true
}

func (d *Driver) disable() {
	if !d.rxActive {
		return
	}
	nrf.RADIO.TASKS_DISABLE.Set(1)
	for nrf.RADIO.STATE.Get() != nrf.RADIO_STATE_STATE_Disabled {
	}
	d.rxActive = false
}
