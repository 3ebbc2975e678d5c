//go:build tinygo || baremetal

package nrf

import (
	proto "github.com/ystepanoff/pulsecast/protocol"

	"device/nrf"
)

// PHY selects the on-air data rate and transmit power.
type PHY struct {
	Mode    uint32
	TxPower uint32
}

// DefaultPHY is 1 Mbit at 0 dBm, enough for a room full of nodes.
var DefaultPHY = PHY{
	Mode:    nrf.RADIO_MODE_MODE_Nrf_1Mbit,
	TxPower: nrf.RADIO_TXPOWER_TXPOWER_0dBm,
}

// startHFCLK blocks until the external high-frequency crystal is running.
func startHFCLK() {
	nrf.CLOCK.EVENTS_HFCLKSTARTED.Set(0)
	nrf.CLOCK.TASKS_HFCLKSTART.Set(1)
	for nrf.CLOCK.EVENTS_HFCLKSTARTED.Get() == 0 {
	}
}

// configure programs a single logical address (pipe 0) for both directions.
// The first frame byte is the hardware LENGTH field, so a frame goes on air
// as-is.
func configure(phy PHY, address uint32, prefix byte, channel uint8) error {
	if channel > 125 {
		return proto.ErrInvalidChannel
	}

	nrf.RADIO.POWER.Set(1)
	nrf.RADIO.MODE.Set(phy.Mode)
	nrf.RADIO.TXPOWER.Set(phy.TxPower)
	setFrequency(channel)

	nrf.RADIO.BASE0.Set(address)
	nrf.RADIO.PREFIX0.Set(uint32(prefix))
	nrf.RADIO.TXADDRESS.Set(0)
	nrf.RADIO.RXADDRESSES.Set(1)

	nrf.RADIO.PCNF0.Set(8 << nrf.RADIO_PCNF0_LFLEN_Pos)
	nrf.RADIO.PCNF1.Set(
		(proto.MaxFrameSize << nrf.RADIO_PCNF1_MAXLEN_Pos) |
			(3 << nrf.RADIO_PCNF1_BALEN_Pos) |
			(nrf.RADIO_PCNF1_ENDIAN_Little << nrf.RADIO_PCNF1_ENDIAN_Pos) |
			(nrf.RADIO_PCNF1_WHITEEN_Enabled << nrf.RADIO_PCNF1_WHITEEN_Pos))

	// 16-bit CCITT; frames carry their own CRC32 on top.
	nrf.RADIO.CRCCNF.Set(2)
	nrf.RADIO.CRCINIT.Set(0xFFFF)
	nrf.RADIO.CRCPOLY.Set(0x11021)

	return nil
}

// setFrequency tunes to 2400+channel MHz and reseeds the whitening LFSR,
// which both ends must agree on.
func setFrequency(channel uint8) {
	nrf.RADIO.FREQUENCY.Set(uint32(channel))
	nrf.RADIO.DATAWHITEIV.Set(uint32(channel&0x3F) | 0x40)
}

// DeviceAddress derives a stable link-layer address from the factory
// programmed device address in FICR.
func DeviceAddress() proto.Address {
	lo := nrf.FICR.DEVICEADDR[0].Get()
	hi := nrf.FICR.DEVICEADDR[1].Get()
	return proto.Address{
		byte(hi>>8) | 0xC0, byte(hi),
		byte(lo >> 24), byte(lo >> 16), byte(lo >> 8), byte(lo),
	}
}
