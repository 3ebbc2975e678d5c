package protocol

import "time"

// Generic radio & protocol constants (platform independent). All higher layers should depend on this file.
const (
	// Frame sizing
	// Layout:
	//   Length (1 byte) | Src (6) | Dst (6) | Payload (0-110) | CRC32 (4) | Terminal (1)
	// Length counts everything after the length byte, i.e., total Frame size minus 1.

	// Sizes of individual components
	LengthFieldSize = 1
	CRCSize         = 4 // CRC32, little-endian
	TerminalSize    = 1

	// Header consists of: Src(6)+Dst(6) = 12 plus Length field = 13 bytes before payload
	FrameHeaderSize = LengthFieldSize + 2*AddressSize // 13 bytes

	// Application-level payload allowance
	MaxPayloadSize = MaxFrameSize - FrameHeaderSize - CRCSize - TerminalSize

	// Total maximum Frame length on air (including length, CRC, Terminal)
	MaxFrameSize = 128

	// RF defaults (can be overridden per device)
	DefaultChannel = 7

	// internal helper (bytes in header after length byte)
	headerWithoutLen = FrameHeaderSize - LengthFieldSize

	// Terminal byte value appended to the end of every Frame
	FrameTerminal = 0x55
)

// Build-time node parameters.
const (
	// WindowSize is the number of ticks covered by the rolling sum.
	WindowSize = 60

	// TickInterval is both the aggregation tick and the broadcast period.
	TickInterval = 5 * time.Second

	// PeerCapacity bounds the number of peers a node remembers.
	PeerCapacity = 20

	// PollInterval is how long the main loop idles between iterations.
	PollInterval = 10 * time.Millisecond

	// DebounceInterval is the minimum spacing between counted edges when
	// the min-interval debounce policy is selected.
	DebounceInterval = 100 * time.Millisecond
)

// AckPayload is the body of the unicast acknowledgment sent to a newly discovered peer.
var AckPayload = []byte("Hello Peer")
