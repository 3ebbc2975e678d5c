package protocol

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"
)

var (
	testSrc = Address{0x24, 0x0A, 0xC4, 0x00, 0x00, 0x01}
	testDst = Address{0x24, 0x0A, 0xC4, 0x00, 0x00, 0x02}
)

func TestFrameEncoding(t *testing.T) {
	tests := []struct {
		name        string
		frame       *Frame
		wantMinSize int
		wantMaxSize int
	}{
		{
			name: "empty payload",
			frame: &Frame{
				Source:      testSrc,
				Destination: Broadcast,
				Payload:     []byte{},
			},
			wantMinSize: FrameHeaderSize + CRCSize + TerminalSize,
			wantMaxSize: FrameHeaderSize + CRCSize + TerminalSize,
		},
		{
			name: "rolling sum payload",
			frame: &Frame{
				Source:      testSrc,
				Destination: Broadcast,
				Payload:     []byte("128"),
			},
			wantMinSize: FrameHeaderSize + 3 + CRCSize + TerminalSize,
			wantMaxSize: FrameHeaderSize + 3 + CRCSize + TerminalSize,
		},
		{
			name: "maximum payload",
			frame: &Frame{
				Source:      testSrc,
				Destination: testDst,
				Payload:     bytes.Repeat([]byte{0xAA}, MaxPayloadSize),
			},
			wantMinSize: MaxFrameSize,
			wantMaxSize: MaxFrameSize,
		},
		{
			name: "too large payload gets truncated",
			frame: &Frame{
				Source:      testSrc,
				Destination: testDst,
				Payload:     bytes.Repeat([]byte{0xAA}, MaxPayloadSize+50),
			},
			wantMinSize: MaxFrameSize,
			wantMaxSize: MaxFrameSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := EncodeFrame(tt.frame)

			if len(encoded) < tt.wantMinSize {
				t.Errorf("EncodeFrame() size = %v, want at least %v", len(encoded), tt.wantMinSize)
			}
			if len(encoded) > tt.wantMaxSize {
				t.Errorf("EncodeFrame() size = %v, exceeded max %v", len(encoded), tt.wantMaxSize)
			}

			if encoded[0] != byte(len(encoded)-1) {
				t.Errorf("Length byte = %v, want %v", encoded[0], len(encoded)-1)
			}

			if !bytes.Equal(encoded[1:7], tt.frame.Source[:]) {
				t.Errorf("Source = %x, want %x", encoded[1:7], tt.frame.Source[:])
			}
			if !bytes.Equal(encoded[7:13], tt.frame.Destination[:]) {
				t.Errorf("Destination = %x, want %x", encoded[7:13], tt.frame.Destination[:])
			}

			if encoded[len(encoded)-1] != FrameTerminal {
				t.Errorf("Terminal byte = %v, want %v", encoded[len(encoded)-1], FrameTerminal)
			}

			crcPos := len(encoded) - CRCSize - TerminalSize
			gotCRC := binary.LittleEndian.Uint32(encoded[crcPos : crcPos+CRCSize])
			if want := crc32.ChecksumIEEE(encoded[1:crcPos]); gotCRC != want {
				t.Errorf("CRC = %v, want %v", gotCRC, want)
			}
		})
	}
}

func TestFrameRoundTrip(t *testing.T) {
	frames := map[string]*Frame{
		"broadcast sum": {Source: testSrc, Destination: Broadcast, Payload: []byte("8")},
		"unicast ack":   {Source: testDst, Destination: testSrc, Payload: AckPayload},
		"empty":         {Source: testSrc, Destination: testDst},
	}

	for name, frame := range frames {
		t.Run(name, func(t *testing.T) {
			decoded := DecodeFrame(EncodeFrame(frame))
			if decoded == nil {
				t.Fatal("DecodeFrame() returned nil, want successful decode")
			}
			if decoded.Source != frame.Source {
				t.Errorf("Source = %v, want %v", decoded.Source, frame.Source)
			}
			if decoded.Destination != frame.Destination {
				t.Errorf("Destination = %v, want %v", decoded.Destination, frame.Destination)
			}
			if !bytes.Equal(decoded.Payload, frame.Payload) {
				t.Errorf("Payload = %q, want %q", decoded.Payload, frame.Payload)
			}
		})
	}
}

func TestDecodeInvalidFrames(t *testing.T) {
	valid := func() []byte {
		return EncodeFrame(&Frame{
			Source:      testSrc,
			Destination: testDst,
			Payload:     []byte("42"),
		})
	}

	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "nil data",
			data: nil,
		},
		{
			name: "too short",
			data: []byte{0x01, 0x02},
		},
		{
			name: "bad length byte",
			data: func() []byte {
				data := valid()
				data[0] = 0xFF
				return data
			}(),
		},
		{
			name: "wrong terminal byte",
			data: func() []byte {
				data := valid()
				data[len(data)-1] = 0xAA
				return data
			}(),
		},
		{
			name: "corrupt CRC",
			data: func() []byte {
				data := valid()
				data[FrameHeaderSize+2] ^= 0xFF
				return data
			}(),
		},
		{
			name: "destination bit flipped",
			data: func() []byte {
				data := valid()
				data[8] ^= 0x01
				return data
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if decoded := DecodeFrame(tt.data); decoded != nil {
				t.Errorf("DecodeFrame() = %v, want nil for invalid frame", decoded)
			}
		})
	}
}

func TestFrameSizeLimit(t *testing.T) {
	frame := &Frame{
		Source:      testSrc,
		Destination: Broadcast,
		Payload:     bytes.Repeat([]byte{'9'}, MaxPayloadSize*2),
	}

	encoded := EncodeFrame(frame)
	if len(encoded) > MaxFrameSize {
		t.Errorf("EncodeFrame() size = %v, want <= %v", len(encoded), MaxFrameSize)
	}

	decoded := DecodeFrame(encoded)
	if decoded == nil {
		t.Fatal("DecodeFrame() returned nil, expected valid frame")
	}
	if len(decoded.Payload) != MaxPayloadSize {
		t.Errorf("Decoded payload size = %v, want %v", len(decoded.Payload), MaxPayloadSize)
	}
}
