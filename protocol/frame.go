package protocol

import (
	"encoding/binary"
	"hash/crc32"
)

// Frame represents a frame of data transferred over the radio link.
// Layout: Length(1) | Src(6) | Dst(6) | Payload(0-110) | CRC32(4) | Terminal(1)
// Length counts everything AFTER the length byte (so full Frame minus 1).
// Total size max 128 bytes.
type Frame struct {
	Length      byte
	Source      Address
	Destination Address
	Payload     []byte
	CRC         uint32 // decoded Frames only; ignored by encoder
}

func EncodeFrame(p *Frame) []byte {
	if p == nil {
		return make([]byte, 0)
	}

	payloadLen := 0
	if p.Payload != nil {
		if len(p.Payload) > MaxPayloadSize {
			p.Payload = p.Payload[:MaxPayloadSize]
		}
		payloadLen = len(p.Payload)
	}

	bodyLen := headerWithoutLen + payloadLen + CRCSize + TerminalSize // bytes AFTER Length field
	totalLen := LengthFieldSize + bodyLen

	data := make([]byte, totalLen)
	data[0] = byte(bodyLen)
	copy(data[1:1+AddressSize], p.Source[:])
	copy(data[1+AddressSize:FrameHeaderSize], p.Destination[:])

	if payloadLen > 0 {
		copy(data[FrameHeaderSize:], p.Payload[:payloadLen])
	}

	// CRC32 over addresses and payload
	crc := crc32.ChecksumIEEE(data[1 : FrameHeaderSize+payloadLen])
	crcPos := FrameHeaderSize + payloadLen
	binary.LittleEndian.PutUint32(data[crcPos:crcPos+CRCSize], crc)

	data[totalLen-1] = FrameTerminal

	p.Length = byte(bodyLen)

	return data
}

func DecodeFrame(data []byte) *Frame {
	// Must at least fit header + CRC + Terminal
	minLen := FrameHeaderSize + CRCSize + TerminalSize
	if len(data) < minLen {
		return nil
	}

	bodyLen := int(data[0])
	if bodyLen == 0 || (bodyLen+LengthFieldSize) > len(data) {
		return nil
	}

	if data[LengthFieldSize+bodyLen-1] != FrameTerminal {
		return nil
	}

	payloadLen := bodyLen - headerWithoutLen - (CRCSize + TerminalSize)
	if payloadLen < 0 || payloadLen > MaxPayloadSize {
		return nil
	}

	crcOffset := FrameHeaderSize + payloadLen
	recvCRC := binary.LittleEndian.Uint32(data[crcOffset : crcOffset+CRCSize])
	if recvCRC != crc32.ChecksumIEEE(data[1:crcOffset]) {
		return nil
	}

	p := &Frame{
		Length: byte(bodyLen),
		CRC:    recvCRC,
	}
	copy(p.Source[:], data[1:1+AddressSize])
	copy(p.Destination[:], data[1+AddressSize:FrameHeaderSize])

	p.Payload = make([]byte, payloadLen)
	copy(p.Payload, data[FrameHeaderSize:crcOffset])

	return p
}
