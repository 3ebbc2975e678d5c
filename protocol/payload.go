package protocol

import "strconv"

// EncodeRollingSum renders a rolling sum as ASCII decimal text with no padding.
func EncodeRollingSum(sum uint32) []byte {
	return strconv.AppendUint(make([]byte, 0, 10), uint64(sum), 10)
}

// DecodeRollingSum parses a broadcast payload. Trailing NUL padding, which
// some radios leave after the text, is ignored.
func DecodeRollingSum(payload []byte) (uint32, error) {
	n := len(payload)
	for n > 0 && payload[n-1] == 0 {
		n--
	}
	if n == 0 {
		return 0, ErrMalformedPayload
	}
	for _, c := range payload[:n] {
		if c < '0' || c > '9' {
			return 0, ErrMalformedPayload
		}
	}
	v, err := strconv.ParseUint(string(payload[:n]), 10, 32)
	if err != nil {
		return 0, ErrMalformedPayload
	}
	return uint32(v), nil
}

// IsASCII reports whether the payload is printable text, the only form the
// node ever logs verbatim.
func IsASCII(payload []byte) bool {
	for _, c := range payload {
		if c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}
