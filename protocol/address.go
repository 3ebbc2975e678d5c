package protocol

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressSize is the width of a link-layer address in bytes.
const AddressSize = 6

// Address is an opaque link-layer address. It serves both as a unicast
// destination and, in its all-ones form, as the broadcast sentinel.
type Address [AddressSize]byte

// Broadcast is the reserved destination meaning "all peers".
var Broadcast = Address{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

func (a Address) IsBroadcast() bool { return a == Broadcast }

func (a Address) String() string {
	var sb strings.Builder
	for i, b := range a {
		if i > 0 {
			sb.WriteByte(':')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}

// ParseAddress accepts the colon separated form produced by String.
func ParseAddress(s string) (Address, error) {
	var a Address
	parts := strings.Split(s, ":")
	if len(parts) != AddressSize {
		return a, fmt.Errorf("%q: %w", s, ErrInvalidAddress)
	}
	for i, p := range parts {
		if len(p) != 2 {
			return a, fmt.Errorf("%q: %w", s, ErrInvalidAddress)
		}
		b, err := hex.DecodeString(p)
		if err != nil {
			return a, fmt.Errorf("%q: %w", s, ErrInvalidAddress)
		}
		a[i] = b[0]
	}
	return a, nil
}

// MarshalText lets addresses appear as strings in YAML and log output.
func (a Address) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
