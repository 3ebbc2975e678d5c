package protocol

import (
	"errors"
	"testing"
)

func TestEncodeRollingSum(t *testing.T) {
	tests := []struct {
		sum  uint32
		want string
	}{
		{0, "0"},
		{8, "8"},
		{300, "300"},
		{4294967295, "4294967295"},
	}
	for _, tt := range tests {
		if got := string(EncodeRollingSum(tt.sum)); got != tt.want {
			t.Errorf("EncodeRollingSum(%d) = %q, want %q", tt.sum, got, tt.want)
		}
	}
}

func TestDecodeRollingSum(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		want    uint32
		wantErr bool
	}{
		{name: "single digit", payload: []byte("8"), want: 8},
		{name: "multi digit", payload: []byte("1234"), want: 1234},
		{name: "nul padded", payload: []byte{'4', '2', 0, 0, 0}, want: 42},
		{name: "empty", payload: nil, wantErr: true},
		{name: "only padding", payload: []byte{0, 0}, wantErr: true},
		{name: "greeting text", payload: AckPayload, wantErr: true},
		{name: "negative", payload: []byte("-1"), wantErr: true},
		{name: "binary", payload: []byte{0x01, 0x00, 0x00, 0x00}, wantErr: true},
		{name: "overflow", payload: []byte("4294967296"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeRollingSum(tt.payload)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedPayload) {
					t.Fatalf("DecodeRollingSum() error = %v, want %v", err, ErrMalformedPayload)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeRollingSum() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DecodeRollingSum() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAddressParseAndString(t *testing.T) {
	a, err := ParseAddress("24:0A:C4:12:34:56")
	if err != nil {
		t.Fatalf("ParseAddress() error = %v", err)
	}
	if a.String() != "24:0A:C4:12:34:56" {
		t.Errorf("String() = %q", a.String())
	}
	if a.IsBroadcast() {
		t.Error("unicast address reported as broadcast")
	}
	if !Broadcast.IsBroadcast() {
		t.Error("Broadcast.IsBroadcast() = false")
	}

	for _, bad := range []string{"", "24:0A:C4:12:34", "24:0A:C4:12:34:5", "zz:0A:C4:12:34:56"} {
		if _, err := ParseAddress(bad); !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("ParseAddress(%q) error = %v, want %v", bad, err, ErrInvalidAddress)
		}
	}
}
