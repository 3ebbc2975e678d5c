package protocol

import "errors"

var (
	ErrInvalidPayload   = errors.New("invalid payload size")
	ErrMalformedPayload = errors.New("payload is not a decimal rolling sum")
	ErrInvalidAddress   = errors.New("invalid link-layer address")
	ErrBroadcastPeer    = errors.New("broadcast address cannot be a peer")
	ErrUnknownPeer      = errors.New("peer not registered with transport")
	ErrTransportInit    = errors.New("transport initialisation failed")
	ErrInvalidChannel   = errors.New("invalid channel (valid range: 0-125)")
	ErrTimeout          = errors.New("operation timed out")
)
