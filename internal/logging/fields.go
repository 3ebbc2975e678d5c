//go:build !tinygo && !baremetal

package logging

import "go.uber.org/zap"

// Library code logs through these names so the firmware build can swap zap
// out; on the host they are zap itself.
type (
	Logger = zap.Logger
	Field  = zap.Field
)

func Nop() *Logger { return zap.NewNop() }

var (
	String     = zap.String
	Stringer   = zap.Stringer
	ByteString = zap.ByteString
	Error      = zap.Error
	Int        = zap.Int
	Int64      = zap.Int64
	Uint32     = zap.Uint32
	Uint64     = zap.Uint64
	Duration   = zap.Duration
	Time       = zap.Time
)
