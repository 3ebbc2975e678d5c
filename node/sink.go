package node

import (
	"github.com/ystepanoff/pulsecast/internal/logging"
	proto "github.com/ystepanoff/pulsecast/protocol"
)

// Sink receives the values a node would put on its display. Rendering them
// is the sink's business.
type Sink interface {
	ShowLocal(sum uint32)
	ShowRemote(src proto.Address, sum uint32)
}

// LogSink writes display updates to a logger.
type LogSink struct {
	Log *logging.Logger
}

func (s LogSink) ShowLocal(sum uint32) {
	s.Log.Info("local rolling sum", logging.Uint32("sum", sum))
}

func (s LogSink) ShowRemote(src proto.Address, sum uint32) {
	s.Log.Info("received rolling sum", logging.Stringer("peer", src), logging.Uint32("sum", sum))
}
