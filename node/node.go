// Package node runs the control loop of a counting node: it ticks the
// broadcast scheduler, listens for peers and acknowledges newcomers.
package node

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/ystepanoff/pulsecast/edge"
	"github.com/ystepanoff/pulsecast/internal/logging"
	"github.com/ystepanoff/pulsecast/peers"
	proto "github.com/ystepanoff/pulsecast/protocol"
	"github.com/ystepanoff/pulsecast/telemetry"
	"github.com/ystepanoff/pulsecast/transport"
	"github.com/ystepanoff/pulsecast/window"
)

// maxFramesPerStep bounds inbound work per iteration so a chatty channel
// cannot hold off a due tick.
const maxFramesPerStep = 16

type Config struct {
	TickInterval time.Duration
	WindowSize   int
	PeerCapacity int
	Overflow     peers.OverflowPolicy
	PollInterval time.Duration
}

// DefaultConfig returns the build-time parameters.
func DefaultConfig() Config {
	return Config{
		TickInterval: proto.TickInterval,
		WindowSize:   proto.WindowSize,
		PeerCapacity: proto.PeerCapacity,
		Overflow:     peers.DropNew,
		PollInterval: proto.PollInterval,
	}
}

type Option func(*Node)

func WithClock(c clock.Clock) Option { return func(n *Node) { n.clock = c } }

func WithLogger(l *logging.Logger) Option { return func(n *Node) { n.log = l } }

func WithSink(s Sink) Option { return func(n *Node) { n.sink = s } }

// Node owns all main-loop state. Only the edge counter is shared, with the
// interrupt handler, and it guards itself.
type Node struct {
	cfg     Config
	radio   transport.Radio
	counter *edge.Counter
	window  *window.Aggregator
	peers   *peers.Table
	sched   *Scheduler
	clock   clock.Clock
	log     *logging.Logger
	sink    Sink
	label   string
}

// New initialises the radio and builds the node. A radio that cannot be
// initialised is fatal: the returned error wraps proto.ErrTransportInit.
func New(radio transport.Radio, counter *edge.Counter, cfg Config, opts ...Option) (*Node, error) {
	if cfg.TickInterval <= 0 {
		return nil, fmt.Errorf("tick interval must be positive, got %v", cfg.TickInterval)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = proto.PollInterval
	}

	n := &Node{
		cfg:     cfg,
		radio:   radio,
		counter: counter,
		clock:   clock.New(),
		label:   radio.Address().String(),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.log == nil {
		n.log = logging.Nop()
	}
	n.log = n.log.Named("node").With(logging.Stringer("addr", radio.Address()))

	var err error
	if n.window, err = window.New(cfg.WindowSize); err != nil {
		return nil, err
	}
	if n.peers, err = peers.New(cfg.PeerCapacity, cfg.Overflow); err != nil {
		return nil, err
	}

	if err := radio.Initialise(); err != nil {
		if !errors.Is(err, proto.ErrTransportInit) {
			err = fmt.Errorf("%w: %v", proto.ErrTransportInit, err)
		}
		return nil, err
	}

	n.sched = NewScheduler(n.clock.Now(), cfg.TickInterval, counter, n.window, radio, n.log)
	n.sched.sink = n.sink

	n.log.Info("node started",
		logging.Duration("tick", cfg.TickInterval),
		logging.Int("window", cfg.WindowSize),
		logging.Int("peer_capacity", cfg.PeerCapacity),
		logging.Stringer("overflow", cfg.Overflow))
	return n, nil
}

func (n *Node) Scheduler() *Scheduler { return n.sched }

func (n *Node) Peers() *peers.Table { return n.peers }

func (n *Node) Window() *window.Aggregator { return n.window }

// Step performs one main-loop iteration: service pending inbound frames,
// then tick if a boundary has been reached. It never blocks.
func (n *Node) Step(now time.Time) {
	for i := 0; i < maxFramesPerStep; i++ {
		frame, ok := n.radio.TryReceive()
		if !ok {
			break
		}
		n.handleFrame(frame)
	}
	n.sched.Poll(now)
}

// Run loops until ctx is done and returns ctx.Err().
func (n *Node) Run(ctx context.Context) error {
	for {
		n.Step(n.clock.Now())

		timer := n.clock.Timer(n.cfg.PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			n.log.Info("node stopped", logging.Uint64("ticks", n.sched.Ticks()))
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (n *Node) handleFrame(frame proto.Frame) {
	switch {
	case frame.Destination.IsBroadcast():
		n.handleBroadcast(frame)
	case frame.Destination == n.radio.Address():
		n.handleUnicast(frame)
	default:
		telemetry.InboundFrames.WithLabelValues(n.label, "foreign").Inc()
	}
}

func (n *Node) handleBroadcast(frame proto.Frame) {
	sum, err := proto.DecodeRollingSum(frame.Payload)
	if err != nil {
		telemetry.InboundFrames.WithLabelValues(n.label, "malformed").Inc()
		n.log.Debug("ignoring malformed broadcast", logging.Stringer("peer", frame.Source), logging.Int("len", len(frame.Payload)))
		return
	}
	telemetry.InboundFrames.WithLabelValues(n.label, "broadcast").Inc()
	telemetry.RemoteSum.WithLabelValues(n.label, frame.Source.String()).Set(float64(sum))
	if n.sink != nil {
		n.sink.ShowRemote(frame.Source, sum)
	}

	if n.peers.Contains(frame.Source) {
		return
	}
	n.discover(frame.Source)
}

// discover registers a first-seen broadcaster and greets it. There is no
// handshake: the ack is best-effort and the peer stays registered either way.
func (n *Node) discover(src proto.Address) {
	res, err := n.peers.Register(src)
	telemetry.PeerRegistrations.WithLabelValues(n.label, res.String()).Inc()
	if err != nil {
		n.log.Warn("peer registration dropped", logging.Stringer("peer", src), logging.Error(err))
		return
	}
	if res == peers.Evicted {
		old := n.peers.LastEvicted()
		n.radio.RemovePeer(old)
		n.log.Info("peer evicted", logging.Stringer("peer", old))
	}
	n.log.Info("peer registered", logging.Stringer("peer", src), logging.Int("peers", n.peers.Len()))

	if err := n.radio.AddPeer(src); err != nil {
		n.log.Warn("transport peer registration failed", logging.Stringer("peer", src), logging.Error(err))
	}

	status, err := n.radio.Send(src, proto.AckPayload)
	telemetry.Sends.WithLabelValues(n.label, "ack", status.String()).Inc()
	if err != nil || status != transport.StatusSent {
		n.log.Warn("ack failed", logging.Stringer("peer", src), logging.Stringer("status", status), logging.Error(err))
		return
	}
	n.log.Debug("ack sent", logging.Stringer("peer", src))
}

func (n *Node) handleUnicast(frame proto.Frame) {
	switch {
	case bytes.Equal(frame.Payload, proto.AckPayload):
		telemetry.InboundFrames.WithLabelValues(n.label, "ack").Inc()
		n.log.Info("acknowledged by peer", logging.Stringer("peer", frame.Source))
	case proto.IsASCII(frame.Payload):
		telemetry.InboundFrames.WithLabelValues(n.label, "unicast").Inc()
		n.log.Debug("unicast message", logging.Stringer("peer", frame.Source), logging.ByteString("payload", frame.Payload))
	default:
		telemetry.InboundFrames.WithLabelValues(n.label, "malformed").Inc()
	}
}
