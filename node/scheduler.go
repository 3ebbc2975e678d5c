package node

import (
	"time"

	"github.com/ystepanoff/pulsecast/edge"
	"github.com/ystepanoff/pulsecast/internal/logging"
	proto "github.com/ystepanoff/pulsecast/protocol"
	"github.com/ystepanoff/pulsecast/telemetry"
	"github.com/ystepanoff/pulsecast/transport"
	"github.com/ystepanoff/pulsecast/window"
)

// State of the broadcast scheduler.
type State uint8

const (
	Idle State = iota
	Transmitting
)

func (s State) String() string {
	if s == Transmitting {
		return "transmitting"
	}
	return "idle"
}

// Scheduler drives the tick cadence. Boundaries sit on the grid
// start + k*interval; a tick never moves the grid, and boundaries the loop
// overran are dropped instead of replayed.
type Scheduler struct {
	counter  *edge.Counter
	window   *window.Aggregator
	radio    transport.Radio
	sink     Sink
	log      *logging.Logger
	interval time.Duration

	next    time.Time
	state   State
	ticks   uint64
	skipped uint64
	lastSum uint32

	drained   telemetry.Counter
	sumGauge  telemetry.Gauge
	sent      telemetry.Counter
	failed    telemetry.Counter
	skipCount telemetry.Counter
}

// NewScheduler places the first boundary at start.
func NewScheduler(start time.Time, interval time.Duration, counter *edge.Counter, win *window.Aggregator, radio transport.Radio, log *logging.Logger) *Scheduler {
	if log == nil {
		log = logging.Nop()
	}
	label := radio.Address().String()
	return &Scheduler{
		counter:   counter,
		window:    win,
		radio:     radio,
		log:       log,
		interval:  interval,
		next:      start,
		drained:   telemetry.EdgesDrained.WithLabelValues(label),
		sumGauge:  telemetry.RollingSum.WithLabelValues(label),
		sent:      telemetry.Sends.WithLabelValues(label, "broadcast", transport.StatusSent.String()),
		failed:    telemetry.Sends.WithLabelValues(label, "broadcast", transport.StatusFailed.String()),
		skipCount: telemetry.SkippedTicks.WithLabelValues(label),
	}
}

func (s *Scheduler) Due(now time.Time) bool { return !now.Before(s.next) }

// Next is the boundary the scheduler is waiting for.
func (s *Scheduler) Next() time.Time { return s.next }

func (s *Scheduler) State() State { return s.state }

func (s *Scheduler) Ticks() uint64 { return s.ticks }

// Skipped counts boundaries dropped after overruns.
func (s *Scheduler) Skipped() uint64 { return s.skipped }

func (s *Scheduler) LastSum() uint32 { return s.lastSum }

// Poll runs one tick if a boundary has been reached and reports whether it did.
func (s *Scheduler) Poll(now time.Time) bool {
	if !s.Due(now) {
		return false
	}

	s.state = Transmitting
	drained := s.counter.Drain()
	s.window.PushTick(drained)
	sum := s.window.RollingSum()
	status, err := s.radio.Send(proto.Broadcast, proto.EncodeRollingSum(sum))
	s.state = Idle

	s.ticks++
	s.lastSum = sum
	s.drained.Add(float64(drained))
	s.sumGauge.Set(float64(sum))
	if s.sink != nil {
		s.sink.ShowLocal(sum)
	}

	if err != nil || status != transport.StatusSent {
		s.failed.Inc()
		s.log.Warn("broadcast failed",
			logging.Uint64("tick", s.ticks),
			logging.Uint32("rolling_sum", sum),
			logging.Stringer("status", status),
			logging.Error(err))
	} else {
		s.sent.Inc()
		s.log.Debug("broadcast sent",
			logging.Uint64("tick", s.ticks),
			logging.Uint32("edges", drained),
			logging.Uint32("rolling_sum", sum))
	}

	s.advance(now)
	return true
}

func (s *Scheduler) advance(now time.Time) {
	s.next = s.next.Add(s.interval)
	if s.next.After(now) {
		return
	}
	missed := now.Sub(s.next)/s.interval + 1
	s.next = s.next.Add(missed * s.interval)
	s.skipped += uint64(missed)
	s.skipCount.Add(float64(missed))
	s.log.Warn("tick overrun, skipping boundaries",
		logging.Int64("skipped", int64(missed)),
		logging.Time("next", s.next))
}
