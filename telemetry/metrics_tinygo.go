//go:build tinygo || baremetal

package telemetry

// On the microcontroller there is nobody to scrape metrics; the collectors
// keep their names so node code is identical on both builds.

type Counter interface {
	Inc()
	Add(float64)
}

type Gauge interface {
	Set(float64)
}

type discard struct{}

func (discard) Inc()        {}
func (discard) Add(float64) {}
func (discard) Set(float64) {}

type counterVec struct{}

func (counterVec) WithLabelValues(...string) Counter { return discard{} }

type gaugeVec struct{}

func (gaugeVec) WithLabelValues(...string) Gauge { return discard{} }

var (
	EdgesDrained      counterVec
	RollingSum        gaugeVec
	RemoteSum         gaugeVec
	Sends             counterVec
	SkippedTicks      counterVec
	PeerRegistrations counterVec
	InboundFrames     counterVec
)
