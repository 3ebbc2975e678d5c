package edge

import (
	"time"

	"golang.org/x/time/rate"
)

// Debouncer decides whether an electrical edge observed at now should count.
type Debouncer interface {
	Allow(now time.Time) bool
}

type noDebounce struct{}

func (noDebounce) Allow(time.Time) bool { return true }

// DebounceNone counts every edge, bounces included.
func DebounceNone() Debouncer { return noDebounce{} }

type minInterval struct {
	limiter *rate.Limiter
}

// DebounceMinInterval counts at most one edge per interval. Edges arriving
// sooner after the last counted one are treated as contact bounce.
func DebounceMinInterval(interval time.Duration) Debouncer {
	if interval <= 0 {
		return noDebounce{}
	}
	return &minInterval{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (m *minInterval) Allow(now time.Time) bool { return m.limiter.AllowN(now, 1) }
