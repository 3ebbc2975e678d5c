package edge

import "time"

// Handler is the capability handed to the pin interrupt registration: it can
// record edges into one Counter and nothing else.
type Handler struct {
	counter   *Counter
	debouncer Debouncer
}

func NewHandler(counter *Counter, debouncer Debouncer) *Handler {
	if debouncer == nil {
		debouncer = DebounceNone()
	}
	return &Handler{counter: counter, debouncer: debouncer}
}

// OnFallingEdge is invoked for every falling transition of the button pin.
func (h *Handler) OnFallingEdge(now time.Time) {
	if h.debouncer.Allow(now) {
		h.counter.RecordEdge()
	}
}
