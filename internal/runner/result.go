package runner

import (
	"time"

	"github.com/pagewatch/pagewatch/internal/detect"
	"github.com/pagewatch/pagewatch/internal/notify"
)

// Result captures one check run. Errors are stored in Err/ErrStage
// rather than returned, so the caller always has something to display.
type Result struct {
	URL      string
	Selector string

	// Verdict is valid once the run got past extraction.
	Verdict detect.Verdict
	Changed bool

	// Outcomes holds one entry per attempted (channel, recipient)
	// delivery. Empty when nothing changed or the run faulted first.
	Outcomes []notify.Outcome

	Duration time.Duration
	Err      error
	ErrStage string // "fetch", "extract", "template"
}

// Delivered counts successful deliveries.
func (r Result) Delivered() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Success {
			n++
		}
	}
	return n
}

// AllDeliveriesFailed reports whether deliveries were attempted and
// every one of them failed. Used by the strict-delivery exit policy.
func (r Result) AllDeliveriesFailed() bool {
	return len(r.Outcomes) > 0 && r.Delivered() == 0
}
