package driven

import "time"

// HighlightMetrics records highlight activity. Optional: services accept nil.
type HighlightMetrics interface {
	// ObservePass records one keyword pass and the markers it inserted.
	ObservePass(keyword string, markers int, err error)

	// ObserveApply records a complete apply-all run.
	ObserveApply(cleared, total int, duration time.Duration)
}
