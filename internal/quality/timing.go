package quality

import (
	"fmt"
	"math"

	"gazecheck/internal/conformance"
)

// ElementDuration is one page or question duration in the per-element
// timing breakdown.
type ElementDuration struct {
	Label      string
	Trial      int
	Practice   bool
	Stimulus   string
	DurationMS float64
	Complete   bool
}

// Summary aggregates element timings into session-level durations.
// ReadingMS sums the durations of complete page and question elements;
// SetupMS sums the gaps between consecutive elements, with the first gap
// measured from the reference timestamp; TotalMS is their sum.
type Summary struct {
	ReadingMS  float64
	SetupMS    float64
	TotalMS    float64
	PerElement []ElementDuration
}

// Summarize computes the timing summary over the matcher's element
// timings. Incomplete elements contribute zero reading time and do not
// advance the gap reference. referenceMS anchors the first setup gap,
// typically the timestamp of the first logged message.
func Summarize(timings []conformance.ElementTiming, referenceMS float64) Summary {
	summary := Summary{PerElement: make([]ElementDuration, 0, len(timings))}

	previousStop := referenceMS
	for _, timing := range timings {
		el := timing.Element
		entry := ElementDuration{
			Label:    el.Label(),
			Trial:    el.Trial,
			Practice: el.Practice,
			Stimulus: el.StimulusName,
			Complete: timing.Complete,
		}
		if timing.Complete {
			entry.DurationMS = timing.StopTS - timing.StartTS
			summary.ReadingMS += entry.DurationMS
			summary.SetupMS += timing.StartTS - previousStop
			previousStop = timing.StopTS
		}
		summary.PerElement = append(summary.PerElement, entry)
	}

	summary.TotalMS = summary.ReadingMS + summary.SetupMS
	return summary
}

// FormatClock renders a millisecond duration as a zero-padded HH:MM:SS
// clock. Sub-second remainders are truncated, not rounded, and hours wrap
// at 24.
func FormatClock(millis float64) string {
	seconds := int64(math.Floor(millis / 1000))
	if seconds < 0 {
		seconds = 0
	}
	h := (seconds / 3600) % 24
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
