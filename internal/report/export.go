package report

import (
	"fmt"
	"io"
	"strconv"

	"gazecheck/internal/quality"
)

// ExportElementTimings writes the per-element timing breakdown as a
// tab-separated table for downstream analysis tools.
func ExportElementTimings(w io.Writer, summary quality.Summary) error {
	if _, err := fmt.Fprintln(w, "trial\tpractice\tstimulus\telement\tduration_ms\tcomplete"); err != nil {
		return err
	}
	for _, entry := range summary.PerElement {
		_, err := fmt.Fprintf(w, "%d\t%t\t%s\t%s\t%s\t%t\n",
			entry.Trial,
			entry.Practice,
			entry.Stimulus,
			entry.Label,
			strconv.FormatFloat(entry.DurationMS, 'f', -1, 64),
			entry.Complete)
		if err != nil {
			return err
		}
	}
	return nil
}

// ExportTrialTimings writes per-trial reading time totals as a
// tab-separated table.
func ExportTrialTimings(w io.Writer, summary quality.Summary) error {
	if _, err := fmt.Fprintln(w, "trial\tpractice\tstimulus\treading_ms"); err != nil {
		return err
	}

	type trialKey struct {
		number   int
		practice bool
	}
	totals := make(map[trialKey]float64)
	stimuli := make(map[trialKey]string)
	var order []trialKey
	for _, entry := range summary.PerElement {
		key := trialKey{number: entry.Trial, practice: entry.Practice}
		if _, seen := totals[key]; !seen {
			order = append(order, key)
			stimuli[key] = entry.Stimulus
		}
		totals[key] += entry.DurationMS
	}

	for _, key := range order {
		_, err := fmt.Fprintf(w, "%d\t%t\t%s\t%s\n",
			key.number,
			key.practice,
			stimuli[key],
			strconv.FormatFloat(totals[key], 'f', -1, 64))
		if err != nil {
			return err
		}
	}
	return nil
}
