package report

import (
	"fmt"
	"io"
	"os"

	"gazecheck/internal/conformance"
	"gazecheck/internal/quality"
)

const (
	passMark = "✓"
	failMark = "✗"
)

// Emitter writes report lines to a destination. Lines are written in the
// order produced; the emitter keeps no state beyond the writer.
type Emitter struct {
	w io.Writer
}

// NewEmitter wraps a writer.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// OpenFile opens (or creates) a report file. Reports accumulate across
// check phases, so the file opens in append mode unless truncate is set;
// callers wanting a clean report truncate once at session start.
func OpenFile(path string, truncate bool) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if truncate {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open report file: %w", err)
	}
	return f, nil
}

// Section writes a titled separator between report phases.
func (e *Emitter) Section(title string) error {
	_, err := fmt.Fprintf(e.w, "\n--- %s ---\n", title)
	return err
}

// Line writes one free-form report line.
func (e *Emitter) Line(format string, args ...any) error {
	_, err := fmt.Fprintf(e.w, format+"\n", args...)
	return err
}

// Measurement writes one metric line: a pass/fail mark, the metric name,
// and the measured values.
func (e *Emitter) Measurement(m quality.Measurement) error {
	mark := failMark
	if m.Passed {
		mark = passMark
	}
	_, err := fmt.Fprintf(e.w, "%s %s: %s\n", mark, m.Name, m.RenderValues())
	return err
}

// Measurements writes a batch of metric lines in order.
func (e *Emitter) Measurements(measurements []quality.Measurement) error {
	for _, m := range measurements {
		if err := e.Measurement(m); err != nil {
			return err
		}
	}
	return nil
}

// Finding writes one finding line, with its log position when it has one.
func (e *Emitter) Finding(f conformance.Finding) error {
	var err error
	if f.Index >= 0 {
		_, err = fmt.Fprintf(e.w, "[%s] %s: %s (message %d, ts %.0f)\n",
			f.Severity, f.Subject, f.Message, f.Index, f.Timestamp)
	} else {
		_, err = fmt.Fprintf(e.w, "[%s] %s: %s\n", f.Severity, f.Subject, f.Message)
	}
	return err
}

// Findings writes a batch of finding lines in order.
func (e *Emitter) Findings(findings []conformance.Finding) error {
	for _, f := range findings {
		if err := e.Finding(f); err != nil {
			return err
		}
	}
	return nil
}

// TimingSummary writes the session duration block as HH:MM:SS clocks.
func (e *Emitter) TimingSummary(summary quality.Summary) error {
	lines := []struct {
		label  string
		millis float64
	}{
		{"Total reading time", summary.ReadingMS},
		{"Total setup/break time", summary.SetupMS},
		{"Total session time", summary.TotalMS},
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(e.w, "%s: %s\n", line.label, quality.FormatClock(line.millis)); err != nil {
			return err
		}
	}
	return nil
}
