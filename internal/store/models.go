package store

import "time"

// Run is one completed check of one session.
type Run struct {
	ID         int64
	RunID      string
	SessionID  string
	LogPath    string
	ReportPath string
	StartedAt  time.Time
	FinishedAt time.Time
	// Warnings and Infos count the findings the run produced.
	Warnings int
	Infos    int
	// MetricsPassed and MetricsFailed count the evaluated quality metrics.
	MetricsPassed int
	MetricsFailed int
	ReadingMS     float64
	SetupMS       float64
	TotalMS       float64
	// ErrorMessage is set when the session failed before producing a report.
	ErrorMessage string
}

// Passed reports whether the run was fully clean: no warnings and no
// failed metrics.
func (r Run) Passed() bool {
	return r.ErrorMessage == "" && r.Warnings == 0 && r.MetricsFailed == 0
}

// TrialTiming is one element's measured duration attached to a run.
type TrialTiming struct {
	Trial      int
	Practice   bool
	Stimulus   string
	Element    string
	DurationMS float64
	Complete   bool
}
