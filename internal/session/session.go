package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"gazecheck/internal/asclog"
	"gazecheck/internal/conformance"
	"gazecheck/internal/logging"
	"gazecheck/internal/protocol"
	"gazecheck/internal/quality"
	"gazecheck/internal/report"
	"gazecheck/internal/stimulus"
	"gazecheck/internal/tracker"
)

// Inputs names every file one session check consumes and produces.
type Inputs struct {
	SessionID    string
	LogPath      string
	LedgerPath   string
	MetadataPath string
	ReportPath   string
	// ExportDir receives per-element and per-trial TSV exports when set.
	ExportDir string
}

// Options carries the shared, read-only collaborators a session needs.
type Options struct {
	Catalog    *stimulus.Catalog
	Tracker    tracker.Capabilities
	Policy     conformance.DuplicatePolicy
	Recal      quality.RecalibrationPolicy
	Thresholds quality.Thresholds
	Logger     *slog.Logger
}

// Outcome is everything one completed check produced.
type Outcome struct {
	RunID        string
	SessionID    string
	ReportPath   string
	StartedAt    time.Time
	FinishedAt   time.Time
	Result       *conformance.Result
	Measurements []quality.Measurement
	Summary      quality.Summary
}

// Warnings counts warning findings across the whole outcome.
func (o *Outcome) Warnings() int {
	return o.Result.Warnings()
}

// Infos counts informational findings across the whole outcome.
func (o *Outcome) Infos() int {
	return len(o.Result.Findings) - o.Result.Warnings()
}

// MetricsPassed counts passing measurements.
func (o *Outcome) MetricsPassed() int {
	count := 0
	for _, m := range o.Measurements {
		if m.Passed {
			count++
		}
	}
	return count
}

// MetricsFailed counts failing measurements.
func (o *Outcome) MetricsFailed() int {
	return len(o.Measurements) - o.MetricsPassed()
}

// Session checks one recorded session against its expected protocol.
// Construct with New; a Session is single-use but safe to build in
// parallel with others, since all shared state is read-only.
type Session struct {
	inputs Inputs
	opts   Options
	runID  string
	logger *slog.Logger
}

// New validates the inputs and prepares a session check. The tracker
// capabilities and duplicate policy are resolved once here, never
// re-checked during the run.
func New(inputs Inputs, opts Options) (*Session, error) {
	if inputs.SessionID == "" {
		return nil, Wrap(ErrConfiguration, "session", "new", "session id is empty", nil)
	}
	if inputs.LogPath == "" {
		return nil, Wrap(ErrMissingInput, "session", "new", "log path is empty", nil)
	}
	if inputs.LedgerPath == "" {
		return nil, Wrap(ErrMissingInput, "session", "new", "ledger path is empty", nil)
	}
	if opts.Catalog == nil {
		return nil, Wrap(ErrConfiguration, "session", "new", "stimulus catalog is required", nil)
	}
	if opts.Tracker.MessageMarker == "" {
		caps, err := tracker.Resolve("")
		if err != nil {
			return nil, Wrap(ErrConfiguration, "session", "new", "resolve tracker", err)
		}
		opts.Tracker = caps
	}
	if opts.Policy == "" {
		opts.Policy = conformance.PolicyFirst
	}
	if opts.Recal == (quality.RecalibrationPolicy{}) {
		opts.Recal = quality.DefaultRecalibrationPolicy()
	}
	if opts.Thresholds == (quality.Thresholds{}) {
		opts.Thresholds = quality.DefaultThresholds()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	runID := uuid.NewString()
	logger := logging.NewComponentLogger(opts.Logger, "session").With(
		logging.String(logging.FieldSession, inputs.SessionID),
		logging.String(logging.FieldRunID, runID),
	)

	return &Session{inputs: inputs, opts: opts, runID: runID, logger: logger}, nil
}

// RunID returns the unique identifier assigned to this check.
func (s *Session) RunID() string {
	return s.runID
}

// Run performs the full check: read log, build template, match, evaluate
// quality, and emit the report. The report file is truncated at the start
// of the run; later phases append to it.
func (s *Session) Run(ctx context.Context) (*Outcome, error) {
	started := time.Now().UTC()
	s.logger.Info("checking session", logging.String("log", s.inputs.LogPath))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	messages, err := asclog.ReadFile(s.inputs.LogPath, asclog.Options{Marker: s.opts.Tracker.MessageMarker})
	if err != nil {
		return nil, Wrap(ErrMissingInput, "session", "read log", "", err)
	}

	order, err := stimulus.LoadLedger(s.inputs.LedgerPath)
	if err != nil {
		return nil, Wrap(ErrMissingInput, "session", "read ledger", "", err)
	}

	template, err := protocol.NewBuilder(s.opts.Catalog).Build(order)
	if err != nil {
		return nil, Wrap(ErrConfiguration, "session", "build template", "", err)
	}

	result := conformance.NewMatcher(messages, template,
		conformance.WithDuplicatePolicy(s.opts.Policy),
		conformance.WithLogger(s.logger),
	).Run()

	summary := quality.Summarize(result.Timings, messages[0].Timestamp)

	var measurements []quality.Measurement
	measurements = append(measurements,
		quality.CheckTrialCounts(template.PracticeTrials(), template.ExperimentTrials(), s.opts.Thresholds)...)

	if s.inputs.MetadataPath != "" {
		md, err := tracker.LoadMetadata(s.inputs.MetadataPath)
		if err != nil {
			return nil, Wrap(ErrMissingInput, "session", "read metadata", "", err)
		}
		if s.opts.Tracker.ProvidesValidationScores {
			measurements = append(measurements, quality.CheckMetadata(md, s.opts.Thresholds)...)
			result.Findings = append(result.Findings, quality.CheckRecalibrations(md, s.opts.Recal)...)
		}
	}

	outcome := &Outcome{
		RunID:        s.runID,
		SessionID:    s.inputs.SessionID,
		ReportPath:   s.inputs.ReportPath,
		StartedAt:    started,
		Result:       result,
		Measurements: measurements,
		Summary:      summary,
	}

	if s.inputs.ReportPath != "" {
		if err := s.writeReport(outcome); err != nil {
			return nil, err
		}
	}
	if s.inputs.ExportDir != "" {
		if err := s.writeExports(summary); err != nil {
			return nil, err
		}
	}

	outcome.FinishedAt = time.Now().UTC()
	s.logger.Info("session checked",
		logging.Int("warnings", outcome.Warnings()),
		logging.Int("metrics_failed", outcome.MetricsFailed()),
		logging.Duration("elapsed", outcome.FinishedAt.Sub(started)))
	return outcome, nil
}

func (s *Session) writeReport(outcome *Outcome) error {
	file, err := report.OpenFile(s.inputs.ReportPath, true)
	if err != nil {
		return Wrap(nil, "session", "open report", "", err)
	}
	defer file.Close()

	emitter := report.NewEmitter(file)
	if err := emitter.Line("Session %s (run %s)", outcome.SessionID, outcome.RunID); err != nil {
		return Wrap(nil, "session", "write report", "", err)
	}

	steps := []func() error{
		func() error { return emitter.Section("Quality metrics") },
		func() error { return emitter.Measurements(outcome.Measurements) },
		func() error { return emitter.Section("Findings") },
		func() error { return emitter.Findings(outcome.Result.Findings) },
		func() error { return emitter.Section("Timing") },
		func() error { return emitter.TimingSummary(outcome.Summary) },
		func() error { return emitter.Line("%s", report.PerTrialTable(outcome.Summary)) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return Wrap(nil, "session", "write report", "", err)
		}
	}
	return nil
}

func (s *Session) writeExports(summary quality.Summary) error {
	if err := os.MkdirAll(s.inputs.ExportDir, 0o755); err != nil {
		return Wrap(nil, "session", "create export dir", "", err)
	}

	exports := []struct {
		name  string
		write func(f *os.File) error
	}{
		{"element_timings.tsv", func(f *os.File) error { return report.ExportElementTimings(f, summary) }},
		{"trial_timings.tsv", func(f *os.File) error { return report.ExportTrialTimings(f, summary) }},
	}
	for _, export := range exports {
		path := filepath.Join(s.inputs.ExportDir, fmt.Sprintf("%s_%s", s.inputs.SessionID, export.name))
		f, err := os.Create(path)
		if err != nil {
			return Wrap(nil, "session", "write export", export.name, err)
		}
		if err := export.write(f); err != nil {
			_ = f.Close()
			return Wrap(nil, "session", "write export", export.name, err)
		}
		if err := f.Close(); err != nil {
			return Wrap(nil, "session", "write export", export.name, err)
		}
	}
	return nil
}
