package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gazecheck/internal/logging"
	"gazecheck/internal/store"
)

// BatchOptions configures a batch run over many sessions.
type BatchOptions struct {
	// Workers caps concurrent session checks; values below one mean one.
	Workers int
	// OutputDir receives one report file per session.
	OutputDir string
	// ExportDir, when set, receives per-session TSV exports.
	ExportDir string
	// Store, when set, records every run. A failed session still records a
	// row carrying its error message.
	Store  *store.Store
	Logger *slog.Logger
}

// BatchResult pairs each session with what its check produced. Exactly one
// of Outcome and Err is set.
type BatchResult struct {
	Inputs  Inputs
	Outcome *Outcome
	Err     error
}

// Failed reports whether the session could not be checked at all.
func (r BatchResult) Failed() bool {
	return r.Err != nil
}

// RunBatch checks every session concurrently with a bounded worker pool.
// One broken session never stops the batch: its error lands in the result
// slice and the remaining sessions keep going. Results come back in input
// order. The returned error covers batch-level failures only.
func RunBatch(ctx context.Context, sessions []Inputs, shared Options, batch BatchOptions) ([]BatchResult, error) {
	if len(sessions) == 0 {
		return nil, nil
	}
	workers := batch.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(sessions) {
		workers = len(sessions)
	}
	logger := batch.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "batch")

	if batch.OutputDir != "" {
		if err := os.MkdirAll(batch.OutputDir, 0o755); err != nil {
			return nil, Wrap(ErrConfiguration, "batch", "create output dir", "", err)
		}
	}

	logger.Info("starting batch",
		logging.Int("sessions", len(sessions)),
		logging.Int("workers", workers))

	results := make([]BatchResult, len(sessions))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, inputs := range sessions {
		if batch.OutputDir != "" && inputs.ReportPath == "" {
			inputs.ReportPath = filepath.Join(batch.OutputDir, inputs.SessionID+"_report.txt")
		}
		if batch.ExportDir != "" && inputs.ExportDir == "" {
			inputs.ExportDir = batch.ExportDir
		}

		wg.Add(1)
		go func(idx int, inputs Inputs) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			outcome, err := checkOne(ctx, inputs, shared, batch, logger)
			results[idx] = BatchResult{Inputs: inputs, Outcome: outcome, Err: err}
		}(i, inputs)
	}
	wg.Wait()

	failed := 0
	for _, result := range results {
		if result.Failed() {
			failed++
		}
	}
	logger.Info("batch finished",
		logging.Int("checked", len(results)-failed),
		logging.Int("failed", failed))
	return results, ctx.Err()
}

func checkOne(ctx context.Context, inputs Inputs, shared Options, batch BatchOptions, logger *slog.Logger) (*Outcome, error) {
	started := time.Now().UTC()

	sess, err := New(inputs, shared)
	if err == nil {
		var outcome *Outcome
		outcome, err = sess.Run(ctx)
		if err == nil {
			if batch.Store != nil {
				if recordErr := recordOutcome(ctx, batch.Store, inputs, outcome); recordErr != nil {
					logger.Warn("record run",
						logging.String(logging.FieldSession, inputs.SessionID),
						logging.Error(recordErr))
				}
			}
			return outcome, nil
		}
	}

	logger.Warn("session check failed",
		logging.String(logging.FieldSession, inputs.SessionID),
		logging.Error(err))
	if batch.Store != nil {
		run := &store.Run{
			RunID:        fmt.Sprintf("failed-%s-%d", inputs.SessionID, started.UnixNano()),
			SessionID:    inputs.SessionID,
			LogPath:      inputs.LogPath,
			StartedAt:    started,
			FinishedAt:   time.Now().UTC(),
			ErrorMessage: err.Error(),
		}
		if _, recordErr := batch.Store.RecordRun(ctx, run, nil); recordErr != nil {
			logger.Warn("record failed run",
				logging.String(logging.FieldSession, inputs.SessionID),
				logging.Error(recordErr))
		}
	}
	return nil, err
}

func recordOutcome(ctx context.Context, st *store.Store, inputs Inputs, outcome *Outcome) error {
	run := &store.Run{
		RunID:         outcome.RunID,
		SessionID:     outcome.SessionID,
		LogPath:       inputs.LogPath,
		ReportPath:    outcome.ReportPath,
		StartedAt:     outcome.StartedAt,
		FinishedAt:    outcome.FinishedAt,
		Warnings:      outcome.Warnings(),
		Infos:         outcome.Infos(),
		MetricsPassed: outcome.MetricsPassed(),
		MetricsFailed: outcome.MetricsFailed(),
		ReadingMS:     outcome.Summary.ReadingMS,
		SetupMS:       outcome.Summary.SetupMS,
		TotalMS:       outcome.Summary.TotalMS,
	}

	timings := make([]store.TrialTiming, 0, len(outcome.Summary.PerElement))
	for _, element := range outcome.Summary.PerElement {
		timings = append(timings, store.TrialTiming{
			Trial:      element.Trial,
			Practice:   element.Practice,
			Stimulus:   element.Stimulus,
			Element:    element.Label,
			DurationMS: element.DurationMS,
			Complete:   element.Complete,
		})
	}
	_, err := st.RecordRun(ctx, run, timings)
	return err
}
