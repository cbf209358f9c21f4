package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"gazecheck/internal/report"
	"gazecheck/internal/session"
	"gazecheck/internal/store"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var workers int
	var exportDir string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Check every session found under the data directory",
		Long: "Batch discovers session directories under data_dir, checks them " +
			"concurrently, writes one report per session into output_dir, and " +
			"records every run in the results database. Only one batch may run " +
			"at a time per log directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			lock := flock.New(filepath.Join(cfg.Paths.LogDir, "gazecheck.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire batch lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another batch is already running (lock %s)", lock.Path())
			}
			defer func() { _ = lock.Unlock() }()

			sessions, err := session.Discover(cfg.Paths.DataDir)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No sessions found under %s\n", cfg.Paths.DataDir)
				return nil
			}

			opts, err := sessionOptions(cfg, ctx.ensureLogger())
			if err != nil {
				return err
			}

			var st *store.Store
			if cfg.Paths.ResultsDB != "" {
				st, err = store.Open(cfg.Paths.ResultsDB)
				if err != nil {
					return err
				}
				defer st.Close()
			}

			if workers <= 0 {
				workers = cfg.Batch.Workers
			}
			results, err := session.RunBatch(cmd.Context(), sessions, opts, session.BatchOptions{
				Workers:   workers,
				OutputDir: cfg.Paths.OutputDir,
				ExportDir: exportDir,
				Store:     st,
				Logger:    opts.Logger,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(results))
			failed := 0
			for _, result := range results {
				row := []string{result.Inputs.SessionID}
				if result.Failed() {
					failed++
					rows = append(rows, append(row, "error", "", "", result.Err.Error()))
					continue
				}
				outcome := result.Outcome
				verdict := "pass"
				if outcome.Warnings() > 0 || outcome.MetricsFailed() > 0 {
					verdict = "review"
				}
				rows = append(rows, append(row,
					verdict,
					strconv.Itoa(outcome.Warnings()),
					fmt.Sprintf("%d/%d", outcome.MetricsPassed(), len(outcome.Measurements)),
					outcome.ReportPath,
				))
			}
			fmt.Fprintln(out, report.RenderTable(
				[]string{"Session", "Result", "Warnings", "Metrics", "Report"},
				rows,
				[]report.ColumnAlignment{report.AlignLeft, report.AlignLeft, report.AlignRight, report.AlignRight, report.AlignLeft},
			))

			if failed > 0 {
				return fmt.Errorf("%s could not be checked", plural(failed, "session"))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent session checks (default from config)")
	cmd.Flags().StringVar(&exportDir, "export-dir", "", "Directory for per-session TSV exports")
	return cmd
}
