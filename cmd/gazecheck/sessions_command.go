package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"gazecheck/internal/quality"
	"gazecheck/internal/report"
	"gazecheck/internal/store"
)

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect recorded check runs",
	}

	sessionsCmd.AddCommand(newSessionsListCommand(ctx))
	sessionsCmd.AddCommand(newSessionsShowCommand(ctx))
	return sessionsCmd
}

func newSessionsListCommand(ctx *commandContext) *cobra.Command {
	var sessionID string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openResultsStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context(), sessionID, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No recorded runs")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				verdict := "pass"
				switch {
				case run.ErrorMessage != "":
					verdict = "error"
				case !run.Passed():
					verdict = "review"
				}
				rows = append(rows, []string{
					run.SessionID,
					run.RunID,
					run.FinishedAt.Local().Format(time.DateTime),
					verdict,
					strconv.Itoa(run.Warnings),
					fmt.Sprintf("%d/%d", run.MetricsPassed, run.MetricsPassed+run.MetricsFailed),
					quality.FormatClock(run.TotalMS),
				})
			}
			fmt.Fprintln(out, report.RenderTable(
				[]string{"Session", "Run", "Finished", "Result", "Warnings", "Metrics", "Duration"},
				rows,
				[]report.ColumnAlignment{report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignRight, report.AlignRight, report.AlignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "Restrict to one session id")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 for all)")
	return cmd
}

func newSessionsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run with its per-element timings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openResultsStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("run %s not found", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session:  %s\n", run.SessionID)
			fmt.Fprintf(out, "Run:      %s\n", run.RunID)
			fmt.Fprintf(out, "Finished: %s\n", run.FinishedAt.Local().Format(time.DateTime))
			if run.ErrorMessage != "" {
				fmt.Fprintf(out, "Error:    %s\n", run.ErrorMessage)
				return nil
			}
			fmt.Fprintf(out, "Findings: %s, %s\n",
				plural(run.Warnings, "warning"), plural(run.Infos, "info"))
			fmt.Fprintf(out, "Metrics:  %d passed, %d failed\n", run.MetricsPassed, run.MetricsFailed)
			fmt.Fprintf(out, "Reading:  %s\n", quality.FormatClock(run.ReadingMS))
			fmt.Fprintf(out, "Setup:    %s\n", quality.FormatClock(run.SetupMS))
			fmt.Fprintf(out, "Total:    %s\n", quality.FormatClock(run.TotalMS))
			if run.ReportPath != "" {
				fmt.Fprintf(out, "Report:   %s\n", run.ReportPath)
			}

			timings, err := st.TrialTimings(cmd.Context(), run.ID)
			if err != nil {
				return err
			}
			if len(timings) == 0 {
				return nil
			}
			rows := make([][]string, 0, len(timings))
			for _, timing := range timings {
				trial := strconv.Itoa(timing.Trial)
				if timing.Practice {
					trial = "P" + trial
				}
				duration := "incomplete"
				if timing.Complete {
					duration = quality.FormatClock(timing.DurationMS)
				}
				rows = append(rows, []string{trial, timing.Stimulus, timing.Element, duration})
			}
			fmt.Fprintln(out, report.RenderTable(
				[]string{"Trial", "Stimulus", "Element", "Duration"},
				rows,
				[]report.ColumnAlignment{report.AlignRight, report.AlignLeft, report.AlignLeft, report.AlignRight},
			))
			return nil
		},
	}
}

func openResultsStore(ctx *commandContext) (*store.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Paths.ResultsDB == "" {
		return nil, fmt.Errorf("no results_db configured")
	}
	return store.Open(cfg.Paths.ResultsDB)
}
