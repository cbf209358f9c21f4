package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"gazecheck/internal/session"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var reportPath string
	var exportDir string

	cmd := &cobra.Command{
		Use:   "check <session>",
		Short: "Check one session log against its expected protocol",
		Long: "Check runs the full conformance and quality analysis for a single " +
			"session. The argument is either a session id (a directory under the " +
			"configured data_dir) or a path to a session directory.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			inputs, err := resolveSession(cfg.Paths.DataDir, args[0])
			if err != nil {
				return err
			}
			if reportPath != "" {
				inputs.ReportPath = reportPath
			} else {
				inputs.ReportPath = filepath.Join(cfg.Paths.OutputDir, inputs.SessionID+"_report.txt")
			}
			if exportDir != "" {
				inputs.ExportDir = exportDir
			}

			opts, err := sessionOptions(cfg, ctx.ensureLogger())
			if err != nil {
				return err
			}

			sess, err := session.New(inputs, opts)
			if err != nil {
				return err
			}
			outcome, err := sess.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session %s checked: %s, %s, %d/%d metrics passed\n",
				outcome.SessionID,
				plural(outcome.Warnings(), "warning"),
				plural(outcome.Infos(), "info finding"),
				outcome.MetricsPassed(), len(outcome.Measurements))
			fmt.Fprintf(out, "Report written to %s\n", inputs.ReportPath)
			if outcome.Warnings() > 0 || outcome.MetricsFailed() > 0 {
				return fmt.Errorf("session %s did not pass cleanly", outcome.SessionID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&reportPath, "report", "r", "", "Report file destination (default output_dir/<session>_report.txt)")
	cmd.Flags().StringVar(&exportDir, "export-dir", "", "Directory for per-element and per-trial TSV exports")
	return cmd
}

// resolveSession accepts a session id under dataDir or a direct directory
// path and returns the discovered inputs for it.
func resolveSession(dataDir, arg string) (session.Inputs, error) {
	dir := arg
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		dir = filepath.Join(dataDir, arg)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return session.Inputs{}, fmt.Errorf("session %q not found under %s", arg, dataDir)
	}
	if !info.IsDir() {
		return session.Inputs{}, fmt.Errorf("%s is not a directory", dir)
	}

	sessions, err := session.Discover(filepath.Dir(dir))
	if err != nil {
		return session.Inputs{}, err
	}
	wanted := filepath.Base(dir)
	for _, inputs := range sessions {
		if inputs.SessionID == wanted {
			return inputs, nil
		}
	}
	return session.Inputs{}, fmt.Errorf("no .asc log found in %s", dir)
}
