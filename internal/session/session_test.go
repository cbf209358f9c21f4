package session_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gazecheck/internal/conformance"
	"gazecheck/internal/protocol"
	"gazecheck/internal/quality"
	"gazecheck/internal/session"
	"gazecheck/internal/stimulus"
	"gazecheck/internal/testsupport"
)

// testThresholds matches the small fixture catalog: two practice and two
// experiment stimuli rather than the stock ten-trial session.
func testThresholds() quality.Thresholds {
	th := quality.DefaultThresholds()
	th.ExperimentTrials = quality.Scalar{Value: quality.Number(2)}
	return th
}

func loadTestCatalog(t *testing.T) *stimulus.Catalog {
	t.Helper()
	catalog, err := stimulus.ReadCatalog(strings.NewReader(testsupport.CatalogTSV))
	if err != nil {
		t.Fatalf("read catalog: %v", err)
	}
	return catalog
}

// writeSession lays out one session directory with a complete log, ledger,
// and metadata, and returns its inputs.
func writeSession(t *testing.T, dir, sessionID string) session.Inputs {
	t.Helper()
	catalog := loadTestCatalog(t)
	template, err := protocol.NewBuilder(catalog).Build([]int{13, 7, 5, 4})
	if err != nil {
		t.Fatalf("build template: %v", err)
	}

	sessionDir := filepath.Join(dir, sessionID)
	logPath := testsupport.WriteFile(t, sessionDir, "session.asc",
		testsupport.CompleteSession(template).ASCText())
	ledgerPath := testsupport.WriteFile(t, sessionDir, "completed_stimuli.csv",
		testsupport.LedgerCSV(13, 7, 5, 4))
	metadataPath := testsupport.WriteFile(t, sessionDir, "metadata.json",
		testsupport.MetadataJSON())

	return session.Inputs{
		SessionID:    sessionID,
		LogPath:      logPath,
		LedgerPath:   ledgerPath,
		MetadataPath: metadataPath,
	}
}

func TestRunCompleteSession(t *testing.T) {
	dir := t.TempDir()
	inputs := writeSession(t, dir, "ET_01")
	inputs.ReportPath = filepath.Join(dir, "ET_01_report.txt")
	inputs.ExportDir = filepath.Join(dir, "exports")

	sess, err := session.New(inputs, session.Options{
		Catalog:    loadTestCatalog(t),
		Thresholds: testThresholds(),
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	outcome, err := sess.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome.Warnings() != 0 {
		t.Fatalf("complete session produced %d warnings: %+v",
			outcome.Warnings(), outcome.Result.Findings)
	}
	if outcome.MetricsFailed() != 0 {
		for _, m := range outcome.Measurements {
			if !m.Passed {
				t.Errorf("metric failed: %s = %s", m.Name, m.RenderValues())
			}
		}
		t.Fatal("clean metadata should pass every metric")
	}
	if outcome.Summary.ReadingMS <= 0 {
		t.Fatalf("expected positive reading time, got %f", outcome.Summary.ReadingMS)
	}

	report, err := os.ReadFile(inputs.ReportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	for _, want := range []string{
		"--- Quality metrics ---",
		"✓ Sampling rate: 1000",
		"Total reading time:",
		"Lit_Solaris",
	} {
		if !strings.Contains(string(report), want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Contains(string(report), "✗") {
		t.Error("clean report should have no failing metrics")
	}

	for _, name := range []string{"ET_01_element_timings.tsv", "ET_01_trial_timings.tsv"} {
		if _, err := os.Stat(filepath.Join(inputs.ExportDir, name)); err != nil {
			t.Errorf("missing export %s: %v", name, err)
		}
	}
}

func TestRunWithoutMetadataSkipsMetadataChecks(t *testing.T) {
	dir := t.TempDir()
	inputs := writeSession(t, dir, "ET_02")
	inputs.MetadataPath = ""

	sess, err := session.New(inputs, session.Options{Catalog: loadTestCatalog(t)})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	outcome, err := sess.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// Only the two trial-count metrics remain.
	if len(outcome.Measurements) != 2 {
		t.Fatalf("expected 2 measurements without metadata, got %d", len(outcome.Measurements))
	}
	for _, m := range outcome.Measurements {
		if !strings.Contains(m.Name, "trials") {
			t.Errorf("unexpected metric without metadata: %s", m.Name)
		}
	}
}

func TestRunMissingLogIsMissingInput(t *testing.T) {
	dir := t.TempDir()
	inputs := writeSession(t, dir, "ET_03")
	inputs.LogPath = filepath.Join(dir, "ET_03", "absent.asc")

	sess, err := session.New(inputs, session.Options{Catalog: loadTestCatalog(t)})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	_, err = sess.Run(context.Background())
	if !errors.Is(err, session.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
}

func TestRunUnknownLedgerStimulusIsConfigurationError(t *testing.T) {
	dir := t.TempDir()
	inputs := writeSession(t, dir, "ET_04")
	inputs.LedgerPath = testsupport.WriteFile(t, filepath.Join(dir, "ET_04"),
		"completed_stimuli.csv", testsupport.LedgerCSV(13, 99))

	sess, err := session.New(inputs, session.Options{Catalog: loadTestCatalog(t)})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	_, err = sess.Run(context.Background())
	if !errors.Is(err, session.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if !errors.Is(err, stimulus.ErrUnknownStimulus) {
		t.Fatalf("expected unknown-stimulus cause, got %v", err)
	}
}

func TestNewRejectsEmptyInputs(t *testing.T) {
	catalog := loadTestCatalog(t)

	_, err := session.New(session.Inputs{LogPath: "a", LedgerPath: "b"}, session.Options{Catalog: catalog})
	if !errors.Is(err, session.ErrConfiguration) {
		t.Fatalf("missing session id: got %v", err)
	}

	_, err = session.New(session.Inputs{SessionID: "ET_05", LedgerPath: "b"}, session.Options{Catalog: catalog})
	if !errors.Is(err, session.ErrMissingInput) {
		t.Fatalf("missing log path: got %v", err)
	}

	_, err = session.New(session.Inputs{SessionID: "ET_05", LogPath: "a", LedgerPath: "b"}, session.Options{})
	if !errors.Is(err, session.ErrConfiguration) {
		t.Fatalf("missing catalog: got %v", err)
	}
}

func TestRunAppliesDuplicatePolicy(t *testing.T) {
	dir := t.TempDir()
	inputs := writeSession(t, dir, "ET_06")

	sess, err := session.New(inputs, session.Options{
		Catalog: loadTestCatalog(t),
		Policy:  conformance.PolicyFlagDuplicate,
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	outcome, err := sess.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// A complete log has no duplicates, so the stricter policy changes
	// nothing for it.
	if outcome.Warnings() != 0 {
		t.Fatalf("unexpected warnings: %+v", outcome.Result.Findings)
	}
}
