package session_test

import (
	"context"
	"path/filepath"
	"testing"

	"gazecheck/internal/session"
	"gazecheck/internal/store"
	"gazecheck/internal/testsupport"
)

func TestDiscoverFindsSessionDirectories(t *testing.T) {
	dir := t.TempDir()

	writeSession(t, dir, "ET_02")
	writeSession(t, dir, "ET_01")
	// A directory without a log is not a session.
	testsupport.WriteFile(t, filepath.Join(dir, "notes"), "readme.txt", "scratch\n")
	// Hidden directories are skipped.
	testsupport.WriteFile(t, filepath.Join(dir, ".cache"), "stale.asc", "MSG\t1 x\n")

	sessions, err := session.Discover(dir)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].SessionID != "ET_01" || sessions[1].SessionID != "ET_02" {
		t.Fatalf("sessions out of order: %s, %s", sessions[0].SessionID, sessions[1].SessionID)
	}
	if sessions[0].LedgerPath == "" || sessions[0].MetadataPath == "" {
		t.Fatalf("discovered session missing sidecar files: %+v", sessions[0])
	}
}

func TestDiscoverRejectsAmbiguousLogs(t *testing.T) {
	dir := t.TempDir()
	inputs := writeSession(t, dir, "ET_01")
	testsupport.WriteFile(t, filepath.Dir(inputs.LogPath), "second.asc", "MSG\t1 x\n")

	_, err := session.Discover(dir)
	if err == nil {
		t.Fatal("expected error for two .asc logs in one session dir")
	}
}

func TestRunBatchIsolatesBrokenSessions(t *testing.T) {
	dir := t.TempDir()
	good := writeSession(t, dir, "ET_01")
	broken := writeSession(t, dir, "ET_02")
	// Corrupt the broken session's log so reading it fails.
	testsupport.WriteFile(t, filepath.Join(dir, "ET_02"), "session.asc", "")

	st, err := store.Open(filepath.Join(dir, "results.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	results, err := session.RunBatch(context.Background(),
		[]session.Inputs{good, broken},
		session.Options{Catalog: loadTestCatalog(t), Thresholds: testThresholds()},
		session.BatchOptions{
			Workers:   2,
			OutputDir: filepath.Join(dir, "reports"),
			Store:     st,
		})
	if err != nil {
		t.Fatalf("run batch: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Failed() {
		t.Fatalf("good session failed: %v", results[0].Err)
	}
	if !results[1].Failed() {
		t.Fatal("broken session should fail")
	}
	if results[0].Outcome == nil || results[0].Outcome.SessionID != "ET_01" {
		t.Fatalf("unexpected outcome: %+v", results[0].Outcome)
	}

	// Both sessions were recorded, the broken one with its error.
	goodRuns, err := st.ListRuns(context.Background(), "ET_01", 0)
	if err != nil {
		t.Fatalf("list good runs: %v", err)
	}
	if len(goodRuns) != 1 || !goodRuns[0].Passed() {
		t.Fatalf("expected one passing run for ET_01, got %+v", goodRuns)
	}
	brokenRuns, err := st.ListRuns(context.Background(), "ET_02", 0)
	if err != nil {
		t.Fatalf("list broken runs: %v", err)
	}
	if len(brokenRuns) != 1 || brokenRuns[0].ErrorMessage == "" {
		t.Fatalf("expected one failed run for ET_02, got %+v", brokenRuns)
	}
}

func TestRunBatchAssignsReportPaths(t *testing.T) {
	dir := t.TempDir()
	inputs := writeSession(t, dir, "ET_01")

	results, err := session.RunBatch(context.Background(),
		[]session.Inputs{inputs},
		session.Options{Catalog: loadTestCatalog(t)},
		session.BatchOptions{OutputDir: filepath.Join(dir, "reports")})
	if err != nil {
		t.Fatalf("run batch: %v", err)
	}
	want := filepath.Join(dir, "reports", "ET_01_report.txt")
	if results[0].Inputs.ReportPath != want {
		t.Fatalf("report path = %s, want %s", results[0].Inputs.ReportPath, want)
	}
	if results[0].Outcome.ReportPath != want {
		t.Fatalf("outcome report path = %s, want %s", results[0].Outcome.ReportPath, want)
	}
}

func TestRunBatchEmptyInputIsNoop(t *testing.T) {
	results, err := session.RunBatch(context.Background(), nil, session.Options{}, session.BatchOptions{})
	if err != nil {
		t.Fatalf("run batch: %v", err)
	}
	if results != nil {
		t.Fatalf("expected nil results, got %+v", results)
	}
}
