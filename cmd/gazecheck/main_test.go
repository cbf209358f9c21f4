package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckCommandRunsSingleSession(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addSession(t, "ET_01")

	out, _, err := runCLI(t, []string{"check", "ET_01"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "Session ET_01 checked")
	requireContains(t, out, "0 warnings")

	reportPath := filepath.Join(env.outputDir, "ET_01_report.txt")
	report, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	requireContains(t, string(report), "Quality metrics")
}

func TestCheckCommandUnknownSession(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"check", "ET_99"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown session")
	}
}

func TestBatchCommandChecksAndRecords(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addSession(t, "ET_01")
	env.addSession(t, "ET_02")

	out, _, err := runCLI(t, []string{"batch"}, env.configPath)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	requireContains(t, out, "ET_01")
	requireContains(t, out, "ET_02")
	requireContains(t, out, "pass")

	// The batch recorded its runs; sessions list must show them.
	out, _, err = runCLI(t, []string{"sessions", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("sessions list: %v", err)
	}
	requireContains(t, out, "ET_01")
	requireContains(t, out, "ET_02")
}

func TestBatchCommandEmptyDataDir(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"batch"}, env.configPath)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	requireContains(t, out, "No sessions found")
}

func TestSessionsListEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"sessions", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("sessions list: %v", err)
	}
	requireContains(t, out, "No recorded runs")
}

func TestPreflightCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"preflight"}, env.configPath)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	requireContains(t, out, "Data directory")
	requireContains(t, out, "Stimulus catalog")
}

func TestPreflightCommandFailsOnMissingCatalog(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.Remove(env.catalogPath); err != nil {
		t.Fatalf("remove catalog: %v", err)
	}

	_, _, err := runCLI(t, []string{"preflight"}, env.configPath)
	if err == nil {
		t.Fatal("expected preflight failure for missing catalog")
	}
}
