package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gazecheck/internal/config"
	"gazecheck/internal/quality"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "gazecheck", "sessions")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if !filepath.IsAbs(cfg.Paths.ResultsDB) {
		t.Fatalf("results db not expanded: %q", cfg.Paths.ResultsDB)
	}
	if cfg.Tracker.Kind != "eyelink" {
		t.Fatalf("unexpected tracker kind: %q", cfg.Tracker.Kind)
	}
	if cfg.Protocol.DuplicatePolicy != "first" {
		t.Fatalf("unexpected duplicate policy: %q", cfg.Protocol.DuplicatePolicy)
	}
	if cfg.Protocol.RecalibrationWindowSeconds != 200 {
		t.Fatalf("unexpected recalibration window: %v", cfg.Protocol.RecalibrationWindowSeconds)
	}
	if cfg.Batch.Workers != 4 {
		t.Fatalf("unexpected worker count: %d", cfg.Batch.Workers)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadReadsFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[protocol]
duplicate_policy = "flag-duplicate"

[batch]
workers = 8

[checks.sampling_rate]
equals = 500
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Protocol.DuplicatePolicy != "flag-duplicate" {
		t.Fatalf("override lost: %q", cfg.Protocol.DuplicatePolicy)
	}
	if cfg.Batch.Workers != 8 {
		t.Fatalf("override lost: %d", cfg.Batch.Workers)
	}

	th, err := cfg.Thresholds()
	if err != nil {
		t.Fatalf("thresholds: %v", err)
	}
	if !th.SamplingRate.Allows(quality.Number(500)) {
		t.Fatal("overridden sampling rate not honored")
	}
	if th.SamplingRate.Allows(quality.Number(1000)) {
		t.Fatal("default sampling rate should no longer be accepted")
	}
	// Unoverridden checks keep their defaults.
	if !th.Calibrations.Allows(quality.Number(5)) {
		t.Fatal("default calibration set lost")
	}
	if th.Calibrations.Allows(quality.Number(3)) {
		t.Fatal("calibration counts are a discrete set, not a range")
	}
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[protocol]\nduplicate_policy = \"newest\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "duplicate_policy") {
		t.Fatalf("expected duplicate policy error, got %v", err)
	}
}

func TestAcceptableShapesAreExclusive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[checks.sampling_rate]
equals = 1000
min = 500
max = 2000
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Fatalf("expected shape exclusivity error, got %v", err)
	}
}

func TestDefaultThresholdsMatchQualityDefaults(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}

	th, err := cfg.Thresholds()
	if err != nil {
		t.Fatalf("thresholds: %v", err)
	}
	stock := quality.DefaultThresholds()

	probes := []struct {
		name       string
		configured quality.AcceptableSpec
		reference  quality.AcceptableSpec
		value      quality.Value
	}{
		{"calibrations", th.Calibrations, stock.Calibrations, quality.Number(2)},
		{"validations", th.Validations, stock.Validations, quality.Number(14)},
		{"validation errors", th.ValidationErrors, stock.ValidationErrors, quality.Text("GOOD")},
		{"tracked eye", th.TrackedEye, stock.TrackedEye, quality.Text("RIGHT")},
		{"sampling rate", th.SamplingRate, stock.SamplingRate, quality.Number(1000)},
	}
	for _, probe := range probes {
		if probe.configured.Allows(probe.value) != probe.reference.Allows(probe.value) {
			t.Errorf("%s: config defaults disagree with stock thresholds", probe.name)
		}
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	if err := config.CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config must load cleanly: %v", err)
	}
	if !exists {
		t.Fatal("sample file should exist")
	}
	if _, err := cfg.Thresholds(); err != nil {
		t.Fatalf("sample thresholds: %v", err)
	}
}
