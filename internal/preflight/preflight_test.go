package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"gazecheck/internal/config"
	"gazecheck/internal/testsupport"
)

func TestCheckDirectoryWritable_OK(t *testing.T) {
	result := CheckDirectoryWritable("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryWritable_NotExist(t *testing.T) {
	result := CheckDirectoryWritable("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryWritable_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryWritable("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckCatalog_OK(t *testing.T) {
	path := testsupport.WriteFile(t, t.TempDir(), "stimuli.tsv", testsupport.CatalogTSV)
	result := CheckCatalog(path)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckCatalog_Missing(t *testing.T) {
	result := CheckCatalog(filepath.Join(t.TempDir(), "absent.tsv"))
	if result.Passed {
		t.Fatal("expected failure for missing catalog")
	}
}

func TestCheckCatalog_Empty(t *testing.T) {
	path := testsupport.WriteFile(t, t.TempDir(), "stimuli.tsv",
		"stimulus_id\tstimulus_name\tstimulus_type\tnum_pages\tquestion_ids\trating_screens\n")
	result := CheckCatalog(path)
	if result.Passed {
		t.Fatal("expected failure for empty catalog")
	}
}

func TestCheckResultsDB_CreatesParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "results.db")
	result := CheckResultsDB(path)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("parent not created: %v", err)
	}
}

func TestCheckTracker_Unknown(t *testing.T) {
	result := CheckTracker("tobii")
	if result.Passed {
		t.Fatal("expected failure for unsupported tracker")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_HealthyConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	cfg.Paths.OutputDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Paths.StimulusCatalog = testsupport.WriteFile(t, t.TempDir(), "stimuli.tsv", testsupport.CatalogTSV)
	cfg.Paths.ResultsDB = filepath.Join(t.TempDir(), "results.db")

	results := RunAll(&cfg)
	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
	if !AllPassed(results) {
		for _, r := range results {
			if !r.Passed {
				t.Errorf("check %q failed: %s", r.Name, r.Detail)
			}
		}
	}
}

func TestRunAll_ReportsBrokenPaths(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(t.TempDir(), "absent")
	cfg.Paths.OutputDir = t.TempDir()
	cfg.Paths.LogDir = ""
	cfg.Paths.StimulusCatalog = filepath.Join(t.TempDir(), "absent.tsv")
	cfg.Paths.ResultsDB = ""

	results := RunAll(&cfg)
	if AllPassed(results) {
		t.Fatal("expected failures for broken paths")
	}
	failed := 0
	for _, r := range results {
		if !r.Passed {
			failed++
		}
	}
	if failed != 2 {
		t.Fatalf("expected 2 failing checks, got %d: %+v", failed, results)
	}
}
