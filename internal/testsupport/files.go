package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CatalogTSV is a small stimulus catalog shared across packages: two practice
// stimuli and two experiment stimuli with questions.
const CatalogTSV = "stimulus_id\tstimulus_name\tstimulus_type\tnum_pages\tquestion_ids\trating_screens\n" +
	"13\tEnc_WikiMoon\tpractice\t2\t\t\n" +
	"7\tLit_NorthWind\tpractice\t1\t\t\n" +
	"5\tLit_Solaris\texperiment\t2\t01;02\t\n" +
	"4\tArg_PISACowsMilk\texperiment\t1\t01\t\n"

// LedgerCSV renders a completed-stimuli ledger for the given ids.
func LedgerCSV(ids ...int) string {
	var sb strings.Builder
	sb.WriteString("stimulus_id\n")
	for _, id := range ids {
		fmt.Fprintf(&sb, "%d\n", id)
	}
	return sb.String()
}

// MetadataJSON renders a metadata block that satisfies the default
// acceptable ranges: 2 calibrations, 14 clean validations, low data loss.
func MetadataJSON() string {
	var sb strings.Builder
	sb.WriteString(`{"calibrations": [{"timestamp": 900000}, {"timestamp": 2500000}],`)
	sb.WriteString(`"validations": [`)
	for i := 0; i < 14; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"timestamp": %d, "validation_score_avg": "0.28", "validation_score_max": "0.90", "error": "GOOD ERROR", "tracked_eye": "RIGHT"}`,
			910000+i*120000)
	}
	sb.WriteString(`],`)
	sb.WriteString(`"data_loss_ratio": 0.05, "data_loss_ratio_blinks": 0.02,`)
	sb.WriteString(`"total_recording_duration_ms": 3600000, "sampling_rate": 1000, "tracked_eye": "R"}`)
	return sb.String()
}

// WriteFile writes contents beneath dir, creating parents, and fails the
// test on error.
func WriteFile(t testing.TB, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create dir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
