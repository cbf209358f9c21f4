package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"gazecheck/internal/conformance"
	"gazecheck/internal/quality"
)

func TestEmitterGolden(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf)

	if err := e.Section("Signal quality"); err != nil {
		t.Fatalf("section: %v", err)
	}

	pass := quality.Evaluate("Sampling rate", []quality.Value{quality.Number(1000)},
		quality.Scalar{Value: quality.Number(1000)})
	fail := quality.Evaluate("Data loss ratio", []quality.Value{quality.Number(0.125)},
		quality.Range{Lower: 0, Upper: 0.10})
	fail.Percentage = true
	if err := e.Measurements([]quality.Measurement{pass, fail}); err != nil {
		t.Fatalf("measurements: %v", err)
	}

	findings := []conformance.Finding{
		conformance.Warning("Lit_Solaris page_2", "missing page_screen_image_onset"),
		conformance.Info("obligatory_break", "obligatory break lasting 240.00 seconds").At(42, 1_500_000),
	}
	if err := e.Findings(findings); err != nil {
		t.Fatalf("findings: %v", err)
	}

	summary := quality.Summary{ReadingMS: 3_661_000, SetupMS: 90_000, TotalMS: 3_751_000}
	if err := e.TimingSummary(summary); err != nil {
		t.Fatalf("timing summary: %v", err)
	}

	g := goldie.New(t)
	g.Assert(t, "session_report", buf.Bytes())
}

func TestOpenFileAppendsAcrossPhases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")

	for _, line := range []string{"first phase", "second phase"} {
		f, err := OpenFile(path, false)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		if err := NewEmitter(f).Line("%s", line); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := f.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(contents) != "first phase\nsecond phase\n" {
		t.Fatalf("phases did not accumulate: %q", contents)
	}

	f, err := OpenFile(path, true)
	if err != nil {
		t.Fatalf("open truncate: %v", err)
	}
	if err := NewEmitter(f).Line("clean run"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	contents, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(contents) != "clean run\n" {
		t.Fatalf("truncate did not clear the report: %q", contents)
	}
}

func TestRenderTableAlignsAndPadsRows(t *testing.T) {
	rendered := RenderTable(
		[]string{"Session", "Warnings"},
		[][]string{
			{"ET_01", "3"},
			{"ET_02"},
		},
		[]ColumnAlignment{AlignLeft, AlignRight},
	)
	for _, want := range []string{"Session", "ET_01", "ET_02"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("table missing %q:\n%s", want, rendered)
		}
	}
	// Right-aligned cells end flush against the border padding.
	if !strings.Contains(rendered, " 3 │") {
		t.Errorf("warnings column not right-aligned:\n%s", rendered)
	}
}

func TestPerElementTable(t *testing.T) {
	summary := quality.Summary{PerElement: []quality.ElementDuration{
		{Label: "Lit_Solaris page_1", Trial: 1, Stimulus: "Lit_Solaris", DurationMS: 61_000, Complete: true},
		{Label: "Lit_Solaris page_2", Trial: 1, Stimulus: "Lit_Solaris", Complete: false},
		{Label: "Enc_WikiMoon page_1", Trial: 1, Practice: true, Stimulus: "Enc_WikiMoon", DurationMS: 30_000, Complete: true},
	}}

	rendered := PerElementTable(summary)
	for _, want := range []string{"Solaris", "00:01:01", "incomplete", "P1", "Wiki Moon"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("table missing %q:\n%s", want, rendered)
		}
	}
}

func TestPerTrialTableSumsDurations(t *testing.T) {
	summary := quality.Summary{PerElement: []quality.ElementDuration{
		{Label: "Lit_Solaris page_1", Trial: 1, Stimulus: "Lit_Solaris", DurationMS: 30_000, Complete: true},
		{Label: "Lit_Solaris page_2", Trial: 1, Stimulus: "Lit_Solaris", DurationMS: 31_000, Complete: true},
	}}

	rendered := PerTrialTable(summary)
	if !strings.Contains(rendered, "00:01:01") {
		t.Errorf("trial total not summed:\n%s", rendered)
	}
}

func TestExportElementTimings(t *testing.T) {
	summary := quality.Summary{PerElement: []quality.ElementDuration{
		{Label: "Lit_Solaris page_1", Trial: 1, Stimulus: "Lit_Solaris", DurationMS: 61_000, Complete: true},
	}}

	var buf bytes.Buffer
	if err := ExportElementTimings(&buf, summary); err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if lines[1] != "1\tfalse\tLit_Solaris\tLit_Solaris page_1\t61000\ttrue" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}
