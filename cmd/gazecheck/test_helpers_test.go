package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gazecheck/internal/protocol"
	"gazecheck/internal/stimulus"
	"gazecheck/internal/testsupport"
)

type cliTestEnv struct {
	baseDir     string
	dataDir     string
	outputDir   string
	catalogPath string
	configPath  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	env := &cliTestEnv{
		baseDir:   base,
		dataDir:   filepath.Join(base, "data"),
		outputDir: filepath.Join(base, "output"),
	}
	if err := os.MkdirAll(env.dataDir, 0o755); err != nil {
		t.Fatalf("mkdir data dir: %v", err)
	}
	env.catalogPath = testsupport.WriteFile(t, base, "stimuli.tsv", testsupport.CatalogTSV)

	env.configPath = filepath.Join(homeDir, ".config", "gazecheck", "config.toml")
	// The fixture catalog has two experiment stimuli, not the stock ten.
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\noutput_dir = %q\nlog_dir = %q\nstimulus_catalog = %q\nresults_db = %q\n\n[checks.experiment_trials]\nequals = 2.0\n",
		env.dataDir,
		env.outputDir,
		filepath.Join(base, "logs"),
		env.catalogPath,
		filepath.Join(base, "state", "results.db"),
	)
	testsupport.WriteFile(t, filepath.Dir(env.configPath), filepath.Base(env.configPath), content)

	return env
}

// addSession lays out a complete session directory under the data dir.
func (env *cliTestEnv) addSession(t *testing.T, sessionID string) {
	t.Helper()
	catalog, err := stimulus.ReadCatalog(strings.NewReader(testsupport.CatalogTSV))
	if err != nil {
		t.Fatalf("read catalog: %v", err)
	}
	template, err := protocol.NewBuilder(catalog).Build([]int{13, 7, 5, 4})
	if err != nil {
		t.Fatalf("build template: %v", err)
	}

	dir := filepath.Join(env.dataDir, sessionID)
	testsupport.WriteFile(t, dir, "session.asc", testsupport.CompleteSession(template).ASCText())
	testsupport.WriteFile(t, dir, "completed_stimuli.csv", testsupport.LedgerCSV(13, 7, 5, 4))
	testsupport.WriteFile(t, dir, "metadata.json", testsupport.MetadataJSON())
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = []string{"--config", configPath}
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
