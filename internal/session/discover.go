package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	ledgerFileName   = "completed_stimuli.csv"
	metadataFileName = "metadata.json"
	logExtension     = ".asc"
)

// Discover walks the immediate children of dataDir and returns the inputs
// for every directory that looks like a recorded session: it must contain
// exactly one .asc log; the ledger and metadata files are picked up when
// present. Results are sorted by session id.
func Discover(dataDir string) ([]Inputs, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, Wrap(ErrMissingInput, "discover", "read data dir", dataDir, err)
	}

	var sessions []Inputs
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dir := filepath.Join(dataDir, entry.Name())
		inputs, err := inspect(entry.Name(), dir)
		if err != nil {
			return nil, err
		}
		if inputs == nil {
			continue
		}
		sessions = append(sessions, *inputs)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].SessionID < sessions[j].SessionID
	})
	return sessions, nil
}

// inspect returns nil when the directory holds no log, and an error when it
// holds more than one; a session with an ambiguous log cannot be checked.
func inspect(sessionID, dir string) (*Inputs, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, Wrap(ErrMissingInput, "discover", "read session dir", dir, err)
	}

	var logs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), logExtension) {
			logs = append(logs, filepath.Join(dir, entry.Name()))
		}
	}
	if len(logs) == 0 {
		return nil, nil
	}
	if len(logs) > 1 {
		return nil, Wrap(ErrConfiguration, "discover", "inspect session",
			fmt.Sprintf("%s contains %d .asc logs, expected one", dir, len(logs)), nil)
	}

	inputs := &Inputs{SessionID: sessionID, LogPath: logs[0]}
	if path := filepath.Join(dir, ledgerFileName); fileExists(path) {
		inputs.LedgerPath = path
	}
	if path := filepath.Join(dir, metadataFileName); fileExists(path) {
		inputs.MetadataPath = path
	}
	return inputs, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
