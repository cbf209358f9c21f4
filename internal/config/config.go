package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and file location configuration.
type Paths struct {
	// DataDir is the root under which session directories live.
	DataDir string `toml:"data_dir"`
	// OutputDir receives report files and tabular exports.
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	// StimulusCatalog is the tab-separated stimulus definition file.
	StimulusCatalog string `toml:"stimulus_catalog"`
	// ResultsDB is the sqlite ledger of completed check runs.
	ResultsDB string `toml:"results_db"`
}

// Tracker contains eye-tracking device configuration.
type Tracker struct {
	Kind string `toml:"kind"`
	// MessageMarker overrides the device's event-line marker; empty uses the
	// device default.
	MessageMarker string `toml:"message_marker"`
}

// Protocol contains matching behavior configuration.
type Protocol struct {
	// DuplicatePolicy selects how repeated identical markers inside one search
	// window are handled: first, last, or flag-duplicate.
	DuplicatePolicy string `toml:"duplicate_policy"`
	// RecalibrationScoreThreshold is the average validation score above which
	// a fresh calibration is expected.
	RecalibrationScoreThreshold float64 `toml:"recalibration_score_threshold"`
	// RecalibrationWindowSeconds bounds how late that calibration may arrive.
	RecalibrationWindowSeconds float64 `toml:"recalibration_window_seconds"`
}

// Batch contains configuration for multi-session runs.
type Batch struct {
	// Workers is the number of sessions checked concurrently.
	Workers int `toml:"workers"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Checks contains the acceptable specification for every session metric.
// Each entry carries exactly one shape: a discrete allowed set, a closed
// numeric range, or a single required value.
type Checks struct {
	Calibrations        Acceptable `toml:"calibrations"`
	Validations         Acceptable `toml:"validations"`
	AvgValidationScores Acceptable `toml:"avg_validation_scores"`
	MaxValidationScores Acceptable `toml:"max_validation_scores"`
	ValidationErrors    Acceptable `toml:"validation_errors"`
	TrackedEye          Acceptable `toml:"tracked_eye"`
	DataLoss            Acceptable `toml:"data_loss"`
	DataLossBlinks      Acceptable `toml:"data_loss_blinks"`
	RecordingDuration   Acceptable `toml:"recording_duration"`
	SamplingRate        Acceptable `toml:"sampling_rate"`
	PracticeTrials      Acceptable `toml:"practice_trials"`
	ExperimentTrials    Acceptable `toml:"experiment_trials"`
}

// Config encapsulates all configuration values for gazecheck.
//
// Configuration sections by subsystem:
//   - Paths: data, output, and catalog locations plus the results database
//   - Tracker: device kind and event-line marker
//   - Protocol: duplicate-marker policy and recalibration expectations
//   - Batch: concurrent session workers
//   - Logging: log format and level
//   - Checks: acceptable specifications per quality metric
type Config struct {
	Paths    Paths    `toml:"paths"`
	Tracker  Tracker  `toml:"tracker"`
	Protocol Protocol `toml:"protocol"`
	Batch    Batch    `toml:"batch"`
	Logging  Logging  `toml:"logging"`
	Checks   Checks   `toml:"checks"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/gazecheck/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("gazecheck.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for batch operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if dir := filepath.Dir(c.Paths.ResultsDB); strings.TrimSpace(dir) != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
