package config

import (
	"errors"
	"fmt"
	"strings"

	"gazecheck/internal/conformance"
	"gazecheck/internal/tracker"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTracker(); err != nil {
		return err
	}
	if err := c.validateProtocol(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateChecks()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if strings.TrimSpace(c.Paths.StimulusCatalog) == "" {
		return errors.New("paths.stimulus_catalog must be set")
	}
	return nil
}

func (c *Config) validateTracker() error {
	if _, err := tracker.Resolve(c.Tracker.Kind); err != nil {
		return fmt.Errorf("tracker.kind: %w", err)
	}
	return nil
}

func (c *Config) validateProtocol() error {
	if _, err := conformance.ParseDuplicatePolicy(c.Protocol.DuplicatePolicy); err != nil {
		return fmt.Errorf("protocol.duplicate_policy: %w", err)
	}
	if c.Protocol.RecalibrationScoreThreshold <= 0 {
		return errors.New("protocol.recalibration_score_threshold must be positive")
	}
	if c.Protocol.RecalibrationWindowSeconds <= 0 {
		return errors.New("protocol.recalibration_window_seconds must be positive")
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Batch.Workers < 1 {
		return errors.New("batch.workers must be >= 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateChecks() error {
	for _, check := range []struct {
		name string
		spec Acceptable
	}{
		{"calibrations", c.Checks.Calibrations},
		{"validations", c.Checks.Validations},
		{"avg_validation_scores", c.Checks.AvgValidationScores},
		{"max_validation_scores", c.Checks.MaxValidationScores},
		{"validation_errors", c.Checks.ValidationErrors},
		{"tracked_eye", c.Checks.TrackedEye},
		{"data_loss", c.Checks.DataLoss},
		{"data_loss_blinks", c.Checks.DataLossBlinks},
		{"recording_duration", c.Checks.RecordingDuration},
		{"sampling_rate", c.Checks.SamplingRate},
		{"practice_trials", c.Checks.PracticeTrials},
		{"experiment_trials", c.Checks.ExperimentTrials},
	} {
		if err := check.spec.validate(check.name); err != nil {
			return err
		}
	}
	return nil
}
