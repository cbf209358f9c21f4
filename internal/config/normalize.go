package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTracker()
	c.normalizeProtocol()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.StimulusCatalog, err = expandPath(c.Paths.StimulusCatalog); err != nil {
		return fmt.Errorf("paths.stimulus_catalog: %w", err)
	}
	if c.Paths.ResultsDB, err = expandPath(c.Paths.ResultsDB); err != nil {
		return fmt.Errorf("paths.results_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeTracker() {
	c.Tracker.Kind = strings.ToLower(strings.TrimSpace(c.Tracker.Kind))
	if c.Tracker.Kind == "" {
		c.Tracker.Kind = defaultTrackerKind
	}
	c.Tracker.MessageMarker = strings.TrimSpace(c.Tracker.MessageMarker)
}

func (c *Config) normalizeProtocol() {
	c.Protocol.DuplicatePolicy = strings.ToLower(strings.TrimSpace(c.Protocol.DuplicatePolicy))
	if c.Protocol.DuplicatePolicy == "" {
		c.Protocol.DuplicatePolicy = defaultDuplicatePolicy
	}
	if c.Protocol.RecalibrationScoreThreshold == 0 {
		c.Protocol.RecalibrationScoreThreshold = defaultRecalibrationScoreThreshold
	}
	if c.Protocol.RecalibrationWindowSeconds == 0 {
		c.Protocol.RecalibrationWindowSeconds = defaultRecalibrationWindowSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
