package main

import (
	"fmt"
	"log/slog"

	"gazecheck/internal/config"
	"gazecheck/internal/conformance"
	"gazecheck/internal/quality"
	"gazecheck/internal/session"
	"gazecheck/internal/stimulus"
	"gazecheck/internal/tracker"
)

// sessionOptions resolves every shared collaborator a session check needs
// from the loaded config: catalog, tracker capabilities, duplicate policy,
// recalibration expectations, and metric thresholds.
func sessionOptions(cfg *config.Config, logger *slog.Logger) (session.Options, error) {
	catalog, err := stimulus.LoadCatalog(cfg.Paths.StimulusCatalog)
	if err != nil {
		return session.Options{}, fmt.Errorf("load stimulus catalog: %w", err)
	}

	caps, err := tracker.Resolve(cfg.Tracker.Kind)
	if err != nil {
		return session.Options{}, err
	}
	if cfg.Tracker.MessageMarker != "" {
		caps.MessageMarker = cfg.Tracker.MessageMarker
	}

	policy, err := conformance.ParseDuplicatePolicy(cfg.Protocol.DuplicatePolicy)
	if err != nil {
		return session.Options{}, err
	}

	thresholds, err := cfg.Thresholds()
	if err != nil {
		return session.Options{}, err
	}

	return session.Options{
		Catalog: catalog,
		Tracker: caps,
		Policy:  policy,
		Recal: quality.RecalibrationPolicy{
			ScoreThreshold: cfg.Protocol.RecalibrationScoreThreshold,
			WindowMS:       cfg.Protocol.RecalibrationWindowSeconds * 1000,
		},
		Thresholds: thresholds,
		Logger:     logger,
	}, nil
}

func plural(count int, word string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, word)
	}
	return fmt.Sprintf("%d %ss", count, word)
}
