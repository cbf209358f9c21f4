// Package config loads, normalizes, and validates gazecheck configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and converts the per-metric acceptance
// criteria into their evaluators. The Config type centralizes every knob the
// CLI needs: data and output locations, tracker selection, matching policy,
// batch concurrency, and the check thresholds.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
