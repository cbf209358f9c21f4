package preflight

import (
	"gazecheck/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every applicable preflight check for the given config.
// Optional paths are only checked when configured.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryReadable("Data directory", cfg.Paths.DataDir))
	results = append(results, CheckDirectoryWritable("Output directory", cfg.Paths.OutputDir))
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryWritable("Log directory", cfg.Paths.LogDir))
	}
	results = append(results, CheckCatalog(cfg.Paths.StimulusCatalog))
	if cfg.Paths.ResultsDB != "" {
		results = append(results, CheckResultsDB(cfg.Paths.ResultsDB))
	}
	results = append(results, CheckTracker(cfg.Tracker.Kind))

	return results
}

// AllPassed reports whether every check in the set passed.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
