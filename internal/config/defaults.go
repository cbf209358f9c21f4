package config

const (
	defaultDataDir                     = "~/.local/share/gazecheck/sessions"
	defaultOutputDir                   = "~/.local/share/gazecheck/reports"
	defaultLogDir                      = "~/.local/share/gazecheck/logs"
	defaultStimulusCatalog             = "~/.config/gazecheck/stimuli.tsv"
	defaultResultsDB                   = "~/.local/share/gazecheck/results.db"
	defaultTrackerKind                 = "eyelink"
	defaultDuplicatePolicy             = "first"
	defaultRecalibrationScoreThreshold = 0.305
	defaultRecalibrationWindowSeconds  = 200
	defaultBatchWorkers                = 4
	defaultLogFormat                   = "console"
	defaultLogLevel                    = "info"
)

func floatPtr(v float64) *float64 { return &v }

// Default returns a Config populated with repository defaults. The check
// thresholds describe a standard two-practice, ten-trial session recorded
// at 1000 Hz.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:         defaultDataDir,
			OutputDir:       defaultOutputDir,
			LogDir:          defaultLogDir,
			StimulusCatalog: defaultStimulusCatalog,
			ResultsDB:       defaultResultsDB,
		},
		Tracker: Tracker{
			Kind: defaultTrackerKind,
		},
		Protocol: Protocol{
			DuplicatePolicy:             defaultDuplicatePolicy,
			RecalibrationScoreThreshold: defaultRecalibrationScoreThreshold,
			RecalibrationWindowSeconds:  defaultRecalibrationWindowSeconds,
		},
		Batch: Batch{
			Workers: defaultBatchWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Checks: Checks{
			Calibrations:        Acceptable{Allowed: []float64{2, 5}},
			Validations:         Acceptable{Min: floatPtr(13), Max: floatPtr(15)},
			AvgValidationScores: Acceptable{Min: floatPtr(0), Max: floatPtr(0.6)},
			MaxValidationScores: Acceptable{Min: floatPtr(0), Max: floatPtr(1.5)},
			ValidationErrors:    Acceptable{AllowedStrings: []string{"GOOD"}},
			TrackedEye:          Acceptable{AllowedStrings: []string{"L", "R", "LEFT", "RIGHT"}},
			DataLoss:            Acceptable{Min: floatPtr(0), Max: floatPtr(0.10)},
			DataLossBlinks:      Acceptable{Min: floatPtr(0), Max: floatPtr(0.10)},
			RecordingDuration:   Acceptable{Min: floatPtr(600), Max: floatPtr(7200)},
			SamplingRate:        Acceptable{Equals: floatPtr(1000)},
			PracticeTrials:      Acceptable{Equals: floatPtr(2)},
			ExperimentTrials:    Acceptable{Equals: floatPtr(10)},
		},
	}
}
