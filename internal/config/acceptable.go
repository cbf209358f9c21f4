package config

import (
	"errors"
	"fmt"

	"gazecheck/internal/quality"
)

// Acceptable is the TOML shape of one metric's acceptance criterion.
// Exactly one of the following must be set: Allowed or AllowedStrings (a
// discrete set), Min and Max together (a closed range), or Equals or
// EqualsString (a required scalar).
type Acceptable struct {
	Allowed        []float64 `toml:"allowed"`
	AllowedStrings []string  `toml:"allowed_strings"`
	Min            *float64  `toml:"min"`
	Max            *float64  `toml:"max"`
	Equals         *float64  `toml:"equals"`
	EqualsString   *string   `toml:"equals_string"`
}

func (a Acceptable) shapes() int {
	count := 0
	if len(a.Allowed) > 0 || len(a.AllowedStrings) > 0 {
		count++
	}
	if a.Min != nil || a.Max != nil {
		count++
	}
	if a.Equals != nil || a.EqualsString != nil {
		count++
	}
	return count
}

func (a Acceptable) validate(name string) error {
	switch a.shapes() {
	case 0:
		return fmt.Errorf("checks.%s: no acceptable specification given", name)
	case 1:
	default:
		return fmt.Errorf("checks.%s: set, range, and scalar shapes are mutually exclusive", name)
	}
	if (a.Min == nil) != (a.Max == nil) {
		return fmt.Errorf("checks.%s: min and max must be set together", name)
	}
	if a.Min != nil && *a.Min > *a.Max {
		return fmt.Errorf("checks.%s: min must not exceed max", name)
	}
	return nil
}

// Spec converts the configured shape into its evaluator.
func (a Acceptable) Spec() (quality.AcceptableSpec, error) {
	switch {
	case len(a.Allowed) > 0 || len(a.AllowedStrings) > 0:
		set := make(quality.Set, 0, len(a.Allowed)+len(a.AllowedStrings))
		for _, v := range a.Allowed {
			set = append(set, quality.Number(v))
		}
		for _, s := range a.AllowedStrings {
			set = append(set, quality.Text(s))
		}
		return set, nil
	case a.Min != nil && a.Max != nil:
		return quality.Range{Lower: *a.Min, Upper: *a.Max}, nil
	case a.Equals != nil:
		return quality.Scalar{Value: quality.Number(*a.Equals)}, nil
	case a.EqualsString != nil:
		return quality.Scalar{Value: quality.Text(*a.EqualsString)}, nil
	default:
		return nil, errors.New("no acceptable specification given")
	}
}

// Thresholds converts every configured check into its evaluator. Call
// only after Validate has accepted the configuration.
func (c *Config) Thresholds() (quality.Thresholds, error) {
	var th quality.Thresholds
	for _, binding := range []struct {
		name string
		src  Acceptable
		dst  *quality.AcceptableSpec
	}{
		{"calibrations", c.Checks.Calibrations, &th.Calibrations},
		{"validations", c.Checks.Validations, &th.Validations},
		{"avg_validation_scores", c.Checks.AvgValidationScores, &th.AvgScores},
		{"max_validation_scores", c.Checks.MaxValidationScores, &th.MaxScores},
		{"validation_errors", c.Checks.ValidationErrors, &th.ValidationErrors},
		{"tracked_eye", c.Checks.TrackedEye, &th.TrackedEye},
		{"data_loss", c.Checks.DataLoss, &th.DataLoss},
		{"data_loss_blinks", c.Checks.DataLossBlinks, &th.DataLossBlinks},
		{"recording_duration", c.Checks.RecordingDuration, &th.RecordingDuration},
		{"sampling_rate", c.Checks.SamplingRate, &th.SamplingRate},
		{"practice_trials", c.Checks.PracticeTrials, &th.PracticeTrials},
		{"experiment_trials", c.Checks.ExperimentTrials, &th.ExperimentTrials},
	} {
		spec, err := binding.src.Spec()
		if err != nil {
			return quality.Thresholds{}, fmt.Errorf("checks.%s: %w", binding.name, err)
		}
		*binding.dst = spec
	}
	return th, nil
}
