package quality

import (
	"fmt"

	"gazecheck/internal/conformance"
	"gazecheck/internal/tracker"
)

// RecalibrationPolicy decides when a poor validation should have been
// followed by a fresh calibration. Scores are compared numerically.
type RecalibrationPolicy struct {
	// ScoreThreshold is the average validation score above which a
	// recalibration is expected.
	ScoreThreshold float64
	// WindowMS bounds how long after the poor validation the calibration
	// may arrive and still count as a response to it.
	WindowMS float64
}

// DefaultRecalibrationPolicy expects a recalibration within 200 seconds of
// any validation whose average score exceeds 0.305 degrees.
func DefaultRecalibrationPolicy() RecalibrationPolicy {
	return RecalibrationPolicy{ScoreThreshold: 0.305, WindowMS: 200_000}
}

// CheckRecalibrations scans the validation history for poor scores and
// verifies each one was answered by a calibration inside the policy
// window. A poor validation with a timely calibration yields an info
// finding carrying the delta; one without yields a warning.
func CheckRecalibrations(md *tracker.Metadata, policy RecalibrationPolicy) []conformance.Finding {
	var findings []conformance.Finding
	for _, val := range md.Validations {
		if val.ScoreAvg <= policy.ScoreThreshold {
			continue
		}

		subject := fmt.Sprintf("validation at %.0f", val.Timestamp)
		if delta, ok := nextCalibrationDelta(md.Calibrations, val.Timestamp, policy.WindowMS); ok {
			findings = append(findings, conformance.Info(subject,
				fmt.Sprintf("avg score %.3f above %.3f, recalibrated %.2f seconds later",
					val.ScoreAvg, policy.ScoreThreshold, delta/1000)))
			continue
		}
		findings = append(findings, conformance.Warning(subject,
			fmt.Sprintf("avg score %.3f above %.3f with no recalibration", val.ScoreAvg, policy.ScoreThreshold)))
	}
	return findings
}

func nextCalibrationDelta(calibrations []tracker.Calibration, afterTS, windowMS float64) (float64, bool) {
	best := -1.0
	for _, cal := range calibrations {
		if cal.Timestamp <= afterTS {
			continue
		}
		delta := cal.Timestamp - afterTS
		if delta > windowMS {
			continue
		}
		if best < 0 || delta < best {
			best = delta
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}
