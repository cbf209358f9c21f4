package quality

import (
	"strings"

	"gazecheck/internal/tracker"
)

// Thresholds holds the acceptable specification for every metadata metric.
type Thresholds struct {
	Calibrations      AcceptableSpec
	Validations       AcceptableSpec
	AvgScores         AcceptableSpec
	MaxScores         AcceptableSpec
	ValidationErrors  AcceptableSpec
	TrackedEye        AcceptableSpec
	DataLoss          AcceptableSpec
	DataLossBlinks    AcceptableSpec
	RecordingDuration AcceptableSpec
	SamplingRate      AcceptableSpec
	PracticeTrials    AcceptableSpec
	ExperimentTrials  AcceptableSpec
}

// DefaultThresholds returns the stock acceptance criteria for a standard
// two-practice, ten-trial session on a 1000 Hz tracker.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Calibrations:      Set{Number(2), Number(5)},
		Validations:       Range{Lower: 13, Upper: 15},
		AvgScores:         Range{Lower: 0, Upper: 0.6},
		MaxScores:         Range{Lower: 0, Upper: 1.5},
		ValidationErrors:  Set{Text("GOOD")},
		TrackedEye:        Set{Text("L"), Text("R"), Text("LEFT"), Text("RIGHT")},
		DataLoss:          Range{Lower: 0, Upper: 0.10},
		DataLossBlinks:    Range{Lower: 0, Upper: 0.10},
		RecordingDuration: Range{Lower: 600, Upper: 7200},
		SamplingRate:      Scalar{Value: Number(1000)},
		PracticeTrials:    Scalar{Value: Number(2)},
		ExperimentTrials:  Scalar{Value: Number(10)},
	}
}

// CheckMetadata evaluates the session metadata block against the
// thresholds and returns one measurement per metric, in report order.
// Validation error codes have their trailing " ERROR" suffix removed
// before comparison; recording duration is compared in seconds.
func CheckMetadata(md *tracker.Metadata, th Thresholds) []Measurement {
	var avgScores, maxScores []Value
	var errorCodes, eyes []Value
	for _, val := range md.Validations {
		avgScores = append(avgScores, Number(val.ScoreAvg))
		maxScores = append(maxScores, Number(val.ScoreMax))
		errorCodes = append(errorCodes, Text(strings.TrimSuffix(val.Error, " ERROR")))
		eyes = append(eyes, Text(val.TrackedEye))
	}
	eyes = append(eyes, Text(md.TrackedEye))

	measurements := []Measurement{
		Evaluate("Number of calibrations", []Value{Number(float64(len(md.Calibrations)))}, th.Calibrations),
		Evaluate("Number of validations", []Value{Number(float64(len(md.Validations)))}, th.Validations),
		Evaluate("AVG validation scores", avgScores, th.AvgScores),
		Evaluate("MAX validation scores", maxScores, th.MaxScores),
		Evaluate("Validation errors", errorCodes, th.ValidationErrors),
		Evaluate("Tracked eye", eyes, th.TrackedEye),
		Evaluate("Data loss ratio", []Value{Number(md.DataLossRatio)}, th.DataLoss),
		Evaluate("Data loss ratio due to blinks", []Value{Number(md.DataLossRatioBlinks)}, th.DataLossBlinks),
		Evaluate("Total recording duration", []Value{Number(md.TotalRecordingDurationMS / 1000)}, th.RecordingDuration),
		Evaluate("Sampling rate", []Value{Number(md.SamplingRate)}, th.SamplingRate),
	}
	for i := range measurements {
		switch measurements[i].Name {
		case "Data loss ratio", "Data loss ratio due to blinks":
			measurements[i].Percentage = true
		}
	}
	return measurements
}

// CheckTrialCounts evaluates observed practice and experiment trial counts
// against the configured expectations.
func CheckTrialCounts(practice, experiment int, th Thresholds) []Measurement {
	return []Measurement{
		Evaluate("Number of practice trials", []Value{Number(float64(practice))}, th.PracticeTrials),
		Evaluate("Number of experiment trials", []Value{Number(float64(experiment))}, th.ExperimentTrials),
	}
}
