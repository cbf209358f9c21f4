package tracker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Calibration is one calibration procedure recorded in the metadata block.
type Calibration struct {
	Timestamp float64 `json:"timestamp"`
}

// Validation is one validation procedure with its error scores. Error holds
// the device's verdict string (e.g. "GOOD ERROR").
type Validation struct {
	Timestamp  float64 `json:"timestamp"`
	ScoreAvg   float64 `json:"validation_score_avg"`
	ScoreMax   float64 `json:"validation_score_max"`
	Error      string  `json:"error"`
	TrackedEye string  `json:"tracked_eye"`
}

// Metadata is the recording metadata block for one session.
type Metadata struct {
	Calibrations             []Calibration `json:"calibrations"`
	Validations              []Validation  `json:"validations"`
	DataLossRatio            float64       `json:"data_loss_ratio"`
	DataLossRatioBlinks      float64       `json:"data_loss_ratio_blinks"`
	TotalRecordingDurationMS float64       `json:"total_recording_duration_ms"`
	SamplingRate             float64       `json:"sampling_rate"`
	TrackedEye               string        `json:"tracked_eye"`
}

// LoadMetadata reads a session metadata JSON file. Numeric fields tolerate
// string encoding: ASC-derived metadata frequently quotes its numbers.
func LoadMetadata(path string) (*Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open metadata: %w", err)
	}
	md, err := ParseMetadata(raw)
	if err != nil {
		return nil, fmt.Errorf("metadata %s: %w", path, err)
	}
	return md, nil
}

// ParseMetadata decodes a metadata JSON document.
func ParseMetadata(raw []byte) (*Metadata, error) {
	var doc struct {
		Calibrations []struct {
			Timestamp flexFloat `json:"timestamp"`
		} `json:"calibrations"`
		Validations []struct {
			Timestamp  flexFloat `json:"timestamp"`
			ScoreAvg   flexFloat `json:"validation_score_avg"`
			ScoreMax   flexFloat `json:"validation_score_max"`
			Error      string    `json:"error"`
			TrackedEye string    `json:"tracked_eye"`
		} `json:"validations"`
		DataLossRatio            flexFloat `json:"data_loss_ratio"`
		DataLossRatioBlinks      flexFloat `json:"data_loss_ratio_blinks"`
		TotalRecordingDurationMS flexFloat `json:"total_recording_duration_ms"`
		SamplingRate             flexFloat `json:"sampling_rate"`
		TrackedEye               string    `json:"tracked_eye"`
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}

	md := &Metadata{
		DataLossRatio:            float64(doc.DataLossRatio),
		DataLossRatioBlinks:      float64(doc.DataLossRatioBlinks),
		TotalRecordingDurationMS: float64(doc.TotalRecordingDurationMS),
		SamplingRate:             float64(doc.SamplingRate),
		TrackedEye:               strings.TrimSpace(doc.TrackedEye),
	}
	for _, cal := range doc.Calibrations {
		md.Calibrations = append(md.Calibrations, Calibration{Timestamp: float64(cal.Timestamp)})
	}
	for _, val := range doc.Validations {
		md.Validations = append(md.Validations, Validation{
			Timestamp:  float64(val.Timestamp),
			ScoreAvg:   float64(val.ScoreAvg),
			ScoreMax:   float64(val.ScoreMax),
			Error:      strings.TrimSpace(val.Error),
			TrackedEye: strings.TrimSpace(val.TrackedEye),
		})
	}
	return md, nil
}

// flexFloat decodes JSON numbers that may arrive quoted.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = 0
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("parse %q as number: %w", s, err)
		}
		*f = flexFloat(parsed)
		return nil
	}
	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}
