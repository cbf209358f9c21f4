package quality

import (
	"fmt"
	"strings"
)

// Measurement is one evaluated metric line of the session report.
type Measurement struct {
	Name       string
	Values     []Value
	Acceptable AcceptableSpec
	Passed     bool
	// Percentage renders the values as percentages (value*100) in the report.
	Percentage bool
}

// Evaluate classifies the values against the spec. All values must be
// allowed for the measurement to pass; an empty value list fails.
func Evaluate(name string, values []Value, spec AcceptableSpec) Measurement {
	m := Measurement{Name: name, Values: values, Acceptable: spec}
	if len(values) == 0 {
		return m
	}
	for _, v := range values {
		if !spec.Allows(v) {
			return m
		}
	}
	m.Passed = true
	return m
}

// RenderValues joins the measured values for display, applying percentage
// formatting when requested.
func (m Measurement) RenderValues() string {
	parts := make([]string, 0, len(m.Values))
	for _, v := range m.Values {
		if m.Percentage {
			if num, ok := v.Num(); ok {
				parts = append(parts, fmt.Sprintf("%.2f%%", num*100))
				continue
			}
		}
		parts = append(parts, v.String())
	}
	return strings.Join(parts, ", ")
}
