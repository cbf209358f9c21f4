package tracker

import (
	"fmt"
	"strings"
)

// Kind identifies a supported eye-tracker family.
type Kind string

const (
	// KindEyeLink covers EyeLink devices recording ASC-converted logs.
	KindEyeLink Kind = "eyelink"
)

// Capabilities describes everything session processing needs to know about a
// tracker kind. Resolved once per session; immutable afterwards.
type Capabilities struct {
	Kind Kind
	// MessageMarker is the line prefix identifying marker lines in the log.
	MessageMarker string
	// ProvidesValidationScores reports whether the device emits
	// avg/max validation error scores in its metadata block.
	ProvidesValidationScores bool
}

// Resolve maps a tracker name from configuration to its capabilities.
// Unknown names are an error listing the supported set.
func Resolve(name string) (Capabilities, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(name))) {
	case KindEyeLink, "":
		return Capabilities{
			Kind:                     KindEyeLink,
			MessageMarker:            "MSG",
			ProvidesValidationScores: true,
		}, nil
	default:
		return Capabilities{}, fmt.Errorf("unsupported tracker %q (supported: %s)", name, KindEyeLink)
	}
}
