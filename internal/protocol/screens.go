package protocol

// RecurringScreens are shown once per trial and checked for literal presence
// inside the trial window.
var RecurringScreens = []string{
	"showing_subject_difficulty_screen",
	"showing_familiarity_rating_screen_1",
	"showing_familiarity_rating_screen_2",
}

// OneTimeScreens appear exactly once per session, outside any trial window.
// Presence is checked over the whole message sequence by exact or prefix
// match (some carry trailing payloads, e.g. stimulus_order_version).
var OneTimeScreens = []string{
	"welcome_screen",
	"informed_consent_screen",
	"start_experiment",
	"stimulus_order_version",
	"showing_instruction_screen_1",
	"showing_instruction_screen_2",
	"showing_instruction_screen_3",
	"camera_setup_screen",
	"practice_text_starting_screen",
	"transition_screen",
	"final_validation",
	"show_final_screen",
	"obligatory_break",
	"obligatory_break_end",
}

// OptionalScreens may legitimately be absent. Occurrences are reported as
// informational findings, never as missing elements.
var OptionalScreens = []string{
	"empty_screen",
	"optional_break_screen",
	"fixation_trigger:skipped_by_experimenter",
	"fixation_trigger:experimenter_calibration_triggered",
	"optional_break",
	"optional_break_duration",
	"obligatory_break",
	"recalibration",
}

// breakScreens carry a `<label> <milliseconds>` duration payload two
// messages after the marker.
var breakScreens = map[string]BreakKind{
	"optional_break":   BreakOptional,
	"obligatory_break": BreakObligatory,
}

// BreakKindFor reports whether the named optional screen is a break screen
// with an embedded duration payload.
func BreakKindFor(screen string) (BreakKind, bool) {
	kind, ok := breakScreens[screen]
	return kind, ok
}
