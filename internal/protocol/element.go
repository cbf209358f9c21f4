package protocol

import "fmt"

// Kind identifies the variant of a protocol element.
type Kind string

const (
	// KindPage is one text page with start/onset/offset/stop recording markers.
	KindPage Kind = "page"
	// KindQuestion is one comprehension question screen with recording markers.
	KindQuestion Kind = "question"
	// KindRating is a recurring per-trial rating or instruction screen checked
	// for literal presence in the trial window.
	KindRating Kind = "rating"
	// KindInstruction is a one-time session-level screen checked for presence
	// (exact or prefix match) anywhere in the log.
	KindInstruction Kind = "instruction"
	// KindValidation is a checkpoint satisfied by either a
	// validation-before-stimulus or final-validation marker in the window.
	KindValidation Kind = "validation"
)

// BreakKind distinguishes the two break screens the experiment can show.
type BreakKind string

const (
	BreakOptional   BreakKind = "optional"
	BreakObligatory BreakKind = "obligatory"
)

// Element is one expected, checkable unit of the experiment flow.
type Element struct {
	Kind Kind

	// Trial is the 1-based trial number within its block; zero for
	// session-level elements.
	Trial    int
	Practice bool

	StimulusID   int
	StimulusName string

	// PageNumber is set for KindPage.
	PageNumber int
	// QuestionID is set for KindQuestion, with leading zeros already
	// stripped to match screen names in the log.
	QuestionID string
	// Name is set for KindRating and KindInstruction.
	Name string

	// SubEvents lists the required message patterns for this element, in the
	// order the matcher must find them. KindValidation lists its alternative
	// markers instead; either one satisfies the checkpoint.
	SubEvents []string
}

// Label names the element for findings and reports.
func (e Element) Label() string {
	switch e.Kind {
	case KindPage:
		return fmt.Sprintf("%s page_%d", e.StimulusName, e.PageNumber)
	case KindQuestion:
		return fmt.Sprintf("%s question_%s", e.StimulusName, e.QuestionID)
	case KindRating:
		return fmt.Sprintf("%s %s", e.StimulusName, e.Name)
	case KindInstruction:
		return e.Name
	case KindValidation:
		if e.Trial == 0 {
			return "final validation"
		}
		return fmt.Sprintf("%s validation checkpoint", e.StimulusName)
	default:
		return string(e.Kind)
	}
}

// ValidationMarkers are the alternative messages satisfying a validation
// checkpoint.
var ValidationMarkers = []string{"validation_before_stimulus", "final_validation"}
