package stimulus

import "errors"

// Type distinguishes practice stimuli from experiment stimuli. Practice
// trials always precede experiment trials in the protocol.
type Type string

const (
	TypeExperiment Type = "experiment"
	TypePractice   Type = "practice"
)

// ErrUnknownStimulus indicates a stimulus id that is absent from the catalog.
// The protocol template cannot be trusted without it, so sessions treat this
// as fatal.
var ErrUnknownStimulus = errors.New("unknown stimulus")

// Page is one text page of a stimulus.
type Page struct {
	Number int
}

// Question is one comprehension question. The id is kept as written in the
// catalog; screen names in the log strip leading zeros, which the protocol
// builder handles.
type Question struct {
	ID   string
	Text string
}

// RatingScreen is an extra per-trial rating screen declared by the catalog,
// beyond the standard recurring screens every trial carries.
type RatingScreen struct {
	Name string
}

// Stimulus describes one presentable stimulus.
type Stimulus struct {
	ID        int
	Name      string
	Type      Type
	Pages     []Page
	Questions []Question
	Ratings   []RatingScreen
}

// Practice reports whether the stimulus belongs to the practice block.
func (s *Stimulus) Practice() bool {
	return s.Type == TypePractice
}
