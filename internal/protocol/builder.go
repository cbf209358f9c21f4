package protocol

import (
	"fmt"
	"strings"

	"gazecheck/internal/stimulus"
)

// Trial is one stimulus presentation unit of the template.
type Trial struct {
	// Number is 1-based within its block: practice trials and experiment
	// trials are numbered independently, matching the recording markers the
	// presentation software writes.
	Number   int
	Practice bool
	Stimulus *stimulus.Stimulus

	// Elements in canonical order: recurring rating screens, pages ascending,
	// questions ascending, validation checkpoint.
	Elements []Element
}

// AnchorPattern is the marker opening the trial: the start-recording message
// of its first page. The matcher uses the next trial's anchor to bound the
// current trial's search window.
func (t Trial) AnchorPattern() string {
	return recordingMarker("start_recording", t.Practice, t.Number, t.Stimulus, "page_1")
}

// Template is the expected ordered protocol for one session. Immutable once
// built.
type Template struct {
	Trials  []Trial
	OneTime []Element
}

// PracticeTrials counts the practice trials in the template.
func (t *Template) PracticeTrials() int {
	count := 0
	for _, trial := range t.Trials {
		if trial.Practice {
			count++
		}
	}
	return count
}

// ExperimentTrials counts the experiment trials in the template.
func (t *Template) ExperimentTrials() int {
	return len(t.Trials) - t.PracticeTrials()
}

// Builder constructs session templates from a shared stimulus catalog.
type Builder struct {
	catalog *stimulus.Catalog
}

// NewBuilder returns a Builder over the given catalog.
func NewBuilder(catalog *stimulus.Catalog) *Builder {
	return &Builder{catalog: catalog}
}

// Build produces the template for a session whose ledger lists the given
// stimulus ids in presentation order. Practice trials are emitted first.
// An id missing from the catalog fails the whole build: the template cannot
// be trusted without it.
func (b *Builder) Build(order []int) (*Template, error) {
	if len(order) == 0 {
		return nil, fmt.Errorf("stimulus order is empty")
	}

	var practice, experiment []*stimulus.Stimulus
	for _, id := range order {
		stim, err := b.catalog.ByID(id)
		if err != nil {
			return nil, fmt.Errorf("build template: %w", err)
		}
		if stim.Practice() {
			practice = append(practice, stim)
		} else {
			experiment = append(experiment, stim)
		}
	}

	template := &Template{}
	for i, stim := range practice {
		template.Trials = append(template.Trials, buildTrial(i+1, true, stim))
	}
	for i, stim := range experiment {
		template.Trials = append(template.Trials, buildTrial(i+1, false, stim))
	}
	for _, name := range OneTimeScreens {
		template.OneTime = append(template.OneTime, Element{
			Kind: KindInstruction,
			Name: name,
		})
	}
	return template, nil
}

func buildTrial(number int, practice bool, stim *stimulus.Stimulus) Trial {
	trial := Trial{Number: number, Practice: practice, Stimulus: stim}

	for _, name := range RecurringScreens {
		trial.Elements = append(trial.Elements, ratingElement(number, practice, stim, name))
	}
	for _, rating := range stim.Ratings {
		trial.Elements = append(trial.Elements, ratingElement(number, practice, stim, rating.Name))
	}

	for _, page := range stim.Pages {
		screen := fmt.Sprintf("page_%d", page.Number)
		trial.Elements = append(trial.Elements, Element{
			Kind:         KindPage,
			Trial:        number,
			Practice:     practice,
			StimulusID:   stim.ID,
			StimulusName: stim.Name,
			PageNumber:   page.Number,
			SubEvents: []string{
				recordingMarker("start_recording", practice, number, stim, screen),
				"page_screen_image_onset",
				"page_screen_image_offset",
				recordingMarker("stop_recording", practice, number, stim, screen),
			},
		})
	}

	for _, question := range stim.Questions {
		qid := NormalizeQuestionID(question.ID)
		screen := fmt.Sprintf("question_%s", qid)
		trial.Elements = append(trial.Elements, Element{
			Kind:         KindQuestion,
			Trial:        number,
			Practice:     practice,
			StimulusID:   stim.ID,
			StimulusName: stim.Name,
			QuestionID:   qid,
			SubEvents: []string{
				recordingMarker("start_recording", practice, number, stim, screen),
				"question_screen_image_onset",
				"question_screen_image_offset",
				recordingMarker("stop_recording", practice, number, stim, screen),
			},
		})
	}

	trial.Elements = append(trial.Elements, Element{
		Kind:         KindValidation,
		Trial:        number,
		Practice:     practice,
		StimulusID:   stim.ID,
		StimulusName: stim.Name,
		SubEvents:    append([]string(nil), ValidationMarkers...),
	})

	return trial
}

func ratingElement(number int, practice bool, stim *stimulus.Stimulus, name string) Element {
	return Element{
		Kind:         KindRating,
		Trial:        number,
		Practice:     practice,
		StimulusID:   stim.ID,
		StimulusName: stim.Name,
		Name:         name,
	}
}

func recordingMarker(prefix string, practice bool, trial int, stim *stimulus.Stimulus, screen string) string {
	if practice {
		return fmt.Sprintf("%s_PRACTICE_trial_%d_stimulus_%s_%d_%s", prefix, trial, stim.Name, stim.ID, screen)
	}
	return fmt.Sprintf("%s_trial_%d_stimulus_%s_%d_%s", prefix, trial, stim.Name, stim.ID, screen)
}

// NormalizeQuestionID strips leading zeros from a catalog question id, the
// way screen names appear in the log. An all-zero id collapses to "0".
func NormalizeQuestionID(id string) string {
	trimmed := strings.TrimLeft(strings.TrimSpace(id), "0")
	if trimmed == "" {
		if strings.TrimSpace(id) == "" {
			return ""
		}
		return "0"
	}
	return trimmed
}
