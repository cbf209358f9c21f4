package testsupport

import (
	"fmt"
	"strconv"
	"strings"

	"gazecheck/internal/asclog"
	"gazecheck/internal/protocol"
)

// LogBuilder assembles a synthetic tracker message sequence with strictly
// increasing timestamps.
type LogBuilder struct {
	next     float64
	step     float64
	messages []asclog.Message
}

// NewLogBuilder starts a log at device clock 1_000_000 with 500 ms between
// consecutive messages.
func NewLogBuilder() *LogBuilder {
	return &LogBuilder{next: 1_000_000, step: 500}
}

// Add appends a message at the next clock tick.
func (b *LogBuilder) Add(text string) *LogBuilder {
	b.messages = append(b.messages, asclog.Message{Timestamp: b.next, Text: text})
	b.next += b.step
	return b
}

// Addf appends a formatted message at the next clock tick.
func (b *LogBuilder) Addf(format string, args ...any) *LogBuilder {
	return b.Add(fmt.Sprintf(format, args...))
}

// Advance moves the clock forward without emitting a message.
func (b *LogBuilder) Advance(millis float64) *LogBuilder {
	b.next += millis
	return b
}

// Messages returns the built sequence.
func (b *LogBuilder) Messages() []asclog.Message {
	return b.messages
}

// ASCText renders the sequence as raw ASC log text, with a sample line
// interleaved so reader tests exercise line skipping.
func (b *LogBuilder) ASCText() string {
	var sb strings.Builder
	sb.WriteString("** CONVERTED FROM session.edf\n")
	for i, msg := range b.messages {
		ts := strconv.FormatFloat(msg.Timestamp, 'f', -1, 64)
		fmt.Fprintf(&sb, "MSG\t%s %s\n", ts, msg.Text)
		if i%7 == 0 {
			fmt.Fprintf(&sb, "%s\t  512.3\t  384.1\t 1020.0\t...\n", ts)
		}
	}
	return sb.String()
}

// CompleteSession emits a log in which every element of the template is
// present, in canonical order: one-time opening screens, then each trial's
// validation, rating screens, page and question recordings, with the
// transition screen after the practice block, an obligatory break after the
// first experiment trial, and the final validation at the end.
func CompleteSession(template *protocol.Template) *LogBuilder {
	b := NewLogBuilder()

	b.Add("welcome_screen")
	b.Add("informed_consent_screen")
	b.Add("start_experiment")
	b.Add("stimulus_order_version 3")
	b.Add("showing_instruction_screen_1")
	b.Add("showing_instruction_screen_2")
	b.Add("showing_instruction_screen_3")
	b.Add("camera_setup_screen")
	b.Add("practice_text_starting_screen")

	practiceDone := false
	breakDone := false
	for _, trial := range template.Trials {
		if practiceDone && !trial.Practice {
			b.Add("transition_screen")
			practiceDone = false
		}

		b.Add("validation_before_stimulus")
		for _, element := range trial.Elements {
			switch element.Kind {
			case protocol.KindRating:
				b.Add(element.Name)
			case protocol.KindPage, protocol.KindQuestion:
				for _, pattern := range element.SubEvents {
					b.Add(pattern)
				}
			}
		}

		if trial.Practice {
			practiceDone = true
		} else if !breakDone {
			b.Add("obligatory_break")
			b.Add("empty_screen")
			b.Add("obligatory_break 240000")
			b.Add("obligatory_break_end")
			breakDone = true
		}
	}

	b.Add("final_validation")
	b.Add("show_final_screen")
	return b
}
