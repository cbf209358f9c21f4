package conformance

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"gazecheck/internal/asclog"
	"gazecheck/internal/protocol"
)

// ElementTiming is the matched start/stop timestamp pair for one page or
// question element. Complete is false when either boundary marker was
// missing; such elements contribute zero duration downstream.
type ElementTiming struct {
	Element  protocol.Element
	StartTS  float64
	StopTS   float64
	Complete bool
}

// Result collects everything one matching pass produced.
type Result struct {
	Findings []Finding
	Timings  []ElementTiming
}

func (r *Result) warn(f Finding) {
	f.Severity = SeverityWarning
	r.Findings = append(r.Findings, f)
}

func (r *Result) info(f Finding) {
	f.Severity = SeverityInfo
	r.Findings = append(r.Findings, f)
}

// Warnings counts warning-severity findings.
func (r *Result) Warnings() int {
	count := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			count++
		}
	}
	return count
}

// Matcher scans a message sequence against a protocol template. It holds no
// mutable matching state; Run may be called repeatedly with identical
// results.
type Matcher struct {
	messages []asclog.Message
	template *protocol.Template
	policy   DuplicatePolicy
	logger   *slog.Logger
}

// Option customises the Matcher.
type Option func(*Matcher)

// WithDuplicatePolicy overrides the duplicate-marker policy.
func WithDuplicatePolicy(policy DuplicatePolicy) Option {
	return func(m *Matcher) {
		if policy != "" {
			m.policy = policy
		}
	}
}

// WithLogger attaches a logger for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMatcher builds a matcher over the given messages and template.
func NewMatcher(messages []asclog.Message, template *protocol.Template, opts ...Option) *Matcher {
	m := &Matcher{
		messages: messages,
		template: template,
		policy:   PolicyFirst,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run performs one full conformance pass.
func (m *Matcher) Run() *Result {
	result := &Result{}

	m.checkTimestampOrder(result)

	cursor := 0
	for i, trial := range m.template.Trials {
		windowEnd := len(m.messages)
		if i+1 < len(m.template.Trials) {
			if idx := m.findFrom(cursor, len(m.messages), m.template.Trials[i+1].AnchorPattern()); idx >= 0 {
				windowEnd = idx
			}
		}
		m.matchTrial(result, trial, &cursor, windowEnd)
	}

	m.checkOneTimeScreens(result)
	m.reportOptionalScreens(result)
	return result
}

func (m *Matcher) matchTrial(result *Result, trial protocol.Trial, cursor *int, windowEnd int) {
	m.logger.Debug("matching trial",
		slog.Int("trial", trial.Number),
		slog.Bool("practice", trial.Practice),
		slog.String("stimulus", trial.Stimulus.Name))

	m.reportTrialDuration(result, trial, *cursor, windowEnd)

	for _, element := range trial.Elements {
		switch element.Kind {
		case protocol.KindRating:
			if m.findFrom(*cursor, windowEnd, element.Name) < 0 {
				result.warn(Warning(element.Label(), fmt.Sprintf("missing instruction screen %s", element.Name)))
			}
		case protocol.KindPage, protocol.KindQuestion:
			result.Timings = append(result.Timings, m.matchSubEvents(result, element, cursor, windowEnd))
		case protocol.KindValidation:
			if !m.anyPresent(*cursor, windowEnd, element.SubEvents) {
				result.warn(Warning(element.Label(), "missing validation_before_stimulus screen"))
			}
		}
	}
}

// matchSubEvents drives the element's sub-event sequence forward from the
// cursor. Each match advances the cursor past the chosen occurrence; a miss
// leaves the cursor alone so later sub-events can still be located.
func (m *Matcher) matchSubEvents(result *Result, element protocol.Element, cursor *int, windowEnd int) ElementTiming {
	timing := ElementTiming{Element: element}
	var haveStart, haveStop bool

	last := len(element.SubEvents) - 1
	for i, pattern := range element.SubEvents {
		idx := m.pickOccurrence(result, element, pattern, *cursor, windowEnd)
		if idx < 0 {
			result.warn(Warning(element.Label(), fmt.Sprintf("missing %s", pattern)))
			continue
		}
		*cursor = idx + 1
		switch i {
		case 0:
			timing.StartTS = m.messages[idx].Timestamp
			haveStart = true
		case last:
			timing.StopTS = m.messages[idx].Timestamp
			haveStop = true
		}
	}

	timing.Complete = haveStart && haveStop
	return timing
}

// pickOccurrence applies the duplicate policy to all occurrences of pattern
// inside [from, windowEnd). Returns -1 when absent.
func (m *Matcher) pickOccurrence(result *Result, element protocol.Element, pattern string, from, windowEnd int) int {
	var occurrences []int
	for i := from; i < windowEnd; i++ {
		if strings.Contains(m.messages[i].Text, pattern) {
			occurrences = append(occurrences, i)
			if m.policy == PolicyFirst && len(occurrences) == 1 {
				return i
			}
		}
	}
	if len(occurrences) == 0 {
		return -1
	}

	switch m.policy {
	case PolicyLast:
		return occurrences[len(occurrences)-1]
	case PolicyFlagDuplicate:
		for _, extra := range occurrences[1:] {
			result.info(Info(element.Label(),
				fmt.Sprintf("duplicate marker %s", pattern)).At(extra, m.messages[extra].Timestamp))
		}
		return occurrences[0]
	default:
		return occurrences[0]
	}
}

// reportTrialDuration mirrors the per-trial reading-block timing lines of the
// session report: time from the trial's opening marker to the next trial's
// opening marker, with an obligatory break in between reported separately.
func (m *Matcher) reportTrialDuration(result *Result, trial protocol.Trial, cursor, windowEnd int) {
	startIdx := m.findFrom(cursor, windowEnd, trial.AnchorPattern())
	if startIdx < 0 || len(m.messages) == 0 {
		return
	}
	startTS := m.messages[startIdx].Timestamp

	endIdx := windowEnd
	if endIdx >= len(m.messages) {
		endIdx = len(m.messages) - 1
	}
	endTS := m.messages[endIdx].Timestamp

	subject := trialSubject(trial)
	breakIdx := m.findExact(startIdx+1, windowEnd, "obligatory_break")
	if breakIdx >= 0 {
		breakTS := m.messages[breakIdx].Timestamp
		result.info(Info(subject,
			fmt.Sprintf("reading block lasted %.2f minutes", minutesBetween(startTS, breakTS))).At(startIdx, startTS))
		result.info(Info(subject,
			fmt.Sprintf("obligatory break lasted %.2f minutes", minutesBetween(breakTS, endTS))).At(breakIdx, breakTS))
		return
	}
	result.info(Info(subject,
		fmt.Sprintf("reading block lasted %.2f minutes", minutesBetween(startTS, endTS))).At(startIdx, startTS))
}

func (m *Matcher) checkOneTimeScreens(result *Result) {
	for _, element := range m.template.OneTime {
		found := false
		for _, msg := range m.messages {
			if msg.Text == element.Name || strings.HasPrefix(msg.Text, element.Name) {
				found = true
				break
			}
		}
		if !found {
			result.warn(Warning(element.Name, fmt.Sprintf("missing one-time screen %s", element.Name)))
		}
	}
}

func (m *Matcher) reportOptionalScreens(result *Result) {
	for _, screen := range protocol.OptionalScreens {
		var indices []int
		for i, msg := range m.messages {
			if msg.Text == screen {
				indices = append(indices, i)
			}
		}
		if len(indices) == 0 {
			continue
		}
		result.info(Info(screen, fmt.Sprintf("found %d times", len(indices))))

		for _, idx := range indices {
			if _, isBreak := protocol.BreakKindFor(screen); isBreak {
				if label, seconds, ok := m.breakDuration(idx); ok {
					result.info(Info(screen,
						fmt.Sprintf("%s lasting %.2f seconds", label, seconds)).At(idx+2, m.messages[idx+2].Timestamp))
					continue
				}
			}
			result.info(Info(screen, "observed").At(idx, m.messages[idx].Timestamp))
		}
	}
}

// breakDuration reads the `<label> <milliseconds>` payload the presentation
// software logs two messages after a break marker.
func (m *Matcher) breakDuration(breakIdx int) (string, float64, bool) {
	payloadIdx := breakIdx + 2
	if payloadIdx >= len(m.messages) {
		return "", 0, false
	}
	fields := strings.Fields(m.messages[payloadIdx].Text)
	if len(fields) < 2 {
		return "", 0, false
	}
	millis, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return "", 0, false
	}
	return fields[0], millis / 1000, true
}

func (m *Matcher) checkTimestampOrder(result *Result) {
	violations := 0
	firstIdx := -1
	for i := 1; i < len(m.messages); i++ {
		if m.messages[i].Timestamp < m.messages[i-1].Timestamp {
			violations++
			if firstIdx < 0 {
				firstIdx = i
			}
		}
	}
	if violations > 0 {
		result.info(Info("timestamps",
			fmt.Sprintf("non-monotonic timestamps at %d positions", violations)).
			At(firstIdx, m.messages[firstIdx].Timestamp))
	}
}

// findFrom returns the first message index in [from, to) containing pattern
// as a substring, or -1.
func (m *Matcher) findFrom(from, to int, pattern string) int {
	for i := from; i < to; i++ {
		if strings.Contains(m.messages[i].Text, pattern) {
			return i
		}
	}
	return -1
}

// findExact returns the first message index in [from, to) whose text equals
// pattern, or -1.
func (m *Matcher) findExact(from, to int, pattern string) int {
	for i := from; i < to; i++ {
		if m.messages[i].Text == pattern {
			return i
		}
	}
	return -1
}

func (m *Matcher) anyPresent(from, to int, patterns []string) bool {
	for _, pattern := range patterns {
		if m.findFrom(from, to, pattern) >= 0 {
			return true
		}
	}
	return false
}

func minutesBetween(fromTS, toTS float64) float64 {
	return (toTS - fromTS) / 60000
}

func trialSubject(trial protocol.Trial) string {
	if trial.Practice {
		return fmt.Sprintf("practice trial %d (%s)", trial.Number, trial.Stimulus.Name)
	}
	return fmt.Sprintf("trial %d (%s)", trial.Number, trial.Stimulus.Name)
}
