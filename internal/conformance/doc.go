// Package conformance diffs the observed message sequence of a session
// against its protocol template.
//
// The matcher is a single forward scan: each page and question element is a
// small sub-event state machine (start-recording, image onset, image offset,
// stop-recording) whose matches must advance monotonically through the log.
// Each trial's search window is bounded by the next trial's opening marker.
// Everything the matcher observes - missing sub-events, missing screens,
// optional-screen occurrences, timestamp anomalies - is appended to an
// in-memory finding list; the matcher never mutates the messages or the
// template, so matching the same inputs twice yields identical results.
package conformance
