// Package tracker models the eye-tracking device a session was recorded
// with.
//
// Device-specific behavior is resolved once, at session construction, into a
// Capabilities value drawn from a closed set of tracker kinds; nothing
// downstream re-inspects tracker-type strings. The package also loads the
// recording metadata block (calibrations, validations, data-loss ratios,
// sampling rate) that the quality checks evaluate.
package tracker
