// Package asclog parses the raw event log produced by an eye tracker during
// a recording session.
//
// Only timestamped marker lines (MSG lines in EyeLink ASC output) are of
// interest here; physiological sample lines are skipped without comment. The
// resulting message sequence preserves file order and keeps device-clock
// timestamps exactly as written, so downstream conformance and timing checks
// see the log the way the device produced it.
package asclog
