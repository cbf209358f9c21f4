// Package protocol reconstructs the expected event sequence for one
// experiment session.
//
// Given the session's completed-stimuli order and the stimulus catalog, the
// builder produces a Template: practice trials first, then experiment trials,
// each trial carrying its recurring rating screens, pages, comprehension
// questions, and a validation checkpoint, followed by the session-level
// one-time screens. Every page and question element lists the literal
// recording markers the matcher must find in the log, in order.
package protocol
