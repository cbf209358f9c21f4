// Package session orchestrates one full check of a recorded experiment
// session: it reads the event log, builds the expected protocol, runs the
// conformance matcher, evaluates signal-quality metrics, and emits the
// report. Batches of sessions run concurrently with one worker per
// session; sessions share nothing but the read-only stimulus catalog.
package session
