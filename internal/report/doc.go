// Package report serializes findings, metric measurements, and timing
// breakdowns into the per-session report document and its tabular
// exports.
package report
