// Package quality computes timing summaries and classifies signal-quality
// metrics against configured acceptable specifications.
//
// Every metric in the session report follows one rule: a measured value list
// passes iff all values satisfy the acceptable spec, which has exactly three
// shapes - a discrete set of allowed values, a closed numeric range, or a
// single required scalar. Durations are summed from the matcher's element
// timings and rendered as zero-padded HH:MM:SS clocks (truncated to whole
// seconds, hours wrapping at 24).
package quality
