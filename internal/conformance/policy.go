package conformance

import "fmt"

// DuplicatePolicy decides which occurrence wins when the same sub-event
// marker appears more than once inside a search window, which happens when a
// recalibration re-triggers recording for a page.
type DuplicatePolicy string

const (
	// PolicyFirst uses the first occurrence at or after the last matched
	// index. Retried pages are absorbed silently.
	PolicyFirst DuplicatePolicy = "first"
	// PolicyLast uses the last occurrence in the window, so durations span
	// the final retry.
	PolicyLast DuplicatePolicy = "last"
	// PolicyFlagDuplicate behaves like PolicyFirst but records an
	// informational finding for every extra occurrence.
	PolicyFlagDuplicate DuplicatePolicy = "flag-duplicate"
)

// ParseDuplicatePolicy validates a policy name from configuration.
func ParseDuplicatePolicy(name string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(name) {
	case PolicyFirst, PolicyLast, PolicyFlagDuplicate:
		return DuplicatePolicy(name), nil
	case "":
		return PolicyFirst, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q (use %s, %s, or %s)",
			name, PolicyFirst, PolicyLast, PolicyFlagDuplicate)
	}
}
