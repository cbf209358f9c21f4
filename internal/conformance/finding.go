package conformance

// Severity classifies a finding. Warnings mark protocol deviations the
// session survives; informational findings record observations and optional
// events.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is one recorded conformance or data-quality observation. Findings
// are append-only: created during matching or aggregation, then only
// collected and serialized.
type Finding struct {
	Severity Severity
	// Subject names the protocol element or metric the finding is about.
	Subject string
	Message string
	// Index is the message index the finding refers to, or -1 when it does
	// not point at a single log position.
	Index int
	// Timestamp is the device clock value at Index, zero when unknown.
	Timestamp float64
}

// Warning builds a warning finding without a log position.
func Warning(subject, message string) Finding {
	return Finding{Severity: SeverityWarning, Subject: subject, Message: message, Index: -1}
}

// Info builds an informational finding without a log position.
func Info(subject, message string) Finding {
	return Finding{Severity: SeverityInfo, Subject: subject, Message: message, Index: -1}
}

// At pins the finding to a log position.
func (f Finding) At(index int, timestamp float64) Finding {
	f.Index = index
	f.Timestamp = timestamp
	return f
}
