package asclog

// Message is a single timestamped marker event from the tracker log.
// Messages are immutable once parsed; downstream consumers read them in the
// log's natural order.
type Message struct {
	// Timestamp is the device clock value in milliseconds, kept exactly as
	// written in the log (it may carry a fractional part).
	Timestamp float64
	// Text is the free-text payload following the timestamp.
	Text string
}
