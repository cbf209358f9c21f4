package asclog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrEmptyLog indicates that no marker lines were found in the log. A session
// without messages cannot be conformance-checked at all, so callers treat this
// as fatal for the session.
var ErrEmptyLog = errors.New("no messages found in log")

// DefaultMarker is the line prefix identifying marker lines in EyeLink ASC
// output.
const DefaultMarker = "MSG"

// Options controls log parsing.
type Options struct {
	// Marker is the line prefix identifying message lines. Defaults to
	// DefaultMarker when empty.
	Marker string
}

func (o Options) marker() string {
	if strings.TrimSpace(o.Marker) == "" {
		return DefaultMarker
	}
	return strings.TrimSpace(o.Marker)
}

// maxLineBytes bounds a single log line. ASC sample lines stay well under
// this; marker payloads are short free text.
const maxLineBytes = 1 << 20

// Read parses every marker line from r, in order. Lines that do not match
// `<marker> <timestamp> <free text>` are skipped silently: they are sample
// records outside this engine's scope. Read returns ErrEmptyLog when the
// input contains no marker lines.
func Read(r io.Reader, opts Options) ([]Message, error) {
	marker := opts.marker()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var messages []Message
	for scanner.Scan() {
		if msg, ok := parseLine(scanner.Text(), marker); ok {
			messages = append(messages, msg)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan log: %w", err)
	}
	if len(messages) == 0 {
		return nil, ErrEmptyLog
	}
	return messages, nil
}

// ReadFile parses the log file at path. See Read.
func ReadFile(path string, opts Options) ([]Message, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	messages, err := Read(file, opts)
	if err != nil {
		if errors.Is(err, ErrEmptyLog) {
			return nil, fmt.Errorf("%w: %s", ErrEmptyLog, path)
		}
		return nil, err
	}
	return messages, nil
}

func parseLine(line, marker string) (Message, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, marker) {
		return Message{}, false
	}
	rest := trimmed[len(marker):]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return Message{}, false
	}
	rest = strings.TrimLeft(rest, " \t")

	tsToken := rest
	text := ""
	if idx := strings.IndexAny(rest, " \t"); idx >= 0 {
		tsToken = rest[:idx]
		text = strings.TrimLeft(rest[idx:], " \t")
	}

	// ParseFloat accepts "NaN" and "Inf" tokens, which are never valid
	// tracker timestamps.
	ts, err := strconv.ParseFloat(tsToken, 64)
	if err != nil || ts < 0 || math.IsNaN(ts) || math.IsInf(ts, 0) {
		return Message{}, false
	}
	return Message{Timestamp: ts, Text: text}, true
}
