package stimulus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// LoadLedger reads the completed-stimuli ledger the presentation software
// writes during a session: a comma-separated file with a stimulus_id column,
// one row per completed stimulus in presentation order.
func LoadLedger(path string) ([]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open session ledger: %w", err)
	}
	defer file.Close()

	order, err := ReadLedger(file)
	if err != nil {
		return nil, fmt.Errorf("session ledger %s: %w", path, err)
	}
	return order, nil
}

// ReadLedger parses ledger rows from r. See LoadLedger for the format.
func ReadLedger(r io.Reader) ([]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := indexColumns(header)
	idx, ok := columns["stimulus_id"]
	if !ok {
		return nil, fmt.Errorf("missing column %q", "stimulus_id")
	}

	var order []int
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line+1, err)
		}
		line++
		if idx >= len(record) {
			return nil, fmt.Errorf("row %d: missing stimulus_id value", line)
		}
		id, err := strconv.Atoi(record[idx])
		if err != nil {
			return nil, fmt.Errorf("row %d: parse stimulus_id: %w", line, err)
		}
		order = append(order, id)
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("ledger lists no completed stimuli")
	}
	return order, nil
}
