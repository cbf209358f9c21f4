package stimulus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Catalog holds every stimulus definition for a data collection. It is
// immutable after load.
type Catalog struct {
	ordered []*Stimulus
	byID    map[int]*Stimulus
}

// LoadCatalog reads a tab-separated stimulus definition file. Required
// columns: stimulus_id, stimulus_name, stimulus_type, num_pages. Optional
// columns: question_ids and rating_screens, each semicolon-separated.
func LoadCatalog(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stimulus catalog: %w", err)
	}
	defer file.Close()

	catalog, err := ReadCatalog(file)
	if err != nil {
		return nil, fmt.Errorf("stimulus catalog %s: %w", path, err)
	}
	return catalog, nil
}

// ReadCatalog parses catalog rows from r. See LoadCatalog for the format.
func ReadCatalog(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := indexColumns(header)
	for _, required := range []string{"stimulus_id", "stimulus_name", "stimulus_type", "num_pages"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	catalog := &Catalog{byID: make(map[int]*Stimulus)}
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

		stim, err := parseRow(record, columns)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		if _, exists := catalog.byID[stim.ID]; exists {
			return nil, fmt.Errorf("row %d: duplicate stimulus id %d", line, stim.ID)
		}
		catalog.ordered = append(catalog.ordered, stim)
		catalog.byID[stim.ID] = stim
	}
	if len(catalog.ordered) == 0 {
		return nil, fmt.Errorf("catalog contains no stimuli")
	}
	return catalog, nil
}

// ByID returns the stimulus with the given id, or ErrUnknownStimulus.
func (c *Catalog) ByID(id int) (*Stimulus, error) {
	stim, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownStimulus, id)
	}
	return stim, nil
}

// All returns the catalog's stimuli in definition order.
func (c *Catalog) All() []*Stimulus {
	return c.ordered
}

// Len reports the number of stimuli in the catalog.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return columns
}

func field(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parseRow(record []string, columns map[string]int) (*Stimulus, error) {
	id, err := strconv.Atoi(field(record, columns, "stimulus_id"))
	if err != nil {
		return nil, fmt.Errorf("parse stimulus_id: %w", err)
	}
	name := field(record, columns, "stimulus_name")
	if name == "" {
		return nil, fmt.Errorf("stimulus_name is empty")
	}

	var stimType Type
	switch raw := strings.ToLower(field(record, columns, "stimulus_type")); raw {
	case string(TypeExperiment):
		stimType = TypeExperiment
	case string(TypePractice):
		stimType = TypePractice
	default:
		return nil, fmt.Errorf("stimulus_type %q is not %q or %q", raw, TypeExperiment, TypePractice)
	}

	numPages, err := strconv.Atoi(field(record, columns, "num_pages"))
	if err != nil {
		return nil, fmt.Errorf("parse num_pages: %w", err)
	}
	if numPages < 1 {
		return nil, fmt.Errorf("num_pages must be positive, got %d", numPages)
	}
	pages := make([]Page, 0, numPages)
	for n := 1; n <= numPages; n++ {
		pages = append(pages, Page{Number: n})
	}

	var questions []Question
	for _, qid := range splitList(field(record, columns, "question_ids")) {
		questions = append(questions, Question{ID: qid})
	}
	var ratings []RatingScreen
	for _, rname := range splitList(field(record, columns, "rating_screens")) {
		ratings = append(ratings, RatingScreen{Name: rname})
	}

	return &Stimulus{
		ID:        id,
		Name:      name,
		Type:      stimType,
		Pages:     pages,
		Questions: questions,
		Ratings:   ratings,
	}, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
