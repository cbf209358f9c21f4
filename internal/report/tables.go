package report

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"gazecheck/internal/quality"
	"gazecheck/internal/stimulus"
)

// ColumnAlignment controls how a rendered column is justified.
type ColumnAlignment int

const (
	AlignLeft ColumnAlignment = iota
	AlignRight
)

// RenderTable renders headers and rows as a rounded-border table. Short
// rows are padded with empty cells; aligns applies per column and
// defaults to left.
func RenderTable(headers []string, rows [][]string, aligns []ColumnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// PerElementTable renders the per-page/per-question timing breakdown.
func PerElementTable(summary quality.Summary) string {
	rows := make([][]string, 0, len(summary.PerElement))
	for _, entry := range summary.PerElement {
		duration := quality.FormatClock(entry.DurationMS)
		if !entry.Complete {
			duration = "incomplete"
		}
		rows = append(rows, []string{
			trialCell(entry.Trial, entry.Practice),
			stimulus.DisplayTitle(entry.Stimulus),
			entry.Label,
			duration,
		})
	}
	return RenderTable(
		[]string{"Trial", "Stimulus", "Element", "Duration"},
		rows,
		[]ColumnAlignment{AlignRight, AlignLeft, AlignLeft, AlignRight},
	)
}

// PerTrialTable renders reading time summed per trial.
func PerTrialTable(summary quality.Summary) string {
	type trialKey struct {
		number   int
		practice bool
	}
	totals := make(map[trialKey]float64)
	stimuli := make(map[trialKey]string)
	var order []trialKey
	for _, entry := range summary.PerElement {
		key := trialKey{number: entry.Trial, practice: entry.Practice}
		if _, seen := totals[key]; !seen {
			order = append(order, key)
			stimuli[key] = entry.Stimulus
		}
		totals[key] += entry.DurationMS
	}

	rows := make([][]string, 0, len(order))
	for _, key := range order {
		rows = append(rows, []string{
			trialCell(key.number, key.practice),
			stimulus.DisplayTitle(stimuli[key]),
			quality.FormatClock(totals[key]),
		})
	}
	return RenderTable(
		[]string{"Trial", "Stimulus", "Reading time"},
		rows,
		[]ColumnAlignment{AlignRight, AlignLeft, AlignRight},
	)
}

func trialCell(number int, practice bool) string {
	if practice {
		return fmt.Sprintf("P%d", number)
	}
	return fmt.Sprintf("%d", number)
}
