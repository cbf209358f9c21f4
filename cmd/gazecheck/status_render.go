package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"gazecheck/internal/preflight"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

// renderResults prints one line per check, coloring the pass/fail mark when
// the destination is a terminal.
func renderResults(w io.Writer, results []preflight.Result) {
	colorize := shouldColorize(w)
	for _, result := range results {
		mark := "✗"
		if result.Passed {
			mark = "✓"
		}
		if colorize {
			if result.Passed {
				mark = ansiGreen + mark + ansiReset
			} else {
				mark = ansiRed + mark + ansiReset
			}
		}
		fmt.Fprintf(w, "%s %s: %s\n", mark, result.Name, result.Detail)
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
