// ABOUTME: Plain-text table rendering for CLI list output
// ABOUTME: Pads columns to content width, capped so long URLs stay readable

package main

import (
	"fmt"
	"io"
	"strings"
)

const maxColWidth = 36

// truncate shortens s to max characters, marking the cut with an
// ellipsis
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// writeTable renders rows under a header line and a dashed separator.
// Every column except the last is left-padded to the widest cell, so
// the output carries no trailing spaces.
func writeTable(headers []string, rows [][]string, out io.Writer) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := len([]rune(cell)); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i := range widths {
		if widths[i] > maxColWidth {
			widths[i] = maxColWidth
		}
	}

	last := len(headers) - 1

	parts := make([]string, len(headers))
	for i, h := range headers {
		if i == last {
			parts[i] = h
		} else {
			parts[i] = fmt.Sprintf("%-*s", widths[i], truncate(h, widths[i]))
		}
	}
	if _, err := fmt.Fprintln(out, strings.Join(parts, "  ")); err != nil {
		return err
	}

	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	if _, err := fmt.Fprintln(out, strings.Join(parts, "  ")); err != nil {
		return err
	}

	for _, row := range rows {
		for i, cell := range row {
			if i == last {
				parts[i] = cell
			} else {
				parts[i] = fmt.Sprintf("%-*s", widths[i], truncate(cell, widths[i]))
			}
		}
		if _, err := fmt.Fprintln(out, strings.Join(parts, "  ")); err != nil {
			return err
		}
	}

	return nil
}
