// Package render formats catalog output for terminals and user templates.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// StringWidth returns the display width of s, accounting for multi-width runes.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens value so its display width fits width. An ellipsis
// ("...") is appended when truncation occurs and there is space for it.
func Truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return substringWithWidth(value, width)
	}
	return substringWithWidth(value, width-3) + "..."
}

func substringWithWidth(s string, target int) string {
	width := 0
	var sb strings.Builder
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if width+w > target {
			break
		}
		width += w
		sb.WriteRune(r)
	}
	return sb.String()
}

// Box builds a box containing the provided lines. Lines are left-aligned
// with single-space padding on each side.
func Box(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	trimmed := make([]string, len(lines))
	maxWidth := 0
	for i, line := range lines {
		trimmed[i] = strings.TrimRight(line, " ")
		if w := StringWidth(trimmed[i]); w > maxWidth {
			maxWidth = w
		}
	}

	innerWidth := maxWidth + 2
	border := strings.Repeat("─", innerWidth)

	var sb strings.Builder
	sb.WriteString("┌" + border + "┐\n")
	for _, line := range trimmed {
		fill := maxWidth - StringWidth(line)
		sb.WriteString("│ " + line + strings.Repeat(" ", fill) + " │\n")
	}
	sb.WriteString("└" + border + "┘\n")
	return sb.String()
}

// Table is a column-aligned plain-text table.
type Table struct {
	Headers []string
	Rows    [][]string
	// MaxWidth caps every column's display width; 0 means unlimited.
	MaxWidth int
}

// AddRow appends a row. Missing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Write renders the table to w. Trailing padding is not emitted.
func (t *Table) Write(w io.Writer) error {
	cols := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return nil
	}

	cell := func(row []string, i int) string {
		if i >= len(row) {
			return ""
		}
		if t.MaxWidth > 0 {
			return Truncate(row[i], t.MaxWidth)
		}
		return row[i]
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i := 0; i < cols; i++ {
			if w := StringWidth(cell(row, i)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}

	line := func(row []string) error {
		var sb strings.Builder
		for i := 0; i < cols; i++ {
			c := cell(row, i)
			sb.WriteString(c)
			if i < cols-1 {
				sb.WriteString(strings.Repeat(" ", widths[i]-StringWidth(c)+2))
			}
		}
		_, err := fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))
		return err
	}

	if len(t.Headers) > 0 {
		if err := line(t.Headers); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		if err := line(row); err != nil {
			return err
		}
	}
	return nil
}
