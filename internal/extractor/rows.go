package extractor

import (
	"regexp"
	"strings"
)

// cells are separated by a tab or by a run of at least two blanks
var reCellGap = regexp.MustCompile(`\t+|[ \x{00A0}]{2,}`)

// SplitRows breaks page text into rows, one per non-empty line. Form feeds
// are treated as page breaks.
func SplitRows(text string) []Row {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\f", "\n")

	var rows []Row
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, SplitCells(line))
	}
	return rows
}

// SplitCells splits a single text line into trimmed cells
func SplitCells(line string) Row {
	parts := reCellGap.Split(strings.TrimSpace(line), -1)
	row := make(Row, 0, len(parts))
	for _, p := range parts {
		row = append(row, strings.TrimSpace(p))
	}
	return row
}

// Width returns the number of cells in the row
func (r Row) Width() int {
	return len(r)
}

// Cell returns the trimmed cell at i, or "" when the row is too short
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

// Text joins all cells with a single space
func (r Row) Text() string {
	return strings.Join(r, " ")
}
