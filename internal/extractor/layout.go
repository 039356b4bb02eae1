package extractor

import (
	"math"
	"sort"
	"strings"
)

const (
	// glyphs whose baselines differ by less than this share a line (em)
	lineTolerance = 0.5
	// a horizontal gap wider than this separates words (em)
	wordGap = 0.15
	// a horizontal gap wider than this separates cells (em)
	cellGap = 0.6
	// a cell may overhang its column boundary by this much (pt)
	spanTolerance = 2.0
	// narrowest line that marks a page as holding a table
	minTableColumns = 4
)

// glyph is one piece of positioned text as drawn on the page. Coordinates
// are in points with the origin at the bottom left.
type glyph struct {
	x, y, w float64
	size    float64
	s       string
}

// segment is a run of text on one line without a cell-sized gap in it
type segment struct {
	x0, x1 float64
	text   string
}

type textLine struct {
	y        float64
	segments []segment
}

// pageRows rebuilds table rows from the glyphs of one page. Column
// boundaries come from the page's widest lines; a page without a table of
// its own reuses prev. Lines with text crossing a column boundary (titles,
// footers) are not part of the table and are dropped.
func pageRows(glyphs []glyph, prev []float64) ([]Row, []float64) {
	lines := groupLines(glyphs)
	bounds := columnBounds(lines)
	if bounds == nil {
		bounds = prev
	}
	if bounds == nil {
		return nil, nil
	}
	return tableRows(lines, bounds), bounds
}

// groupLines clusters glyphs by baseline, top of the page first
func groupLines(glyphs []glyph) []textLine {
	if len(glyphs) == 0 {
		return nil
	}

	sorted := append([]glyph(nil), glyphs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].y > sorted[j].y
	})

	var lines []textLine
	var cur []glyph
	var curY float64
	emit := func() {
		if len(cur) == 0 {
			return
		}
		sort.SliceStable(cur, func(i, j int) bool { return cur[i].x < cur[j].x })
		if segs := splitSegments(cur); len(segs) > 0 {
			lines = append(lines, textLine{y: curY, segments: segs})
		}
		cur = nil
	}

	for _, g := range sorted {
		if len(cur) > 0 && math.Abs(g.y-curY) > lineTolerance*em(g) {
			emit()
		}
		if len(cur) == 0 {
			curY = g.y
		}
		cur = append(cur, g)
	}
	emit()
	return lines
}

// splitSegments joins the glyphs of a line into words and words into
// segments. Two consecutive blanks end a segment like a wide gap does.
func splitSegments(glyphs []glyph) []segment {
	var segs []segment
	var sb strings.Builder
	var cur segment
	open := false
	blanks := 0

	flush := func() {
		if text := strings.TrimSpace(sb.String()); open && text != "" {
			cur.text = text
			segs = append(segs, cur)
		}
		sb.Reset()
		open = false
		blanks = 0
	}

	for _, g := range glyphs {
		if strings.TrimSpace(g.s) == "" {
			if !open {
				continue
			}
			blanks++
			if blanks >= 2 {
				flush()
				continue
			}
			cur.x1 = math.Max(cur.x1, g.x+g.w)
			continue
		}

		gap := g.x - cur.x1
		if open && gap > cellGap*em(g) {
			flush()
		}
		if !open {
			cur = segment{x0: g.x, x1: g.x + g.w}
			open = true
		} else if blanks > 0 || gap > wordGap*em(g) {
			sb.WriteByte(' ')
		}
		blanks = 0
		sb.WriteString(g.s)
		cur.x1 = math.Max(cur.x1, g.x+g.w)
	}
	flush()
	return segs
}

// columnBounds places each boundary midway between the furthest end of a
// column and the nearest start of the next one, over the widest lines. It
// returns nil when no line is wide enough to be a table row.
func columnBounds(lines []textLine) []float64 {
	width := 0
	for _, l := range lines {
		width = max(width, len(l.segments))
	}
	if width < minTableColumns {
		return nil
	}

	ends := make([]float64, width-1)
	starts := make([]float64, width-1)
	for i := range starts {
		ends[i] = math.Inf(-1)
		starts[i] = math.Inf(1)
	}
	for _, l := range lines {
		if len(l.segments) != width {
			continue
		}
		for i := 1; i < width; i++ {
			ends[i-1] = math.Max(ends[i-1], l.segments[i-1].x1)
			starts[i-1] = math.Min(starts[i-1], l.segments[i].x0)
		}
	}

	bounds := make([]float64, width-1)
	for i := range bounds {
		bounds[i] = (ends[i] + starts[i]) / 2
	}
	return bounds
}

func tableRows(lines []textLine, bounds []float64) []Row {
	var rows []Row
	for _, l := range lines {
		row := make(Row, len(bounds)+1)
		inTable := true
		for _, s := range l.segments {
			col := columnOf(s.x0, bounds)
			if col < len(bounds) && s.x1 > bounds[col]+spanTolerance {
				inTable = false
				break
			}
			if row[col] == "" {
				row[col] = s.text
			} else {
				row[col] += " " + s.text
			}
		}
		if inTable {
			rows = append(rows, row)
		}
	}
	return rows
}

// columnOf returns the index of the column that starts at or before x
func columnOf(x float64, bounds []float64) int {
	return sort.Search(len(bounds), func(i int) bool { return bounds[i] > x })
}

func em(g glyph) float64 {
	return math.Max(g.size, 1)
}
