package extractor

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFontSize = 6.0

// text lays s out in a monospace font, one glyph per character
func text(x, y float64, s string) []glyph {
	advance := 0.6 * testFontSize
	var out []glyph
	for i, r := range []rune(s) {
		out = append(out, glyph{x: x + float64(i)*advance, y: y, w: advance, size: testFontSize, s: string(r)})
	}
	return out
}

func page(parts ...[]glyph) []glyph {
	var out []glyph
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestSplitSegments(t *testing.T) {
	tests := []struct {
		name     string
		glyphs   []glyph
		expected []string
	}{
		{
			name:     "Single spaces stay inside a cell",
			glyphs:   text(10, 100, "15 000,00"),
			expected: []string{"15 000,00"},
		},
		{
			name:     "Two blanks split cells",
			glyphs:   text(10, 100, "sprzedaż  przetarg"),
			expected: []string{"sprzedaż", "przetarg"},
		},
		{
			name:     "Wide gap splits cells",
			glyphs:   page(text(10, 100, "1."), text(40, 100, "Starostwo")),
			expected: []string{"1.", "Starostwo"},
		},
		{
			name:     "Kerned word gap without a blank glyph",
			glyphs:   page(text(10, 100, "Sąd"), text(10+3*3.6+1.5, 100, "Rejonowy")),
			expected: []string{"Sąd Rejonowy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, s := range splitSegments(tt.glyphs) {
				got = append(got, s.text)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGroupLinesTopToBottom(t *testing.T) {
	lines := groupLines(page(
		text(10, 80, "dół"),
		text(10, 120, "góra"),
		text(40, 119.2, "obok"), // slightly lower baseline, same line
	))

	require.Len(t, lines, 2)
	require.Len(t, lines[0].segments, 2)
	assert.Equal(t, "góra", lines[0].segments[0].text)
	assert.Equal(t, "obok", lines[0].segments[1].text)
	assert.Equal(t, "dół", lines[1].segments[0].text)
}

func TestPageRowsRebuildsColumns(t *testing.T) {
	glyphs := page(
		text(60, 200, "OBWIESZCZENIE O PRZETARGU"),
		text(10, 180, "Lp."), text(30, 180, "Położenie"), text(110, 180, "Cena"), text(150, 180, "Uwagi"),
		text(10, 170, "1."), text(30, 170, "Podkarpackie/"), text(110, 170, "15 000"), text(150, 170, "brak"),
		text(30, 162, "Łańcucki/1"),
		// right-aligned amount starting left of the shorter one
		text(10, 150, "2."), text(30, 150, "Rzeszowski/2"), text(104, 150, "125 000"), text(150, 150, "-"),
		text(10, 20, "Strona 1 z 2"),
	)

	rows, bounds := pageRows(glyphs, nil)
	require.Len(t, bounds, 3)
	assert.Equal(t, []Row{
		{"Lp.", "Położenie", "Cena", "Uwagi"},
		{"1.", "Podkarpackie/", "15 000", "brak"},
		{"", "Łańcucki/1", "", ""},
		{"2.", "Rzeszowski/2", "125 000", "-"},
	}, rows)
}

func TestPageRowsReusesPreviousColumns(t *testing.T) {
	first := page(
		text(10, 180, "1."), text(30, 180, "Podkarpackie/"), text(110, 180, "15 000"), text(150, 180, "brak"),
	)
	_, bounds := pageRows(first, nil)
	require.NotNil(t, bounds)

	// next page carries only the wrapped tail of the record
	rows, reused := pageRows(text(30, 500, "Łańcucki/1"), bounds)
	assert.Equal(t, bounds, reused)
	assert.Equal(t, []Row{{"", "Łańcucki/1", "", ""}}, rows)
}

func TestPageRowsWithoutTable(t *testing.T) {
	rows, bounds := pageRows(page(
		text(10, 200, "Komornik Sądowy przy Sądzie Rejonowym"),
		text(10, 190, "ogłasza przetarg"),
	), nil)
	assert.Nil(t, rows)
	assert.Nil(t, bounds)
}

func TestPDFExtractorReadsNoticeTable(t *testing.T) {
	data, err := os.ReadFile("testdata/notice.pdf")
	require.NoError(t, err)

	e, err := NewPDFExtractor(context.Background(), nil)
	require.NoError(t, err)

	rows, err := e.Extract(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	for _, row := range rows {
		assert.Equal(t, 14, row.Width())
	}
	assert.Equal(t, "Lp.", rows[0].Cell(0))
	assert.Equal(t, Row{
		"1.", "Km 12/25", "15.04.2025 10:00", "Starostwo", "Podkarpackie/Lancucki/Czarna/",
		"sprzedaz", "przetarg", "dzialka", "RIIIa", "0,1000", "0,1000", "15 000,00", "1", "brak",
	}, rows[1])
	assert.Equal(t, "Czarna/1", rows[2].Cell(4))
	assert.Equal(t, "rolna", rows[2].Cell(7))
	assert.Equal(t, "", rows[2].Cell(0))
	assert.Equal(t, "19 999,99", rows[3].Cell(11))
}
