// Package parser reconciles extracted table rows into auction records.
//
// Notice tables wrap long cells over several physical lines, so a record
// starts at a row whose first cell is a sequence number ("12" or "12.") and
// absorbs every following row until the next sequence number. Rows that
// cannot form a record are counted and skipped; parsing never aborts.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/notCienki/geoportal-app/internal/extractor"
	"github.com/notCienki/geoportal-app/internal/models"
	"github.com/notCienki/geoportal-app/internal/normalize"
)

var reSequence = regexp.MustCompile(`^\d+\.?$`)

type state int

const (
	expectingNewRecord state = iota
	accumulatingContinuation
)

// Options configure a Parser
type Options struct {
	Layout   Layout
	Location *time.Location
	AreaUnit normalize.Unit
}

// DefaultOptions returns the notice layout with hectare areas in UTC
func DefaultOptions() Options {
	return Options{
		Layout:   DefaultLayout(),
		Location: time.UTC,
		AreaUnit: normalize.UnitHectare,
	}
}

// Parser turns extracted rows into records. It holds no mutable state and
// is safe for concurrent use.
type Parser struct {
	opts Options
}

// NewParser creates a parser; zero-valued options fall back to defaults
func NewParser(opts Options) *Parser {
	def := DefaultOptions()
	if opts.Layout.Width() <= 1 {
		opts.Layout = def.Layout
	}
	if opts.Layout.MinColumns <= 0 {
		opts.Layout.MinColumns = def.Layout.MinColumns
	}
	if opts.Location == nil {
		opts.Location = def.Location
	}
	if opts.AreaUnit == "" {
		opts.AreaUnit = def.AreaUnit
	}
	return &Parser{opts: opts}
}

// run is the per-call parse state
type run struct {
	p        *Parser
	result   models.ParseResult
	state    state
	pending  extractor.Row
	startRow int
}

// Parse reconciles rows into records. Record ids are dense, starting at 1.
func (p *Parser) Parse(rows []extractor.Row) models.ParseResult {
	r := &run{
		p: p,
		result: models.ParseResult{
			Records:  []models.AuctionRecord{},
			Warnings: []models.FieldWarning{},
		},
	}

	for i, row := range rows {
		if isEmptyRow(row) {
			continue
		}

		switch {
		case isTotalRow(row):
			r.flush()
			r.result.IgnoredRows++
		case isHeaderRow(row):
			r.result.IgnoredRows++
		case reSequence.MatchString(row.Cell(0)):
			r.flush()
			r.pending = append(extractor.Row(nil), row...)
			r.startRow = i + 1
			r.state = accumulatingContinuation
		case r.state == expectingNewRecord:
			// continuation with nothing to continue
			r.result.SkippedRows++
		default:
			r.pending = r.merge(r.pending, row)
		}
	}
	r.flush()

	r.result.TotalCount = len(r.result.Records)
	return r.result
}

// merge folds a continuation row into the pending record row
func (r *run) merge(pending, cont extractor.Row) extractor.Row {
	switch {
	case len(pending) == len(cont):
		for i := range pending {
			pending[i] = joinCell(pending[i], cont[i])
		}
		return pending
	case len(pending) < r.p.opts.Layout.Width():
		return append(pending, cont...)
	default:
		last := len(pending) - 1
		pending[last] = joinCell(pending[last], strings.TrimSpace(cont.Text()))
		return pending
	}
}

func (r *run) flush() {
	if r.pending == nil {
		return
	}
	row := r.pending
	r.pending = nil
	r.state = expectingNewRecord

	if len(row) < r.p.opts.Layout.MinColumns {
		r.result.SkippedRows++
		return
	}

	b := &recordBuilder{opts: r.p.opts, row: row, rowNum: r.startRow}
	rec := b.build()
	if rec.Location == "" && rec.Category == "" {
		r.result.SkippedRows++
		return
	}

	rec.ID = len(r.result.Records) + 1
	r.result.Records = append(r.result.Records, rec)
	r.result.Warnings = append(r.result.Warnings, b.warnings...)
}

func joinCell(a, b string) string {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "\n" + b
	}
}

func isEmptyRow(row extractor.Row) bool {
	for _, c := range row {
		if !normalize.IsBlank(c) {
			return false
		}
	}
	return true
}

// isHeaderRow matches column captions and the "1 2 3 ... 14" numbering row
func isHeaderRow(row extractor.Row) bool {
	first := normalize.Fold(row.Cell(0))
	if first == "lp" || first == "lp." {
		return true
	}
	if !reSequence.MatchString(first) {
		for _, c := range row {
			if strings.HasPrefix(normalize.Fold(c), "cena wywoławcza") {
				return true
			}
		}
	}
	if len(row) < 3 {
		return false
	}
	for i, c := range row {
		if strings.TrimSpace(c) != strconv.Itoa(i+1) {
			return false
		}
	}
	return true
}

func isTotalRow(row extractor.Row) bool {
	for _, c := range row {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if strings.HasPrefix(c, "Razem") {
			return true
		}
		if !reSequence.MatchString(c) {
			return false
		}
	}
	return false
}
