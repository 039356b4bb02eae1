package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/notCienki/geoportal-app/internal/extractor"
	"github.com/notCienki/geoportal-app/internal/models"
	"github.com/notCienki/geoportal-app/internal/normalize"
)

const amountPattern = `\D{0,16}?(\d[\d \x{00A0}.]*(?:,\d{1,2})?)`

// labelled amounts that appear in remarks when the table has no column for them
var (
	reEstimatedValue = regexp.MustCompile(`(?i)(?:warto[śs][ćc]\s+szacunkow\p{L}*|suma\s+oszacowania)` + amountPattern)
	reDeposit        = regexp.MustCompile(`(?i)wadium` + amountPattern)
	reIncrement      = regexp.MustCompile(`(?i)post[ąa]pieni\p{L}*` + amountPattern)
)

// recordBuilder maps one reconciled row onto an AuctionRecord and collects
// the warnings of fields that failed to normalize.
type recordBuilder struct {
	opts     Options
	row      extractor.Row
	rowNum   int
	warnings []models.FieldWarning
}

func (b *recordBuilder) cell(idx int) string {
	if idx == Absent {
		return ""
	}
	return b.row.Cell(idx)
}

func (b *recordBuilder) warn(field, value string) {
	b.warnings = append(b.warnings, models.FieldWarning{
		Row:   b.rowNum,
		Field: field,
		Value: value,
	})
}

func (b *recordBuilder) build() models.AuctionRecord {
	l := b.opts.Layout
	rec := models.AuctionRecord{
		Place:    flatten(b.cell(l.Place)),
		Location: joinLocation(b.cell(l.Location)),
		Form:     flatten(b.cell(l.Form)),
		SaleForm: flatten(b.cell(l.SaleForm)),
		Remarks:  flatten(b.cell(l.Remarks)),
	}

	rec.Category, rec.Character = splitPropertyType(b.cell(l.PropertyType))
	rec.Attributes, rec.Discount, rec.DiscountPercent = normalize.SplitDiscount(b.cell(l.Attributes))
	rec.Attributes = flatten(rec.Attributes)

	if raw := b.cell(l.DateTime); !normalize.IsBlank(raw) {
		rec.DateTime, rec.HasTime = normalize.ParseDateTime(raw, b.opts.Location)
		if rec.DateTime == nil {
			b.warn("date_time", raw)
		}
	}

	if area := b.area("area", l.Area); area != nil {
		rec.AreaHa = &area.Ha
		rec.AreaM2 = &area.M2
		rec.AreaUnit = string(area.Unit)
	}
	if area := b.area("agricultural_area", l.AgriculturalArea); area != nil {
		rec.AgriculturalAreaHa = &area.Ha
	}

	rec.StartingPrice = b.amount("starting_price", l.StartingPrice)

	labelled := rec.Remarks + "\n" + rec.Attributes
	rec.EstimatedValue = b.amountOrLabelled("estimated_value", l.EstimatedValue, reEstimatedValue, labelled)
	rec.Deposit = b.amountOrLabelled("deposit", l.Deposit, reDeposit, labelled)
	rec.Increment = b.amountOrLabelled("increment", l.Increment, reIncrement, labelled)

	if raw := b.cell(l.NextAuction); !normalize.IsBlank(raw) {
		rec.NextAuction = normalize.ParseInt(raw)
		if rec.NextAuction == nil {
			b.warn("next_auction", raw)
		}
	}

	return rec
}

func (b *recordBuilder) area(field string, idx int) *normalize.Area {
	raw := b.cell(idx)
	if normalize.IsBlank(raw) {
		return nil
	}
	area := normalize.ParseArea(raw, b.opts.AreaUnit)
	if area == nil {
		b.warn(field, raw)
	}
	return area
}

func (b *recordBuilder) amount(field string, idx int) decimal.NullDecimal {
	raw := b.cell(idx)
	if normalize.IsBlank(raw) {
		return decimal.NullDecimal{}
	}
	v := normalize.ParseAmount(raw)
	if !v.Valid {
		b.warn(field, raw)
	}
	return v
}

func (b *recordBuilder) amountOrLabelled(field string, idx int, re *regexp.Regexp, text string) decimal.NullDecimal {
	if idx != Absent {
		return b.amount(field, idx)
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return decimal.NullDecimal{}
	}
	return normalize.ParseAmount(strings.TrimRight(m[1], ". \u00a0"))
}

// splitPropertyType splits "działka\nrolna" into category and character
func splitPropertyType(text string) (category, character string) {
	lines := strings.Split(normalize.CollapseSpaces(text), "\n")
	category = lines[0]
	if len(lines) > 1 {
		character = strings.Join(lines[1:], " ")
	}
	return category, character
}

// joinLocation rejoins a slash-delimited path wrapped over several lines
func joinLocation(text string) string {
	lines := strings.Split(normalize.CollapseSpaces(text), "\n")
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 && !strings.HasSuffix(lines[i-1], "/") && !strings.HasPrefix(line, "/") {
			sb.WriteByte(' ')
		}
		sb.WriteString(line)
	}
	return sb.String()
}

func flatten(text string) string {
	return strings.ReplaceAll(normalize.CollapseSpaces(text), "\n", " ")
}
