package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuctionRecord is one line item of an auction notice.
type AuctionRecord struct {
	ID                 int                 `json:"id"`
	Category           string              `json:"category"`
	Character          string              `json:"character"`
	Location           string              `json:"location"`
	Place              string              `json:"place"`
	AreaM2             *float64            `json:"area_m2"`
	AreaHa             *float64            `json:"area_ha"`
	AreaUnit           string              `json:"area_unit,omitempty"`
	AgriculturalAreaHa *float64            `json:"agricultural_area_ha"`
	StartingPrice      decimal.NullDecimal `json:"starting_price"`
	EstimatedValue     decimal.NullDecimal `json:"estimated_value"`
	Deposit            decimal.NullDecimal `json:"deposit"`
	Increment          decimal.NullDecimal `json:"increment"`
	Discount           string              `json:"discount"`
	DiscountPercent    *float64            `json:"discount_percent"`
	Attributes         string              `json:"attributes"`
	DateTime           *time.Time          `json:"date_time"`
	HasTime            bool                `json:"has_time"`
	Form               string              `json:"form"`
	SaleForm           string              `json:"sale_form"`
	NextAuction        *int                `json:"next_auction"`
	Remarks            string              `json:"remarks,omitempty"`
}

// EffectivePrice returns the starting price, falling back to the estimated value.
func (r *AuctionRecord) EffectivePrice() decimal.NullDecimal {
	if r.StartingPrice.Valid {
		return r.StartingPrice
	}
	return r.EstimatedValue
}

// FieldWarning records a single field that failed normalization.
type FieldWarning struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// ParseResult is the output of one extraction run.
type ParseResult struct {
	Records     []AuctionRecord `json:"records"`
	TotalCount  int             `json:"total_count"`
	SkippedRows int             `json:"skipped_rows"`
	IgnoredRows int             `json:"ignored_rows"`
	Warnings    []FieldWarning  `json:"warnings"`
}

type Statistics struct {
	Count              int            `json:"count"`
	AvgArea            float64        `json:"avg_area"`
	AvgPrice           float64        `json:"avg_price"`
	MinPrice           float64        `json:"min_price"`
	MaxPrice           float64        `json:"max_price"`
	AvgPricePerHectare float64        `json:"avg_price_per_hectare"`
	PricedCount        int            `json:"priced_count"`
	AreaCount          int            `json:"area_count"`
	ByCounty           map[string]int `json:"by_county"`
}
