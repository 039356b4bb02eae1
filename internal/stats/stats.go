// Package stats summarises a set of auction records.
package stats

import (
	"github.com/shopspring/decimal"

	"github.com/notCienki/geoportal-app/internal/location"
	"github.com/notCienki/geoportal-app/internal/models"
)

// Aggregate computes statistics over records. Averages and price bounds
// only consider records carrying the field; with no such record they are
// zero. Prices are effective prices (starting price, else estimated value).
func Aggregate(records []models.AuctionRecord) models.Statistics {
	st := models.Statistics{
		Count:    len(records),
		ByCounty: make(map[string]int),
	}

	var (
		areaSum      float64
		priceSum     = decimal.Zero
		minPrice     decimal.Decimal
		maxPrice     decimal.Decimal
		perHectare   float64
		perHectareOK int
	)

	for i := range records {
		r := &records[i]

		if county := location.CountyKey(location.CountyOf(r.Location)); county != "" {
			st.ByCounty[county]++
		}

		if r.AreaHa != nil {
			areaSum += *r.AreaHa
			st.AreaCount++
		}

		price := r.EffectivePrice()
		if !price.Valid {
			continue
		}
		if st.PricedCount == 0 || price.Decimal.LessThan(minPrice) {
			minPrice = price.Decimal
		}
		if st.PricedCount == 0 || price.Decimal.GreaterThan(maxPrice) {
			maxPrice = price.Decimal
		}
		priceSum = priceSum.Add(price.Decimal)
		st.PricedCount++

		if r.AreaHa != nil && *r.AreaHa > 0 {
			perHectare += price.Decimal.InexactFloat64() / *r.AreaHa
			perHectareOK++
		}
	}

	if st.AreaCount > 0 {
		st.AvgArea = areaSum / float64(st.AreaCount)
	}
	if st.PricedCount > 0 {
		st.AvgPrice = priceSum.Div(decimal.NewFromInt(int64(st.PricedCount))).Round(2).InexactFloat64()
		st.MinPrice = minPrice.InexactFloat64()
		st.MaxPrice = maxPrice.InexactFloat64()
	}
	if perHectareOK > 0 {
		st.AvgPricePerHectare = perHectare / float64(perHectareOK)
	}
	return st
}
