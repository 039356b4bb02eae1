package stats

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/notCienki/geoportal-app/internal/models"
)

func priced(price int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(price))
}

func TestAggregatePrices(t *testing.T) {
	records := []models.AuctionRecord{
		{ID: 1, StartingPrice: priced(100)},
		{ID: 2, StartingPrice: priced(200)},
		{ID: 3},
	}

	st := Aggregate(records)

	assert.Equal(t, 3, st.Count)
	assert.Equal(t, 2, st.PricedCount)
	assert.InDelta(t, 150.0, st.AvgPrice, 1e-9)
	assert.InDelta(t, 100.0, st.MinPrice, 1e-9)
	assert.InDelta(t, 200.0, st.MaxPrice, 1e-9)
	assert.Zero(t, st.AvgArea)
	assert.Zero(t, st.AvgPricePerHectare)
}

func TestAggregateEmpty(t *testing.T) {
	st := Aggregate(nil)

	assert.Equal(t, 0, st.Count)
	assert.Zero(t, st.AvgPrice)
	assert.Zero(t, st.MinPrice)
	assert.Zero(t, st.MaxPrice)
	assert.Zero(t, st.AvgArea)
	assert.Zero(t, st.AvgPricePerHectare)
	assert.NotNil(t, st.ByCounty)
}

func TestAggregateAreaAndPerHectare(t *testing.T) {
	records := []models.AuctionRecord{
		{StartingPrice: priced(10000), AreaHa: models.Ptr(0.5)},
		{StartingPrice: priced(30000), AreaHa: models.Ptr(1.5)},
		// no area: excluded from per-hectare only
		{StartingPrice: priced(50000)},
		// zero area: counted in avg area, excluded from per-hectare
		{StartingPrice: priced(1000), AreaHa: models.Ptr(0.0)},
		// estimated value stands in for a missing starting price
		{EstimatedValue: priced(4000), AreaHa: models.Ptr(2.0)},
	}

	st := Aggregate(records)

	assert.Equal(t, 5, st.Count)
	assert.Equal(t, 4, st.AreaCount)
	assert.InDelta(t, 1.0, st.AvgArea, 1e-9)
	assert.Equal(t, 5, st.PricedCount)
	assert.InDelta(t, 19000.0, st.AvgPrice, 1e-9)
	assert.InDelta(t, 1000.0, st.MinPrice, 1e-9)
	assert.InDelta(t, 50000.0, st.MaxPrice, 1e-9)
	// (20000 + 20000 + 2000) / 3
	assert.InDelta(t, 14000.0, st.AvgPricePerHectare, 1e-6)
}

func TestAggregateByCounty(t *testing.T) {
	records := []models.AuctionRecord{
		{Location: "Podkarpackie/Łańcucki/Czarna/Czarna/1"},
		{Location: "podkarpackie/łańcucki/Łańcut/Albigowa/2"},
		{Location: "Podkarpackie/Ropczycko-Sędziszowski/Ropczyce/Ropczyce/3"},
		{Location: "Łańcut"},
	}

	st := Aggregate(records)

	assert.Equal(t, map[string]int{
		"łańcucki":               2,
		"ropczycko sędziszowski": 1,
	}, st.ByCounty)
}
