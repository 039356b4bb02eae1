package filter

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/notCienki/geoportal-app/internal/models"
	"github.com/notCienki/geoportal-app/internal/stats"
)

// BestOffersResult is the outcome of the best-offers preset
type BestOffersResult struct {
	Offers     []models.AuctionRecord `json:"offers"`
	Statistics models.Statistics      `json:"statistics"`
	Matched    int                    `json:"matched"`
}

// BestOffersCriteria returns the fixed "best offers" preset: plots for sale
// in the three supported counties, at least 0.08 ha, at most 20 000 PLN,
// auctioned no sooner than a week from now. A fresh value is returned on
// every call so callers cannot alter the preset.
func BestOffersCriteria() models.FilterCriteria {
	return models.FilterCriteria{
		Counties:       []string{"łańcucki", "ropczycko sędziszowski", "rzeszowski"},
		Form:           models.Ptr("sprzedaż"),
		MinAreaHa:      models.Ptr(0.08),
		MaxPrice:       models.Ptr(decimal.NewFromInt(20000)),
		MinDaysFromNow: models.Ptr(7),
	}
}

// WithBestOffers lays the preset over c. Preset fields replace the caller's;
// every other criterion of c still applies.
func WithBestOffers(c models.FilterCriteria) models.FilterCriteria {
	preset := BestOffersCriteria()
	c.Counties = preset.Counties
	c.Form = preset.Form
	c.MinAreaHa = preset.MinAreaHa
	c.MaxPrice = preset.MaxPrice
	c.MinDaysFromNow = preset.MinDaysFromNow
	return c
}

// BestOffers applies the preset and summarises the matches
func (e *Engine) BestOffers(records []models.AuctionRecord) BestOffersResult {
	offers, _ := e.Apply(records, BestOffersCriteria())

	e.logger.WithFields(logrus.Fields{
		"records": len(records),
		"matched": len(offers),
	}).Info("Selected best offers")

	return BestOffersResult{
		Offers:     offers,
		Statistics: stats.Aggregate(offers),
		Matched:    len(offers),
	}
}
