package api

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/notCienki/geoportal-app/internal/filter"
	"github.com/notCienki/geoportal-app/internal/models"
)

// CriteriaQuery holds the filter query parameters of the upload endpoints
type CriteriaQuery struct {
	Location       string `form:"location"`
	Counties       string `form:"counties"`
	PropertyTypes  string `form:"property_types"`
	Form           string `form:"form"`
	MinArea        string `form:"min_area"`
	MaxArea        string `form:"max_area"`
	MinPrice       string `form:"min_price"`
	MaxPrice       string `form:"max_price"`
	MinDaysFromNow string `form:"min_days_from_now"`
	MaxDaysFromNow string `form:"max_days_from_now"`
	MinDiscount    string `form:"min_discount"`
	BestOffersOnly bool   `form:"best_offers_only"`
}

// criteriaFromQuery reads filter criteria from the query string. Empty
// parameters impose no constraint; numbers accept a decimal comma.
func criteriaFromQuery(c *gin.Context) (models.FilterCriteria, bool, error) {
	var q CriteriaQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return models.FilterCriteria{}, false, &filter.ConfigurationError{Field: "query", Message: err.Error()}
	}

	criteria := models.FilterCriteria{
		Location:      optionalString(q.Location),
		Form:          optionalString(q.Form),
		Counties:      splitList(q.Counties),
		PropertyTypes: splitList(q.PropertyTypes),
	}

	var err error
	if criteria.MinAreaHa, err = optionalFloat("min_area", q.MinArea); err != nil {
		return criteria, false, err
	}
	if criteria.MaxAreaHa, err = optionalFloat("max_area", q.MaxArea); err != nil {
		return criteria, false, err
	}
	if criteria.MinPrice, err = optionalDecimal("min_price", q.MinPrice); err != nil {
		return criteria, false, err
	}
	if criteria.MaxPrice, err = optionalDecimal("max_price", q.MaxPrice); err != nil {
		return criteria, false, err
	}
	if criteria.MinDaysFromNow, err = optionalInt("min_days_from_now", q.MinDaysFromNow); err != nil {
		return criteria, false, err
	}
	if criteria.MaxDaysFromNow, err = optionalInt("max_days_from_now", q.MaxDaysFromNow); err != nil {
		return criteria, false, err
	}
	if criteria.MinDiscount, err = optionalFloat("min_discount", q.MinDiscount); err != nil {
		return criteria, false, err
	}

	return criteria, q.BestOffersOnly, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func numberText(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
}

func optionalFloat(field, s string) (*float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(numberText(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, &filter.ConfigurationError{Field: field, Message: "not a number"}
	}
	return &v, nil
}

func optionalDecimal(field, s string) (*decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(numberText(s))
	if err != nil {
		return nil, &filter.ConfigurationError{Field: field, Message: "not a number"}
	}
	return &v, nil
}

func optionalInt(field, s string) (*int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil, &filter.ConfigurationError{Field: field, Message: "not a whole number"}
	}
	return &v, nil
}
