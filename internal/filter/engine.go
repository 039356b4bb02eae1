// Package filter selects auction records matching a set of criteria.
package filter

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/notCienki/geoportal-app/internal/location"
	"github.com/notCienki/geoportal-app/internal/models"
	"github.com/notCienki/geoportal-app/internal/normalize"
)

// Engine applies FilterCriteria to record sets. Day bounds are measured
// from the engine clock.
type Engine struct {
	now    func() time.Time
	logger *logrus.Logger
}

// NewEngine creates a filter engine using the wall clock
func NewEngine(logger *logrus.Logger) *Engine {
	return NewEngineWithClock(time.Now, logger)
}

// NewEngineWithClock creates a filter engine with a custom clock
func NewEngineWithClock(now func() time.Time, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &Engine{now: now, logger: logger}
}

// Filter validates the criteria and applies them
func (e *Engine) Filter(records []models.AuctionRecord, c models.FilterCriteria) ([]models.AuctionRecord, int, error) {
	if err := Validate(c); err != nil {
		return nil, 0, err
	}
	matched, applied := e.Apply(records, c)
	return matched, applied, nil
}

// Apply returns the records matching every configured criterion, in input
// order, and the number of configured criteria. Criteria are not validated.
func (e *Engine) Apply(records []models.AuctionRecord, c models.FilterCriteria) ([]models.AuctionRecord, int) {
	m := newMatcher(c, e.now())
	matched := make([]models.AuctionRecord, 0, len(records))
	for i := range records {
		if m.matches(&records[i]) {
			matched = append(matched, records[i])
		}
	}

	applied := c.AppliedCount()
	e.logger.WithFields(logrus.Fields{
		"records": len(records),
		"matched": len(matched),
		"applied": applied,
	}).Debug("Applied filters")
	return matched, applied
}

// matcher holds criteria with their text already folded
type matcher struct {
	c             models.FilterCriteria
	now           time.Time
	location      string
	counties      []string
	form          string
	propertyTypes []string
}

func newMatcher(c models.FilterCriteria, now time.Time) *matcher {
	m := &matcher{c: c, now: now}
	if c.Location != nil {
		m.location = normalize.Fold(*c.Location)
	}
	for _, county := range c.Counties {
		m.counties = append(m.counties, location.CountyKey(county))
	}
	if c.Form != nil {
		m.form = normalize.Fold(*c.Form)
	}
	for _, t := range c.PropertyTypes {
		m.propertyTypes = append(m.propertyTypes, normalize.Fold(t))
	}
	return m
}

func (m *matcher) matches(r *models.AuctionRecord) bool {
	c := m.c

	if c.Location != nil && !strings.Contains(normalize.Fold(r.Location), m.location) {
		return false
	}

	if len(c.Counties) > 0 && !m.matchesCounty(r.Location) {
		return false
	}

	if c.Form != nil && normalize.Fold(r.Form) != m.form {
		return false
	}

	if c.MinAreaHa != nil || c.MaxAreaHa != nil {
		if r.AreaHa == nil {
			return false
		}
		if c.MinAreaHa != nil && *r.AreaHa < *c.MinAreaHa {
			return false
		}
		if c.MaxAreaHa != nil && *r.AreaHa > *c.MaxAreaHa {
			return false
		}
	}

	if c.MinPrice != nil || c.MaxPrice != nil {
		price := r.EffectivePrice()
		if !price.Valid {
			return false
		}
		if c.MinPrice != nil && price.Decimal.LessThan(*c.MinPrice) {
			return false
		}
		if c.MaxPrice != nil && price.Decimal.GreaterThan(*c.MaxPrice) {
			return false
		}
	}

	if len(c.PropertyTypes) > 0 && !m.matchesPropertyType(r) {
		return false
	}

	if c.MinDaysFromNow != nil || c.MaxDaysFromNow != nil {
		if r.DateTime == nil {
			return false
		}
		days := normalize.DaysBetween(m.now, *r.DateTime)
		if c.MinDaysFromNow != nil && days < *c.MinDaysFromNow {
			return false
		}
		if c.MaxDaysFromNow != nil && days > *c.MaxDaysFromNow {
			return false
		}
	}

	if c.MinDiscount != nil {
		if r.DiscountPercent == nil || *r.DiscountPercent < *c.MinDiscount {
			return false
		}
	}

	return true
}

// matchesCounty compares against the county segment of the location path,
// or the whole path when it has no county segment
func (m *matcher) matchesCounty(path string) bool {
	target := location.CountyOf(path)
	if target == "" {
		target = path
	}
	target = location.CountyKey(target)
	if target == "" {
		return false
	}
	for _, county := range m.counties {
		if county != "" && strings.Contains(target, county) {
			return true
		}
	}
	return false
}

func (m *matcher) matchesPropertyType(r *models.AuctionRecord) bool {
	haystack := normalize.Fold(r.Category + "\n" + r.Character + "\n" + r.Attributes)
	for _, t := range m.propertyTypes {
		if t != "" && strings.Contains(haystack, t) {
			return true
		}
	}
	return false
}
