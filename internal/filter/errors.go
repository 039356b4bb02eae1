package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/notCienki/geoportal-app/internal/models"
)

var ErrInvalidCriteria = errors.New("invalid filter criteria")

// ConfigurationError reports an inconsistent criterion. It is returned
// before any record is filtered.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid filter %s: %s", e.Field, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidCriteria
}

// Validate checks bounds for consistency. Bounds are never swapped.
func Validate(c models.FilterCriteria) error {
	for _, f := range []struct {
		name  string
		value *float64
	}{
		{"min_area", c.MinAreaHa},
		{"max_area", c.MaxAreaHa},
		{"min_discount", c.MinDiscount},
	} {
		if f.value != nil && !finite(*f.value) {
			return &ConfigurationError{Field: f.name, Message: "must be a finite number"}
		}
	}

	if c.MinAreaHa != nil && *c.MinAreaHa < 0 {
		return &ConfigurationError{Field: "min_area", Message: "must not be negative"}
	}
	if c.MaxAreaHa != nil && *c.MaxAreaHa < 0 {
		return &ConfigurationError{Field: "max_area", Message: "must not be negative"}
	}
	if c.MinAreaHa != nil && c.MaxAreaHa != nil && *c.MinAreaHa > *c.MaxAreaHa {
		return &ConfigurationError{Field: "min_area", Message: fmt.Sprintf("%g is greater than max_area %g", *c.MinAreaHa, *c.MaxAreaHa)}
	}

	if c.MinPrice != nil && c.MinPrice.IsNegative() {
		return &ConfigurationError{Field: "min_price", Message: "must not be negative"}
	}
	if c.MaxPrice != nil && c.MaxPrice.IsNegative() {
		return &ConfigurationError{Field: "max_price", Message: "must not be negative"}
	}
	if c.MinPrice != nil && c.MaxPrice != nil && c.MinPrice.GreaterThan(*c.MaxPrice) {
		return &ConfigurationError{Field: "min_price", Message: fmt.Sprintf("%s is greater than max_price %s", c.MinPrice, c.MaxPrice)}
	}

	if c.MinDaysFromNow != nil && c.MaxDaysFromNow != nil && *c.MinDaysFromNow > *c.MaxDaysFromNow {
		return &ConfigurationError{Field: "min_days_from_now", Message: fmt.Sprintf("%d is greater than max_days_from_now %d", *c.MinDaysFromNow, *c.MaxDaysFromNow)}
	}

	if c.MinDiscount != nil && (*c.MinDiscount < 0 || *c.MinDiscount > 100) {
		return &ConfigurationError{Field: "min_discount", Message: "must be between 0 and 100"}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
