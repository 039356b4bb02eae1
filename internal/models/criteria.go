package models

import "github.com/shopspring/decimal"

// FilterCriteria holds optional filter settings. A nil pointer or an empty
// slice imposes no constraint.
type FilterCriteria struct {
	Location       *string          `json:"location,omitempty"`
	Counties       []string         `json:"counties,omitempty"`
	Form           *string          `json:"form,omitempty"`
	MinAreaHa      *float64         `json:"min_area,omitempty"`
	MaxAreaHa      *float64         `json:"max_area,omitempty"`
	MinPrice       *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice       *decimal.Decimal `json:"max_price,omitempty"`
	PropertyTypes  []string         `json:"property_types,omitempty"`
	MinDaysFromNow *int             `json:"min_days_from_now,omitempty"`
	MaxDaysFromNow *int             `json:"max_days_from_now,omitempty"`
	MinDiscount    *float64         `json:"min_discount,omitempty"`
}

// AppliedCount returns how many criterion fields are set.
func (c FilterCriteria) AppliedCount() int {
	n := 0
	if c.Location != nil {
		n++
	}
	if len(c.Counties) > 0 {
		n++
	}
	if c.Form != nil {
		n++
	}
	if c.MinAreaHa != nil {
		n++
	}
	if c.MaxAreaHa != nil {
		n++
	}
	if c.MinPrice != nil {
		n++
	}
	if c.MaxPrice != nil {
		n++
	}
	if len(c.PropertyTypes) > 0 {
		n++
	}
	if c.MinDaysFromNow != nil {
		n++
	}
	if c.MaxDaysFromNow != nil {
		n++
	}
	if c.MinDiscount != nil {
		n++
	}
	return n
}

// IsEmpty reports whether no criterion is set.
func (c FilterCriteria) IsEmpty() bool {
	return c.AppliedCount() == 0
}

// Ptr returns a pointer to v. Handy for building criteria literals.
func Ptr[T any](v T) *T {
	return &v
}
