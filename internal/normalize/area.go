package normalize

import (
	"regexp"
	"strings"
)

type Unit string

const (
	UnitHectare     Unit = "ha"
	UnitSquareMeter Unit = "m2"
)

const squareMetersPerHectare = 10000.0

var (
	reHectare     = regexp.MustCompile(`(?i)\d\s*ha\.?\s*$`)
	reSquareMeter = regexp.MustCompile(`(?i)\d\s*(m\s*2|m²|m\.?\s*kw\.?)\s*$`)
)

// Area holds both representations of a parsed surface. Unit is the one
// the source used.
type Area struct {
	Ha   float64
	M2   float64
	Unit Unit
}

// ParseUnit maps a configured unit name to a Unit, defaulting to hectares.
func ParseUnit(s string) Unit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m2", "m²", "sqm":
		return UnitSquareMeter
	default:
		return UnitHectare
	}
}

// ParseArea parses an area and derives the other unit. An explicit unit
// suffix in the text wins over def.
func ParseArea(s string, def Unit) *Area {
	v := ParseFloat(s)
	if v == nil {
		return nil
	}
	unit := def
	trimmed := strings.TrimSpace(s)
	switch {
	case reSquareMeter.MatchString(trimmed):
		unit = UnitSquareMeter
	case reHectare.MatchString(trimmed):
		unit = UnitHectare
	}
	return NewArea(*v, unit)
}

// NewArea builds an Area from a value expressed in unit.
func NewArea(v float64, unit Unit) *Area {
	if unit == UnitSquareMeter {
		return &Area{Ha: v / squareMetersPerHectare, M2: v, Unit: unit}
	}
	return &Area{Ha: v, M2: v * squareMetersPerHectare, Unit: UnitHectare}
}
