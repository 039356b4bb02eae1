// Package normalize turns locale-specific source text into typed values.
// Every function here is pure: a value that cannot be parsed comes back as
// null (invalid decimal, nil pointer) instead of an error.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	reUnitSuffix = regexp.MustCompile(`(?i)(zł|zl|pln|ha|m2|m²|m\.?kw|%)\.?$`)
	reDotGroups  = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)
	reNumeric    = regexp.MustCompile(`^\d+(\.\d+)?$`)
	reLeadingInt = regexp.MustCompile(`^\d+`)
)

// cleanNumber reduces Polish numeric notation ("1 234,50 zł", "12.500",
// "0,08 ha") to a plain "1234.50" string. Negative values are rejected.
// Without dotGroups a lone dot is a decimal point ("1.500" is 1.5).
func cleanNumber(s string, dotGroups bool) (string, bool) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return "", false
	}
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "−") {
		return "", false
	}
	s = reUnitSuffix.ReplaceAllString(s, "")
	s = strings.TrimSuffix(s, ",-")
	s = strings.TrimSuffix(s, ".-")

	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		if strings.Count(s, ",") > 1 {
			return "", false
		}
		s = strings.Replace(s, ",", ".", 1)
	case dotGroups && reDotGroups.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}

	if !reNumeric.MatchString(s) {
		return "", false
	}
	return s, true
}

// ParseDecimal parses a Polish-formatted number into an exact decimal.
func ParseDecimal(s string) decimal.NullDecimal {
	cleaned, ok := cleanNumber(s, true)
	if !ok {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// ParseAmount parses a currency amount and rounds it to grosze.
func ParseAmount(s string) decimal.NullDecimal {
	d := ParseDecimal(s)
	if !d.Valid {
		return d
	}
	return decimal.NewNullDecimal(d.Decimal.Round(2))
}

// ParseFloat parses a Polish-formatted measurement into a float. Dots are
// thousands separators only next to a decimal comma, so "1.500" is 1.5.
func ParseFloat(s string) *float64 {
	cleaned, ok := cleanNumber(s, false)
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseInt reads the leading integer of s ("2", "3 (kolejny)").
func ParseInt(s string) *int {
	m := reLeadingInt.FindString(strings.TrimSpace(s))
	if m == "" {
		return nil
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &v
}

// IsBlank reports whether s has no printable content.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
