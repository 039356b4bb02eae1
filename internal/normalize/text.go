package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	reSpaces   = regexp.MustCompile(`[ \t\x{00A0}\x{202F}]+`)
	reDiscount = regexp.MustCompile(`(?i)obni[żz]k[ai]\s*(?:o\s*)?(\d+(?:[.,]\d+)?)\s*%`)
	rePercent  = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*%`)
)

// Fold returns a case-folded, whitespace-collapsed form of s for
// case-insensitive comparisons. Casers are not safe for concurrent use, so
// a fresh one is built per call.
func Fold(s string) string {
	return cases.Fold().String(CollapseSpaces(s))
}

// Lower lowercases s with Polish casing rules.
func Lower(s string) string {
	return cases.Lower(language.Polish).String(CollapseSpaces(s))
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

// EqualFold reports whether a and b are equal, ignoring case and extra spaces.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// CollapseSpaces trims s and squeezes runs of blanks into one space.
// Line breaks are kept.
func CollapseSpaces(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := lines[:0]
	for _, l := range lines {
		l = strings.TrimSpace(reSpaces.ReplaceAllString(l, " "))
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

// SplitDiscount separates a discount note ("obniżka 50%") from the rest of
// an attributes cell.
func SplitDiscount(text string) (attributes, discount string, percent *float64) {
	m := reDiscount.FindStringSubmatch(text)
	if m == nil {
		return CollapseSpaces(text), "", nil
	}
	attributes = CollapseSpaces(reDiscount.ReplaceAllString(text, ""))
	discount = "obniżka " + m[1] + "%"
	return attributes, discount, parsePercent(m[1])
}

// ParseDiscountPercent extracts the first percentage from free text.
func ParseDiscountPercent(text string) *float64 {
	m := rePercent.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return parsePercent(m[1])
}

func parsePercent(s string) *float64 {
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || v < 0 || v > 100 {
		return nil
	}
	return &v
}
