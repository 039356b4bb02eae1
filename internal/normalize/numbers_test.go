package normalize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		valid    bool
	}{
		{name: "Space thousands and comma decimals", input: "1 234,50", expected: "1234.50", valid: true},
		{name: "Non-breaking space", input: "12\u00a0500,00 zł", expected: "12500", valid: true},
		{name: "Dot thousands with comma decimals", input: "1.234.567,89", expected: "1234567.89", valid: true},
		{name: "Dot thousands only", input: "12.500", expected: "12500", valid: true},
		{name: "Square meters suffix", input: "1 200 m.kw.", expected: "1200", valid: true},
		{name: "Dot decimal", input: "0.08", expected: "0.08", valid: true},
		{name: "Plain integer", input: "50000", expected: "50000", valid: true},
		{name: "Currency suffix", input: "20 000 PLN", expected: "20000", valid: true},
		{name: "Trailing dash", input: "15 000,- zł", expected: "15000", valid: true},
		{name: "Empty", input: "", valid: false},
		{name: "Whitespace", input: "   ", valid: false},
		{name: "Text", input: "brak", valid: false},
		{name: "Negative", input: "-100,00", valid: false},
		{name: "Two commas", input: "1,2,3", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDecimal(tt.input)
			assert.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.True(t, decimal.RequireFromString(tt.expected).Equal(got.Decimal),
					"expected %s, got %s", tt.expected, got.Decimal)
			}
		})
	}
}

func TestParseAmountRoundsToGrosze(t *testing.T) {
	got := ParseAmount("99,999")
	require.True(t, got.Valid)
	assert.Equal(t, "100", got.Decimal.String())

	got = ParseAmount("1 234,50")
	require.True(t, got.Valid)
	assert.Equal(t, "1234.5", got.Decimal.String())
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "Comma decimals with unit", input: "0,0812 ha", expected: 0.0812},
		{name: "Lone dot is a decimal point", input: "1.500", expected: 1.5},
		{name: "Dot groups before a comma", input: "1.234,50", expected: 1234.5},
		{name: "Square meters abbreviation", input: "800 m.kw.", expected: 800},
		{name: "Square meters without dot", input: "800 mkw", expected: 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ParseFloat(tt.input)
			require.NotNil(t, v)
			assert.InDelta(t, tt.expected, *v, 1e-12)
		})
	}

	assert.Nil(t, ParseFloat("n/d"))
	assert.Nil(t, ParseFloat("-1"))
}

func TestParseInt(t *testing.T) {
	v := ParseInt(" 12.")
	require.NotNil(t, v)
	assert.Equal(t, 12, *v)

	assert.Nil(t, ParseInt("Lp."))
	assert.Nil(t, ParseInt(""))
}
