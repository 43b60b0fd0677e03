package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func TestResolveDisplayNoCompare(t *testing.T) {
	s := NewPricingService()
	display := s.ResolveDisplay(dec(100), nil)
	assert.False(t, display.HasCompare)
	assert.True(t, display.Display.Equal(dec(100)))
}

func TestResolveDisplayLowerCompareBecomesDisplay(t *testing.T) {
	s := NewPricingService()
	display := s.ResolveDisplay(dec(100), decPtr(80))
	assert.True(t, display.HasCompare)
	assert.True(t, display.Display.Equal(dec(80)))
	assert.True(t, display.Original.Equal(dec(100)))
}

func TestResolveDisplayHigherCompareStaysOriginal(t *testing.T) {
	s := NewPricingService()
	display := s.ResolveDisplay(dec(100), decPtr(150))
	assert.True(t, display.HasCompare)
	assert.True(t, display.Display.Equal(dec(100)))
	assert.True(t, display.Original.Equal(dec(150)))
}

func TestResolveDisplayEqualCompareIgnored(t *testing.T) {
	s := NewPricingService()
	display := s.ResolveDisplay(dec(100), decPtr(100))
	assert.False(t, display.HasCompare)
}

func TestFormatUsesNarrowSymbol(t *testing.T) {
	s := NewPricingService()
	assert.Equal(t, "$100.00", s.Format(dec(100), "USD", "en"))
	assert.Equal(t, "€49.90", s.Format(dec(49.9), "EUR", "en"))
}

func TestFormatUnknownCurrencyFallsBackToCode(t *testing.T) {
	s := NewPricingService()
	assert.Equal(t, "ZZZ 10.00", s.Format(dec(10), "ZZZ", "en"))
}

func TestFormatBadLocaleStillFormats(t *testing.T) {
	s := NewPricingService()
	assert.Equal(t, "$10.00", s.Format(dec(10), "USD", "not a locale"))
}

func TestFormatBare(t *testing.T) {
	s := NewPricingService()
	assert.Equal(t, "1234.50", s.FormatBare(dec(1234.5)))
}

func TestSymbolCacheReturnsSameResult(t *testing.T) {
	s := NewPricingService()
	first := s.Format(dec(1), "USD", "en")
	second := s.Format(dec(1), "USD", "en")
	assert.Equal(t, first, second)
}
