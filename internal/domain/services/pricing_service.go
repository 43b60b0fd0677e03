// Package services provides domain services shared across the
// application layer.
package services

import (
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PriceDisplay is the resolved display tuple for one product. When a
// compare price exists, Display carries the lower (discounted) price
// and Original the higher one.
type PriceDisplay struct {
	Display    decimal.Decimal
	Original   decimal.Decimal
	HasCompare bool
}

// PricingService is the single source of truth for monetary display.
// The variable resolver is the only approved caller; downstream
// renderers consume its output and never reformat.
type PricingService struct {
	mu      sync.RWMutex
	symbols map[string]string // currencyCode|locale -> symbol
}

// NewPricingService creates a pricing service.
func NewPricingService() *PricingService {
	return &PricingService{symbols: make(map[string]string)}
}

// ResolveDisplay computes the display tuple from a product's price and
// optional compare price. Equal prices do not count as a compare.
func (s *PricingService) ResolveDisplay(price decimal.Decimal, compare *decimal.Decimal) PriceDisplay {
	if compare == nil || compare.Equal(price) {
		return PriceDisplay{Display: price}
	}
	if compare.LessThan(price) {
		return PriceDisplay{Display: *compare, Original: price, HasCompare: true}
	}
	return PriceDisplay{Display: price, Original: *compare, HasCompare: true}
}

// Format renders an amount with its locale-aware currency symbol.
func (s *PricingService) Format(amount decimal.Decimal, currencyCode, locale string) string {
	return s.symbol(currencyCode, locale) + amount.StringFixed(2)
}

// FormatBare renders an amount without a symbol, for templates that
// place the currency symbol themselves.
func (s *PricingService) FormatBare(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// symbol resolves the narrow currency symbol for a code under a
// locale, caching results. Unknown codes fall back to the code itself.
func (s *PricingService) symbol(currencyCode, locale string) string {
	key := currencyCode + "|" + locale
	s.mu.RLock()
	if sym, ok := s.symbols[key]; ok {
		s.mu.RUnlock()
		return sym
	}
	s.mu.RUnlock()

	sym := lookupSymbol(currencyCode, locale)

	s.mu.Lock()
	s.symbols[key] = sym
	s.mu.Unlock()
	return sym
}

func lookupSymbol(currencyCode, locale string) string {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return currencyCode + " "
	}

	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}

	return message.NewPrinter(tag).Sprint(currency.NarrowSymbol(unit))
}
