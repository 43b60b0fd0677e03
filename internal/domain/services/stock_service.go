package services

import (
	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
)

// Translation keys consulted for stock labels. When a store has no
// translation for a key, the literal default is used.
const (
	stockKeyIn  = "stock.in_stock"
	stockKeyOut = "stock.out_of_stock"
)

// StockService resolves stock status and display labels from product
// data, store settings, and active translations.
type StockService struct{}

// NewStockService creates a stock service.
func NewStockService() *StockService {
	return &StockService{}
}

// Status reports availability for a product.
func (s *StockService) Status(p *catalog.Product) bool {
	return p.InStock()
}

// Label resolves the stock badge text and CSS class. An empty label is
// returned when the store disables stock labels.
func (s *StockService) Label(p *catalog.Product, settings map[string]any, translate func(string) string) (string, string) {
	if !settingEnabled(settings, "show_stock_label", true) {
		return "", ""
	}

	if p.InStock() {
		return translateOr(translate, stockKeyIn, "In stock"), "in-stock"
	}
	return translateOr(translate, stockKeyOut, "Out of stock"), "out-of-stock"
}

func translateOr(translate func(string) string, key, fallback string) string {
	if translate == nil {
		return fallback
	}
	if text := translate(key); text != key && text != "" {
		return text
	}
	return fallback
}

func settingEnabled(settings map[string]any, key string, defaultValue bool) bool {
	if settings == nil {
		return defaultValue
	}
	value, ok := settings[key]
	if !ok {
		return defaultValue
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != "" && v != "false" && v != "0"
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return defaultValue
	}
}
