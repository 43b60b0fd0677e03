package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
)

func TestStockStatusUnmanagedIsAlwaysAvailable(t *testing.T) {
	s := NewStockService()
	assert.True(t, s.Status(&catalog.Product{ManageStock: false, StockQty: 0}))
}

func TestStockStatusManaged(t *testing.T) {
	s := NewStockService()
	assert.True(t, s.Status(&catalog.Product{ManageStock: true, StockQty: 3}))
	assert.False(t, s.Status(&catalog.Product{ManageStock: true, StockQty: 0}))
}

func TestStockLabelDefaults(t *testing.T) {
	s := NewStockService()

	label, class := s.Label(&catalog.Product{ManageStock: true, StockQty: 1}, nil, nil)
	assert.Equal(t, "In stock", label)
	assert.Equal(t, "in-stock", class)

	label, class = s.Label(&catalog.Product{ManageStock: true, StockQty: 0}, nil, nil)
	assert.Equal(t, "Out of stock", label)
	assert.Equal(t, "out-of-stock", class)
}

func TestStockLabelTranslated(t *testing.T) {
	s := NewStockService()
	translate := func(key string) string {
		if key == "stock.in_stock" {
			return "Auf Lager"
		}
		return key
	}

	label, _ := s.Label(&catalog.Product{}, nil, translate)
	assert.Equal(t, "Auf Lager", label)
}

func TestStockLabelDisabledBySetting(t *testing.T) {
	s := NewStockService()

	settings := map[string]any{"show_stock_label": false}
	label, class := s.Label(&catalog.Product{}, settings, nil)
	assert.Empty(t, label)
	assert.Empty(t, class)

	settings = map[string]any{"show_stock_label": "false"}
	label, _ = s.Label(&catalog.Product{}, settings, nil)
	assert.Empty(t, label)
}
