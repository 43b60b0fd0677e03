// Package catalog defines the application's core catalog domain entities.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item belonging to one store.
type Product struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	SKU          string           `json:"sku"`
	Description  string           `json:"description,omitempty"`
	Price        decimal.Decimal  `json:"price"`
	ComparePrice *decimal.Decimal `json:"comparePrice,omitempty"`
	StockQty     int              `json:"stockQty"`
	ManageStock  bool             `json:"manageStock"`
	IsNew        bool             `json:"isNew"`
	IsFeatured   bool             `json:"isFeatured"`
	IsActive     bool             `json:"isActive"`
	CategoryIDs  []string         `json:"categoryIds,omitempty"`
	// Attributes maps attribute code to the product's raw value
	// (string for selects, numeric string for sliders).
	Attributes map[string]string `json:"attributes,omitempty"`
	Names      map[string]string `json:"names,omitempty"` // language code -> translated name
	Images     []*ProductImage   `json:"images,omitempty"`
	Created    time.Time         `json:"created"`
	Changed    *time.Time        `json:"changed,omitempty"`
}

// ProductImage holds the stored variants of one uploaded product image.
type ProductImage struct {
	ID       string            `json:"id"`
	Alt      string            `json:"alt,omitempty"`
	URL      string            `json:"url"`
	Variants map[string]string `json:"variants,omitempty"` // size name -> url
}

// OnSale reports whether the product carries a compare price distinct
// from its regular price.
func (p *Product) OnSale() bool {
	return p.ComparePrice != nil && !p.ComparePrice.Equal(p.Price)
}

// TranslatedName returns the product name for the given language code,
// falling back to the default-language name.
func (p *Product) TranslatedName(lang string) string {
	if p.Names != nil {
		if name, ok := p.Names[lang]; ok && name != "" {
			return name
		}
	}
	return p.Name
}

// InStock reports stock availability. Products that do not manage
// stock are always considered available.
func (p *Product) InStock() bool {
	if !p.ManageStock {
		return true
	}
	return p.StockQty > 0
}
