package templates

import (
	"github.com/shopspring/decimal"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
	"github.com/DainoStore/dainostore-go/internal/domain/services"
)

func testResolver() *VariableResolver {
	return NewVariableResolver(services.NewPricingService(), services.NewStockService())
}

func testCategory(id, name, parentID string) *catalog.Category {
	return &catalog.Category{
		ID:       id,
		Name:     name,
		Slug:     name,
		ParentID: parentID,
		IsActive: true,
	}
}

func testProduct(id, name string, price float64) *catalog.Product {
	return &catalog.Product{
		ID:       id,
		Name:     name,
		Slug:     id,
		Price:    decimal.NewFromFloat(price),
		IsActive: true,
	}
}

func comparePrice(amount float64) *decimal.Decimal {
	d := decimal.NewFromFloat(amount)
	return &d
}

func testPageContext(products ...*catalog.Product) *rendering.PageContext {
	return &rendering.PageContext{
		StoreID:      "store-1",
		StoreName:    "Demo Store",
		BaseURL:      "https://demo.example.com",
		Products:     products,
		CurrencyCode: "USD",
		Locale:       "en",
		Language:     "en",
		ViewMode:     rendering.ViewModeGrid,
		Pagination: rendering.PaginationState{
			CurrentPage:   1,
			ItemsPerPage:  12,
			TotalProducts: len(products),
		},
	}
}
