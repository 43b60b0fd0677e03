package rendering

import (
	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
)

// View modes a category page can render in.
const (
	ViewModeGrid = "grid"
	ViewModeList = "list"
)

// PaginationState carries the raw paging inputs for a render pass.
type PaginationState struct {
	CurrentPage   int `json:"currentPage"`
	ItemsPerPage  int `json:"itemsPerPage"`
	TotalProducts int `json:"totalProducts"`
}

// TotalPages derives the page count; always at least 1.
func (p PaginationState) TotalPages() int {
	if p.ItemsPerPage <= 0 {
		return 1
	}
	pages := (p.TotalProducts + p.ItemsPerPage - 1) / p.ItemsPerPage
	if pages < 1 {
		return 1
	}
	return pages
}

// PageContext is the read-only bundle of everything one render pass
// needs. It is assembled fresh by the owning page service after data
// fetching completes and is never mutated by the renderer.
type PageContext struct {
	StoreID   string `json:"storeId"`
	StoreName string `json:"storeName"`
	BaseURL   string `json:"baseUrl"`

	Category    *catalog.Category    `json:"category,omitempty"`
	Breadcrumbs []catalog.Breadcrumb `json:"breadcrumbs,omitempty"`
	Products    []*catalog.Product   `json:"products,omitempty"`
	Attributes  []*catalog.Attribute `json:"attributes,omitempty"`

	// Settings is the store's merchant-configured settings bag; it is
	// the primary target of conditionalDisplay dot-paths.
	Settings map[string]any `json:"settings,omitempty"`

	CurrencyCode    string            `json:"currencyCode"`
	Locale          string            `json:"locale"`
	Language        string            `json:"language"`
	DefaultLanguage string            `json:"defaultLanguage"`
	Translations    map[string]string `json:"translations,omitempty"` // ui label key -> text

	ActiveFilters map[string][]string `json:"activeFilters,omitempty"` // attribute code -> selected values
	SearchQuery   string              `json:"searchQuery,omitempty"`
	SortBy        string              `json:"sortBy,omitempty"`
	ViewMode      string              `json:"viewMode"`

	Pagination PaginationState `json:"pagination"`
}

// Translate looks up a UI label with fallback to the key itself.
func (c *PageContext) Translate(key string) string {
	if c.Translations != nil {
		if text, ok := c.Translations[key]; ok && text != "" {
			return text
		}
	}
	return key
}
