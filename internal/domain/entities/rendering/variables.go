package rendering

// VariableContext is the formatted, ready-to-display projection of one
// page context. It is rebuilt from scratch on every render pass and is
// the sole input slot templates read from; downstream renderers must
// not reformat what it carries.
type VariableContext struct {
	// Values is the flat substitution map backing {{variable}}
	// placeholders in slot text content and SEO patterns.
	Values map[string]string `json:"values"`

	Products   []*ProductView  `json:"products"`
	Filters    []*FilterView   `json:"filters"`
	Pagination *PaginationView `json:"pagination"`

	// CountText is the human-readable product-count string
	// ("no products found", "1 product", "1-8 of 9 products").
	CountText string `json:"countText"`
}

// ProductView is one product's display-ready projection.
type ProductView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`

	// PriceFormatted carries the currency symbol; PriceRaw is the bare
	// numeric string for templates placing their own symbol.
	PriceFormatted        string `json:"price_formatted"`
	PriceRaw              string `json:"price_raw"`
	ComparePriceFormatted string `json:"compare_price_formatted"`
	ComparePriceRaw       string `json:"compare_price_raw"`
	HasComparePrice       bool   `json:"has_compare_price"`

	InStock    bool   `json:"in_stock"`
	StockLabel string `json:"stock_label"`
	StockClass string `json:"stock_class"`

	Labels []ProductLabel `json:"labels,omitempty"`

	ImageURL string `json:"image_url,omitempty"`
	ImageAlt string `json:"image_alt,omitempty"`
}

// ProductLabel is one badge ("New", "Sale", "Featured") with its
// resolved CSS class.
type ProductLabel struct {
	Text  string `json:"text"`
	Class string `json:"class"`
}

// FilterView is one resolved layered-navigation attribute.
type FilterView struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Type  string `json:"type"`

	// Options is populated for select-type filters.
	Options []FilterOption `json:"options,omitempty"`

	// Min/Max are populated for slider-type filters. Sliders where
	// min == max across the scanned product set are dropped upstream.
	Min float64 `json:"min,omitempty"`
	Max float64 `json:"max,omitempty"`
}

// FilterOption is one selectable value of a select-type filter.
type FilterOption struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}

// PageEntry is one rendered pagination slot: a page number or an
// ellipsis gap marker.
type PageEntry struct {
	Number   int  `json:"number,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// PaginationView is the pre-built pagination projection.
type PaginationView struct {
	Pages       []PageEntry `json:"pages"`
	CurrentPage int         `json:"currentPage"`
	TotalPages  int         `json:"totalPages"`
	HasPrev     bool        `json:"hasPrev"`
	HasNext     bool        `json:"hasNext"`
}
