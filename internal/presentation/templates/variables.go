package templates

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
	"github.com/DainoStore/dainostore-go/internal/domain/services"
	"github.com/DainoStore/dainostore-go/pkg/config"
)

// VariableResolver projects a page context into the display-ready
// variable context. It is pure: no side effects, rebuilt from scratch
// on every render pass so staleness cannot occur.
type VariableResolver struct {
	pricing *services.PricingService
	stock   *services.StockService
}

// NewVariableResolver creates a variable resolver around the shared
// pricing and stock services. The resolver is the only approved caller
// of the pricing service; downstream renderers must not reformat.
func NewVariableResolver(pricing *services.PricingService, stock *services.StockService) *VariableResolver {
	return &VariableResolver{pricing: pricing, stock: stock}
}

// BuildVariableContext computes the full variable context for one
// render pass.
func (vr *VariableResolver) BuildVariableContext(ctx *rendering.PageContext) *rendering.VariableContext {
	vc := &rendering.VariableContext{
		Values: make(map[string]string),
	}
	if ctx == nil {
		return vc
	}

	vc.Products = vr.resolveProducts(ctx)
	vc.Filters = vr.resolveFilters(ctx)
	vc.Pagination = BuildPagination(ctx.Pagination)
	vc.CountText = vr.buildCountText(ctx)

	vr.fillValues(ctx, vc)
	return vc
}

func (vr *VariableResolver) resolveProducts(ctx *rendering.PageContext) []*rendering.ProductView {
	views := make([]*rendering.ProductView, 0, len(ctx.Products))
	for _, p := range ctx.Products {
		if p == nil {
			continue
		}
		views = append(views, vr.resolveProduct(ctx, p))
	}
	return views
}

func (vr *VariableResolver) resolveProduct(ctx *rendering.PageContext, p *catalog.Product) *rendering.ProductView {
	display := vr.pricing.ResolveDisplay(p.Price, p.ComparePrice)

	view := &rendering.ProductView{
		ID:             p.ID,
		Name:           p.TranslatedName(ctx.Language),
		URL:            productURL(ctx.BaseURL, p.Slug),
		PriceFormatted: vr.pricing.Format(display.Display, ctx.CurrencyCode, ctx.Locale),
		PriceRaw:       vr.pricing.FormatBare(display.Display),
	}

	if display.HasCompare {
		view.HasComparePrice = true
		view.ComparePriceFormatted = vr.pricing.Format(display.Original, ctx.CurrencyCode, ctx.Locale)
		view.ComparePriceRaw = vr.pricing.FormatBare(display.Original)
	}

	view.InStock = vr.stock.Status(p)
	view.StockLabel, view.StockClass = vr.stock.Label(p, ctx.Settings, ctx.Translate)
	view.Labels = vr.resolveLabels(ctx, p)

	if len(p.Images) > 0 && p.Images[0] != nil {
		view.ImageURL = p.Images[0].URL
		view.ImageAlt = p.Images[0].Alt
		if view.ImageAlt == "" {
			view.ImageAlt = view.Name
		}
	}

	return view
}

// labelRule is one badge predicate tested against product flags.
type labelRule struct {
	key          string
	fallback     string
	colorSetting string
	matches      func(p *catalog.Product) bool
}

// labelRules run in a fixed order so badge ordering is stable.
var labelRules = []labelRule{
	{"label.new", "New", "label_new_color", func(p *catalog.Product) bool { return p.IsNew }},
	{"label.sale", "Sale", "label_sale_color", func(p *catalog.Product) bool { return p.OnSale() }},
	{"label.featured", "Featured", "label_featured_color", func(p *catalog.Product) bool { return p.IsFeatured }},
}

func (vr *VariableResolver) resolveLabels(ctx *rendering.PageContext, p *catalog.Product) []rendering.ProductLabel {
	var labels []rendering.ProductLabel
	for _, rule := range labelRules {
		if !rule.matches(p) {
			continue
		}
		labels = append(labels, rendering.ProductLabel{
			Text:  translateOr(ctx, rule.key, rule.fallback),
			Class: labelClass(ctx.Settings, rule.colorSetting),
		})
	}
	return labels
}

// labelClass derives the badge CSS class from an optional configured
// background color; red is the default badge color.
func labelClass(settings map[string]any, colorSetting string) string {
	color := "red"
	if settings != nil {
		if configured, ok := settings[colorSetting].(string); ok && configured != "" {
			color = configured
		}
	}
	return fmt.Sprintf("product-label bg-%s-500", color)
}

func (vr *VariableResolver) resolveFilters(ctx *rendering.PageContext) []*rendering.FilterView {
	attributes := make([]*catalog.Attribute, 0, len(ctx.Attributes))
	for _, a := range ctx.Attributes {
		if a != nil && a.IsFilterable {
			attributes = append(attributes, a)
		}
	}
	sort.SliceStable(attributes, func(i, j int) bool {
		if attributes[i].SortOrder != attributes[j].SortOrder {
			return attributes[i].SortOrder < attributes[j].SortOrder
		}
		return attributes[i].Code < attributes[j].Code
	})

	var filters []*rendering.FilterView
	for _, attr := range attributes {
		var view *rendering.FilterView
		if attr.FilterType == catalog.FilterTypeSlider {
			view = vr.resolveSliderFilter(ctx, attr)
		} else {
			view = vr.resolveSelectFilter(ctx, attr)
		}
		if view != nil {
			filters = append(filters, view)
		}
	}
	return filters
}

// resolveSelectFilter merges attribute metadata with live counts
// computed over the full unfiltered product set. The scan is
// O(values x products) per attribute, acceptable because product sets
// are page-scoped and small.
func (vr *VariableResolver) resolveSelectFilter(ctx *rendering.PageContext, attr *catalog.Attribute) *rendering.FilterView {
	counts := make(map[string]int)
	var values []string
	for _, p := range ctx.Products {
		if p == nil || p.Attributes == nil {
			continue
		}
		value, ok := p.Attributes[attr.Code]
		if !ok || value == "" {
			continue
		}
		if counts[value] == 0 {
			values = append(values, value)
		}
		counts[value]++
	}
	if len(values) == 0 {
		return nil
	}
	sort.Strings(values)

	active := make(map[string]bool)
	for _, selected := range ctx.ActiveFilters[attr.Code] {
		active[selected] = true
	}

	view := &rendering.FilterView{
		Code:  attr.Code,
		Label: attr.TranslatedLabel(ctx.Language),
		Type:  catalog.FilterTypeSelect,
	}
	for _, value := range values {
		view.Options = append(view.Options, rendering.FilterOption{
			Value:  value,
			Label:  attr.TranslatedValueLabel(ctx.Language, value),
			Count:  counts[value],
			Active: active[value],
		})
	}
	return view
}

// resolveSliderFilter extracts numeric values for a slider attribute.
// A slider where every product shares the same value is dropped from
// the filter list entirely rather than shown as an always-true range.
func (vr *VariableResolver) resolveSliderFilter(ctx *rendering.PageContext, attr *catalog.Attribute) *rendering.FilterView {
	var min, max float64
	found := false
	for _, p := range ctx.Products {
		if p == nil || p.Attributes == nil {
			continue
		}
		raw, ok := p.Attributes[attr.Code]
		if !ok || raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if !found {
			min, max = value, value
			found = true
			continue
		}
		if value < min {
			min = value
		}
		if value > max {
			max = value
		}
	}

	if !found || min == max {
		return nil
	}

	return &rendering.FilterView{
		Code:  attr.Code,
		Label: attr.TranslatedLabel(ctx.Language),
		Type:  catalog.FilterTypeSlider,
		Min:   min,
		Max:   max,
	}
}

// BuildPagination produces the page-entry window: every page when the
// total fits the visible cap, otherwise first and last page plus a
// window of two around the current page with ellipsis markers for the
// gaps.
func BuildPagination(state rendering.PaginationState) *rendering.PaginationView {
	totalPages := state.TotalPages()
	current := state.CurrentPage
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	view := &rendering.PaginationView{
		CurrentPage: current,
		TotalPages:  totalPages,
		HasPrev:     current > 1,
		HasNext:     current < totalPages,
	}

	if totalPages <= config.MaxVisiblePages {
		for page := 1; page <= totalPages; page++ {
			view.Pages = append(view.Pages, pageEntry(page, current))
		}
		return view
	}

	windowStart := current - 2
	if windowStart < 2 {
		windowStart = 2
	}
	windowEnd := current + 2
	if windowEnd > totalPages-1 {
		windowEnd = totalPages - 1
	}

	view.Pages = append(view.Pages, pageEntry(1, current))
	if windowStart > 2 {
		view.Pages = append(view.Pages, rendering.PageEntry{Ellipsis: true})
	}
	for page := windowStart; page <= windowEnd; page++ {
		view.Pages = append(view.Pages, pageEntry(page, current))
	}
	if windowEnd < totalPages-1 {
		view.Pages = append(view.Pages, rendering.PageEntry{Ellipsis: true})
	}
	view.Pages = append(view.Pages, pageEntry(totalPages, current))

	return view
}

func pageEntry(page, current int) rendering.PageEntry {
	return rendering.PageEntry{Number: page, Current: page == current}
}

// buildCountText renders the product-count copy with its three
// explicit cases: zero results, exactly one result, and a range. The
// unit word is lowercased deliberately for copy consistency, and the
// range collapses when one page holds everything.
func (vr *VariableResolver) buildCountText(ctx *rendering.PageContext) string {
	total := ctx.Pagination.TotalProducts
	if total == 0 {
		return translateOr(ctx, "catalog.no_products", "No products found")
	}

	singular := strings.ToLower(translateOr(ctx, "catalog.product", "product"))
	plural := strings.ToLower(translateOr(ctx, "catalog.products", "products"))

	if total == 1 {
		return fmt.Sprintf("1 %s", singular)
	}

	per := ctx.Pagination.ItemsPerPage
	if per <= 0 || per >= total {
		return fmt.Sprintf("%d %s", total, plural)
	}

	page := ctx.Pagination.CurrentPage
	if page < 1 {
		page = 1
	}
	from := (page-1)*per + 1
	to := page * per
	if to > total {
		to = total
	}
	return fmt.Sprintf("%d-%d of %d %s", from, to, total, plural)
}

// fillValues populates the flat {{variable}} substitution map.
func (vr *VariableResolver) fillValues(ctx *rendering.PageContext, vc *rendering.VariableContext) {
	values := vc.Values
	values["store_name"] = ctx.StoreName
	values["search_query"] = ctx.SearchQuery
	values["count_text"] = vc.CountText
	values["product_count"] = strconv.Itoa(ctx.Pagination.TotalProducts)
	values["current_page"] = strconv.Itoa(vc.Pagination.CurrentPage)
	values["total_pages"] = strconv.Itoa(vc.Pagination.TotalPages)
	values["view_mode"] = ctx.ViewMode

	if ctx.Category != nil {
		values["category_name"] = ctx.Category.TranslatedName(ctx.Language)
		values["category_slug"] = ctx.Category.Slug
		values["category_description"] = ctx.Category.Description
	}
}

func productURL(baseURL, slug string) string {
	return strings.TrimSuffix(baseURL, "/") + "/product/" + slug
}

func translateOr(ctx *rendering.PageContext, key, fallback string) string {
	if text := ctx.Translate(key); text != key && text != "" {
		return text
	}
	return fallback
}
