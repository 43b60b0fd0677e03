package templates

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

func TestProductViewPriceTuple(t *testing.T) {
	product := testProduct("p1", "Desk", 100)
	product.ComparePrice = comparePrice(80)

	vc := testResolver().BuildVariableContext(testPageContext(product))
	require.Len(t, vc.Products, 1)

	view := vc.Products[0]
	assert.Equal(t, "$80.00", view.PriceFormatted)
	assert.Equal(t, "80.00", view.PriceRaw)
	assert.True(t, view.HasComparePrice)
	assert.Equal(t, "$100.00", view.ComparePriceFormatted)
	assert.Equal(t, "100.00", view.ComparePriceRaw)
}

func TestProductViewWithoutComparePrice(t *testing.T) {
	vc := testResolver().BuildVariableContext(testPageContext(testProduct("p1", "Desk", 49.9)))
	require.Len(t, vc.Products, 1)

	view := vc.Products[0]
	assert.Equal(t, "$49.90", view.PriceFormatted)
	assert.False(t, view.HasComparePrice)
	assert.Empty(t, view.ComparePriceFormatted)
	assert.Empty(t, view.ComparePriceRaw)
}

func TestProductViewEqualComparePriceIsNotASale(t *testing.T) {
	product := testProduct("p1", "Desk", 100)
	product.ComparePrice = comparePrice(100)

	vc := testResolver().BuildVariableContext(testPageContext(product))
	require.Len(t, vc.Products, 1)
	assert.False(t, vc.Products[0].HasComparePrice)
}

func TestProductViewLabels(t *testing.T) {
	product := testProduct("p1", "Desk", 100)
	product.IsNew = true
	product.ComparePrice = comparePrice(80)
	product.IsFeatured = true

	vc := testResolver().BuildVariableContext(testPageContext(product))
	require.Len(t, vc.Products, 1)

	labels := vc.Products[0].Labels
	require.Len(t, labels, 3)
	assert.Equal(t, "New", labels[0].Text)
	assert.Equal(t, "Sale", labels[1].Text)
	assert.Equal(t, "Featured", labels[2].Text)
	for _, label := range labels {
		assert.Equal(t, "product-label bg-red-500", label.Class)
	}
}

func TestProductViewLabelColorSetting(t *testing.T) {
	product := testProduct("p1", "Desk", 100)
	product.IsNew = true

	ctx := testPageContext(product)
	ctx.Settings = map[string]any{"label_new_color": "emerald"}

	vc := testResolver().BuildVariableContext(ctx)
	require.Len(t, vc.Products, 1)
	require.Len(t, vc.Products[0].Labels, 1)
	assert.Equal(t, "product-label bg-emerald-500", vc.Products[0].Labels[0].Class)
}

func TestProductViewTranslatedName(t *testing.T) {
	product := testProduct("p1", "Desk", 100)
	product.Names = map[string]string{"de": "Schreibtisch"}

	ctx := testPageContext(product)
	ctx.Language = "de"

	vc := testResolver().BuildVariableContext(ctx)
	require.Len(t, vc.Products, 1)
	assert.Equal(t, "Schreibtisch", vc.Products[0].Name)
	assert.Equal(t, "https://demo.example.com/product/p1", vc.Products[0].URL)
}

func TestCountTextCases(t *testing.T) {
	resolver := testResolver()

	cases := []struct {
		name     string
		total    int
		page     int
		perPage  int
		expected string
	}{
		{"no products", 0, 1, 12, "No products found"},
		{"single product", 1, 1, 12, "1 product"},
		{"all fit one page", 9, 1, 12, "9 products"},
		{"range on first page", 9, 1, 8, "1-8 of 9 products"},
		{"range on second page", 9, 2, 8, "9-9 of 9 products"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := testPageContext()
			ctx.Pagination = rendering.PaginationState{
				CurrentPage:   tc.page,
				ItemsPerPage:  tc.perPage,
				TotalProducts: tc.total,
			}
			vc := resolver.BuildVariableContext(ctx)
			assert.Equal(t, tc.expected, vc.CountText)
			assert.Equal(t, tc.expected, vc.Values["count_text"])
		})
	}
}

func pageNumbers(entries []rendering.PageEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		if e.Ellipsis {
			out[i] = "..."
			continue
		}
		out[i] = fmt.Sprintf("%d", e.Number)
	}
	return out
}

func TestBuildPaginationShowsAllPagesUnderCap(t *testing.T) {
	view := BuildPagination(rendering.PaginationState{CurrentPage: 3, ItemsPerPage: 10, TotalProducts: 65})
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7"}, pageNumbers(view.Pages))
	assert.True(t, view.HasPrev)
	assert.True(t, view.HasNext)
}

func TestBuildPaginationWindowsAroundCurrent(t *testing.T) {
	view := BuildPagination(rendering.PaginationState{CurrentPage: 10, ItemsPerPage: 10, TotalProducts: 200})
	assert.Equal(t, []string{"1", "...", "8", "9", "10", "11", "12", "...", "20"}, pageNumbers(view.Pages))

	for _, entry := range view.Pages {
		if entry.Number == 10 {
			assert.True(t, entry.Current)
		} else {
			assert.False(t, entry.Current)
		}
	}
}

func TestBuildPaginationWindowAtEdges(t *testing.T) {
	first := BuildPagination(rendering.PaginationState{CurrentPage: 1, ItemsPerPage: 10, TotalProducts: 200})
	assert.Equal(t, []string{"1", "2", "3", "...", "20"}, pageNumbers(first.Pages))
	assert.False(t, first.HasPrev)

	last := BuildPagination(rendering.PaginationState{CurrentPage: 20, ItemsPerPage: 10, TotalProducts: 200})
	assert.Equal(t, []string{"1", "...", "18", "19", "20"}, pageNumbers(last.Pages))
	assert.False(t, last.HasNext)
}

func TestBuildPaginationClampsCurrentPage(t *testing.T) {
	view := BuildPagination(rendering.PaginationState{CurrentPage: 99, ItemsPerPage: 10, TotalProducts: 30})
	assert.Equal(t, 3, view.CurrentPage)
	assert.False(t, view.HasNext)
}

func sliderAttribute(code string) *catalog.Attribute {
	return &catalog.Attribute{
		ID:           code,
		Code:         code,
		Label:        code,
		FilterType:   catalog.FilterTypeSlider,
		IsFilterable: true,
	}
}

func selectAttribute(code string) *catalog.Attribute {
	return &catalog.Attribute{
		ID:           code,
		Code:         code,
		Label:        code,
		FilterType:   catalog.FilterTypeSelect,
		IsFilterable: true,
	}
}

func TestSliderFilterSuppressedWhenAllValuesEqual(t *testing.T) {
	p1 := testProduct("p1", "Desk", 100)
	p1.Attributes = map[string]string{"weight": "5"}
	p2 := testProduct("p2", "Chair", 50)
	p2.Attributes = map[string]string{"weight": "5"}

	ctx := testPageContext(p1, p2)
	ctx.Attributes = []*catalog.Attribute{sliderAttribute("weight")}

	vc := testResolver().BuildVariableContext(ctx)
	assert.Empty(t, vc.Filters)
}

func TestSliderFilterRangeFromProducts(t *testing.T) {
	p1 := testProduct("p1", "Desk", 100)
	p1.Attributes = map[string]string{"weight": "5"}
	p2 := testProduct("p2", "Chair", 50)
	p2.Attributes = map[string]string{"weight": "12.5"}

	ctx := testPageContext(p1, p2)
	ctx.Attributes = []*catalog.Attribute{sliderAttribute("weight")}

	vc := testResolver().BuildVariableContext(ctx)
	require.Len(t, vc.Filters, 1)
	assert.Equal(t, catalog.FilterTypeSlider, vc.Filters[0].Type)
	assert.Equal(t, 5.0, vc.Filters[0].Min)
	assert.Equal(t, 12.5, vc.Filters[0].Max)
}

func TestSelectFilterCountsAndActiveState(t *testing.T) {
	p1 := testProduct("p1", "Desk", 100)
	p1.Attributes = map[string]string{"color": "red"}
	p2 := testProduct("p2", "Chair", 50)
	p2.Attributes = map[string]string{"color": "blue"}
	p3 := testProduct("p3", "Lamp", 25)
	p3.Attributes = map[string]string{"color": "red"}

	ctx := testPageContext(p1, p2, p3)
	ctx.Attributes = []*catalog.Attribute{selectAttribute("color")}
	ctx.ActiveFilters = map[string][]string{"color": {"red"}}

	vc := testResolver().BuildVariableContext(ctx)
	require.Len(t, vc.Filters, 1)

	options := vc.Filters[0].Options
	require.Len(t, options, 2)
	assert.Equal(t, "blue", options[0].Value)
	assert.Equal(t, 1, options[0].Count)
	assert.False(t, options[0].Active)
	assert.Equal(t, "red", options[1].Value)
	assert.Equal(t, 2, options[1].Count)
	assert.True(t, options[1].Active)
}

func TestFiltersSkipNonFilterableAttributes(t *testing.T) {
	p1 := testProduct("p1", "Desk", 100)
	p1.Attributes = map[string]string{"color": "red"}

	hidden := selectAttribute("color")
	hidden.IsFilterable = false

	ctx := testPageContext(p1)
	ctx.Attributes = []*catalog.Attribute{hidden}

	vc := testResolver().BuildVariableContext(ctx)
	assert.Empty(t, vc.Filters)
}

func TestSubstituteVariables(t *testing.T) {
	values := map[string]string{"store_name": "Demo Store", "count_text": "9 products"}

	assert.Equal(t, "Welcome to Demo Store", SubstituteVariables("Welcome to {{store_name}}", values))
	assert.Equal(t, "Welcome to Demo Store", SubstituteVariables("Welcome to {{ store_name }}", values))
	assert.Equal(t, "Showing ", SubstituteVariables("Showing {{unknown_var}}", values))
	assert.Equal(t, "plain text", SubstituteVariables("plain text", values))
}
