package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
)

func TestProductQueryHashZeroQueryIsEmpty(t *testing.T) {
	assert.Equal(t, "", ProductQuery{}.Hash())
	assert.Equal(t, "", ProductQuery{Page: 1}.Hash())
}

func TestProductQueryHashIsStable(t *testing.T) {
	a := ProductQuery{
		Filters: map[string][]string{"color": {"red", "blue"}, "size": {"m"}},
		SortBy:  SortPriceAsc,
		Page:    2,
	}
	b := ProductQuery{
		Filters: map[string][]string{"size": {"m"}, "color": {"blue", "red"}},
		SortBy:  SortPriceAsc,
		Page:    2,
	}
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Len(t, a.Hash(), 16)
}

func TestProductQueryHashDiscriminates(t *testing.T) {
	base := ProductQuery{Search: "lamp"}
	other := ProductQuery{Search: "lamp", Page: 2}
	assert.NotEqual(t, base.Hash(), other.Hash())
	assert.NotEqual(t, base.Hash(), ProductQuery{Search: "lamps"}.Hash())
}

func TestMatchesFiltersOrWithinAndAcross(t *testing.T) {
	p := &catalog.Product{Attributes: map[string]string{"color": "red", "size": "m"}}

	assert.True(t, matchesFilters(p, map[string][]string{"color": {"blue", "red"}}))
	assert.True(t, matchesFilters(p, map[string][]string{"color": {"red"}, "size": {"m"}}))
	assert.False(t, matchesFilters(p, map[string][]string{"color": {"red"}, "size": {"l"}}))
	assert.False(t, matchesFilters(p, map[string][]string{"material": {"wool"}}))
}

func TestMatchesFiltersEmptySelectionIgnored(t *testing.T) {
	p := &catalog.Product{Attributes: map[string]string{"color": "red"}}
	assert.True(t, matchesFilters(p, map[string][]string{"size": {}}))
}

func TestMatchesFiltersSliderRange(t *testing.T) {
	p := &catalog.Product{Attributes: map[string]string{"weight": "2.5"}}

	assert.True(t, matchesFilters(p, map[string][]string{"weight": {"1-5"}}))
	assert.False(t, matchesFilters(p, map[string][]string{"weight": {"3-5"}}))
}

func TestParseRange(t *testing.T) {
	min, max, ok := parseRange("10-25.5")
	assert.True(t, ok)
	assert.Equal(t, 10.0, min)
	assert.Equal(t, 25.5, max)

	_, _, ok = parseRange("25-10")
	assert.False(t, ok)
	_, _, ok = parseRange("red")
	assert.False(t, ok)
}

func TestMatchesSearch(t *testing.T) {
	p := &catalog.Product{
		Name:        "Walnut Desk Lamp",
		SKU:         "WDL-100",
		Description: "A warm reading light.",
		Names:       map[string]string{"de": "Schreibtischlampe"},
	}

	assert.True(t, matchesSearch(p, "LAMP"))
	assert.True(t, matchesSearch(p, "wdl"))
	assert.True(t, matchesSearch(p, "reading"))
	assert.True(t, matchesSearch(p, "schreibtisch"))
	assert.True(t, matchesSearch(p, "  "))
	assert.False(t, matchesSearch(p, "chair"))
}

func queryProduct(name string, price float64, featured bool, created time.Time) *catalog.Product {
	return &catalog.Product{
		Name:       name,
		Price:      decimal.NewFromFloat(price),
		IsFeatured: featured,
		Created:    created,
	}
}

func TestSortProductsByPrice(t *testing.T) {
	now := time.Now()
	products := []*catalog.Product{
		queryProduct("b", 30, false, now),
		queryProduct("a", 10, false, now),
		queryProduct("c", 20, false, now),
	}

	sortProducts(products, SortPriceAsc)
	assert.Equal(t, "a", products[0].Name)
	assert.Equal(t, "b", products[2].Name)

	sortProducts(products, SortPriceDesc)
	assert.Equal(t, "b", products[0].Name)
}

func TestSortProductsNewest(t *testing.T) {
	now := time.Now()
	products := []*catalog.Product{
		queryProduct("old", 10, false, now.Add(-time.Hour)),
		queryProduct("new", 10, false, now),
	}

	sortProducts(products, SortNewest)
	assert.Equal(t, "new", products[0].Name)
}

func TestSortProductsDefaultFeaturedFirst(t *testing.T) {
	now := time.Now()
	products := []*catalog.Product{
		queryProduct("alpha", 10, false, now),
		queryProduct("zeta", 10, true, now),
		queryProduct("beta", 10, true, now),
	}

	sortProducts(products, SortDefault)
	assert.Equal(t, "beta", products[0].Name)
	assert.Equal(t, "zeta", products[1].Name)
	assert.Equal(t, "alpha", products[2].Name)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "walnut-desk-lamp", Slugify("Walnut Desk Lamp"))
	assert.Equal(t, "caf-table-2", Slugify("  Café & Table #2! "))
	assert.Equal(t, "", Slugify("---"))
}
