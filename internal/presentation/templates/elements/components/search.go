package templates

import (
	"html/template"
	"strings"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

var searchTmpl = template.Must(template.New("searchBar").Parse(
	`{{define "searchBar"}}
	<form class="search-bar{{if .Class}} {{.Class}}{{end}}" method="get" action="{{.Action}}" role="search">
		<input type="search" name="q" value="{{.Query}}" placeholder="{{.Placeholder}}" class="search-bar-input" />
		<button type="submit" class="search-bar-submit">{{.Submit}}</button>
	</form>{{end}}` +

		`{{define "sortSelector"}}
	<form class="sort-selector{{if .Class}} {{.Class}}{{end}}" method="get">
		<label class="sort-selector-label" for="sort-by">{{.Label}}</label>
		<select id="sort-by" name="sort" class="sort-selector-select" onchange="this.form.submit()">
			{{range .Options}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
		</select>
	</form>{{end}}`,
))

type searchBarData struct {
	Class       string
	Action      string
	Query       string
	Placeholder string
	Submit      string
}

type sortOptionData struct {
	Value    string
	Label    string
	Selected bool
}

type sortSelectorData struct {
	Class   string
	Label   string
	Options []sortOptionData
}

// sortOrders is the fixed sort menu. Option labels run through the
// translation table with these fallbacks.
var sortOrders = []struct {
	value    string
	key      string
	fallback string
}{
	{"position", "sort.position", "Relevance"},
	{"name_asc", "sort.name_asc", "Name (A-Z)"},
	{"name_desc", "sort.name_desc", "Name (Z-A)"},
	{"price_asc", "sort.price_asc", "Price (low to high)"},
	{"price_desc", "sort.price_desc", "Price (high to low)"},
	{"newest", "sort.newest", "Newest first"},
}

// RenderSearchBar renders the storefront search form, pre-filled with
// the current query.
func RenderSearchBar(ctx *rendering.PageContext, className string) string {
	data := searchBarData{
		Class:       className,
		Action:      strings.TrimSuffix(ctx.BaseURL, "/") + "/search",
		Query:       ctx.SearchQuery,
		Placeholder: translateOr(ctx, "search.placeholder", "Search products"),
		Submit:      translateOr(ctx, "search.submit", "Search"),
	}

	var sb strings.Builder
	executeTemplate(&sb, searchTmpl, "searchBar", data)
	return sb.String()
}

// RenderSortSelector renders the sort order dropdown with the active
// order selected. An empty SortBy selects the first entry.
func RenderSortSelector(ctx *rendering.PageContext, className string) string {
	current := ctx.SortBy
	if current == "" {
		current = sortOrders[0].value
	}

	data := sortSelectorData{
		Class: className,
		Label: translateOr(ctx, "sort.label", "Sort by"),
	}
	for _, order := range sortOrders {
		data.Options = append(data.Options, sortOptionData{
			Value:    order.value,
			Label:    translateOr(ctx, order.key, order.fallback),
			Selected: order.value == current,
		})
	}

	var sb strings.Builder
	executeTemplate(&sb, searchTmpl, "sortSelector", data)
	return sb.String()
}
