package templates

import (
	"html/template"
	"strings"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

var productGridTmpl = template.Must(template.New("productGrid").Parse(
	`{{define "gridWrapper"}}<div class="product-grid grid grid-cols-2 md:grid-cols-3 lg:grid-cols-4 gap-6{{if .Class}} {{.Class}}{{end}}">{{end}}` +
		`{{define "listWrapper"}}<div class="product-list flex flex-col gap-4{{if .Class}} {{.Class}}{{end}}">{{end}}` +

		`{{define "card"}}
		<div class="product-card{{if .ListMode}} flex gap-4{{end}}" data-product-id="{{.ID}}">
			<a href="{{.URL}}" class="product-card-media relative block">
				{{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.ImageAlt}}" loading="lazy" />{{else}}<div class="product-card-noimage"></div>{{end}}
				{{range .Labels}}<span class="{{.Class}}">{{.Text}}</span>{{end}}
			</a>
			<div class="product-card-body">
				<a href="{{.URL}}" class="product-card-name">{{.Name}}</a>
				<div class="product-card-price">
					<span class="price">{{.PriceFormatted}}</span>
					{{if .HasComparePrice}}<span class="price-compare line-through">{{.ComparePriceFormatted}}</span>{{end}}
				</div>
				{{if .StockLabel}}<span class="{{.StockClass}}">{{.StockLabel}}</span>{{end}}
			</div>
		</div>{{end}}` +

		`{{define "empty"}}<div class="product-grid-empty{{if .Class}} {{.Class}}{{end}}">{{.CountText}}</div>{{end}}`,
))

type gridWrapperData struct {
	Class string
}

type productCardData struct {
	*rendering.ProductView
	ListMode bool
}

type gridEmptyData struct {
	Class     string
	CountText string
}

// RenderProductGrid renders the product card collection. List mode
// swaps the wrapper and card layout; the card data is identical. An
// empty product set renders the count text in place of cards.
func RenderProductGrid(vars *rendering.VariableContext, viewMode, className string) string {
	var sb strings.Builder

	if len(vars.Products) == 0 {
		executeTemplate(&sb, productGridTmpl, "empty", gridEmptyData{Class: className, CountText: vars.CountText})
		return sb.String()
	}

	listMode := viewMode == rendering.ViewModeList
	wrapper := "gridWrapper"
	if listMode {
		wrapper = "listWrapper"
	}

	executeTemplate(&sb, productGridTmpl, wrapper, gridWrapperData{Class: className})
	for _, product := range vars.Products {
		executeTemplate(&sb, productGridTmpl, "card", productCardData{ProductView: product, ListMode: listMode})
	}
	sb.WriteString(`</div>`)
	return sb.String()
}
