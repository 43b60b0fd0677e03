// Package templates provides the built-in storefront components
// dispatched through the component registry.
package templates

import (
	"html/template"
	"log"
	"net/url"
	"strings"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

func executeTemplate(sb *strings.Builder, tmpl *template.Template, name string, data interface{}) {
	if err := tmpl.ExecuteTemplate(sb, name, data); err != nil {
		log.Printf("ERROR: Failed to execute component template '%s': %v", name, err)
		sb.WriteString("<!-- template error -->")
	}
}

// pageURL rebuilds the current page URL with one query parameter
// replaced, keeping active filters, search query and sort intact.
func pageURL(ctx *rendering.PageContext, param, value string) string {
	q := url.Values{}
	for code, selected := range ctx.ActiveFilters {
		for _, v := range selected {
			q.Add("filter["+code+"]", v)
		}
	}
	if ctx.SearchQuery != "" {
		q.Set("q", ctx.SearchQuery)
	}
	if ctx.SortBy != "" {
		q.Set("sort", ctx.SortBy)
	}
	if ctx.ViewMode != "" && ctx.ViewMode != rendering.ViewModeGrid {
		q.Set("view", ctx.ViewMode)
	}
	if value == "" {
		q.Del(param)
	} else {
		q.Set(param, value)
	}

	encoded := q.Encode()
	if encoded == "" {
		return "?"
	}
	return "?" + encoded
}

func translateOr(ctx *rendering.PageContext, key, fallback string) string {
	if text := ctx.Translate(key); text != key && text != "" {
		return text
	}
	return fallback
}
