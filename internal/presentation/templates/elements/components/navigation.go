package templates

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

var navigationTmpl = template.Must(template.New("layeredNavigation").Parse(
	`{{define "navWrapper"}}<div class="layered-nav{{if .Class}} {{.Class}}{{end}}">{{end}}` +
		`{{define "filterGroup"}}<div class="layered-nav-group" data-filter="{{.Code}}"><h4 class="layered-nav-title">{{.Label}}</h4><ul class="layered-nav-options">{{end}}` +
		`{{define "option"}}<li><a href="{{.URL}}" class="layered-nav-option{{if .Active}} layered-nav-active{{end}}">{{.Label}} <span class="layered-nav-count">({{.Count}})</span></a></li>{{end}}` +
		`{{define "slider"}}<div class="layered-nav-group" data-filter="{{.Code}}"><h4 class="layered-nav-title">{{.Label}}</h4><div class="layered-nav-slider" data-min="{{.Min}}" data-max="{{.Max}}"><input type="range" name="filter[{{.Code}}]" min="{{.Min}}" max="{{.Max}}" /></div></div>{{end}}` +

		`{{define "activeWrapper"}}<div class="active-filters{{if .Class}} {{.Class}}{{end}}">{{end}}` +
		`{{define "chip"}}<a href="{{.URL}}" class="active-filter-chip">{{.Label}}<span class="active-filter-remove" aria-hidden="true">&times;</span></a>{{end}}` +
		`{{define "clearAll"}}<a href="{{.URL}}" class="active-filters-clear">{{.Label}}</a>{{end}}`,
))

type navWrapperData struct {
	Class string
}

type filterGroupData struct {
	Code  string
	Label string
}

type filterOptionData struct {
	URL    string
	Label  string
	Count  int
	Active bool
}

type sliderData struct {
	Code  string
	Label string
	Min   float64
	Max   float64
}

type chipData struct {
	URL   string
	Label string
}

// RenderLayeredNavigation renders the filter sidebar from resolved
// filter views. Sliders suppressed upstream never reach this point.
func RenderLayeredNavigation(ctx *rendering.PageContext, filters []*rendering.FilterView, className string) string {
	if len(filters) == 0 {
		return ""
	}

	var sb strings.Builder
	executeTemplate(&sb, navigationTmpl, "navWrapper", navWrapperData{Class: className})

	for _, filter := range filters {
		if filter.Type == catalog.FilterTypeSlider {
			executeTemplate(&sb, navigationTmpl, "slider", sliderData{
				Code:  filter.Code,
				Label: filter.Label,
				Min:   filter.Min,
				Max:   filter.Max,
			})
			continue
		}

		executeTemplate(&sb, navigationTmpl, "filterGroup", filterGroupData{Code: filter.Code, Label: filter.Label})
		for _, option := range filter.Options {
			executeTemplate(&sb, navigationTmpl, "option", filterOptionData{
				URL:    toggleFilterURL(ctx, filter.Code, option.Value, option.Active),
				Label:  option.Label,
				Count:  option.Count,
				Active: option.Active,
			})
		}
		sb.WriteString(`</ul></div>`)
	}

	sb.WriteString(`</div>`)
	return sb.String()
}

// RenderActiveFilters renders the removable chip row for currently
// selected filter values, plus a clear-all link when anything is
// active.
func RenderActiveFilters(ctx *rendering.PageContext, filters []*rendering.FilterView, className string) string {
	type activeValue struct {
		code  string
		value string
		label string
	}

	var active []activeValue
	for _, filter := range filters {
		for _, option := range filter.Options {
			if option.Active {
				active = append(active, activeValue{
					code:  filter.Code,
					value: option.Value,
					label: fmt.Sprintf("%s: %s", filter.Label, option.Label),
				})
			}
		}
	}
	if len(active) == 0 {
		return ""
	}

	var sb strings.Builder
	executeTemplate(&sb, navigationTmpl, "activeWrapper", navWrapperData{Class: className})
	for _, av := range active {
		executeTemplate(&sb, navigationTmpl, "chip", chipData{
			URL:   toggleFilterURL(ctx, av.code, av.value, true),
			Label: av.label,
		})
	}
	executeTemplate(&sb, navigationTmpl, "clearAll", chipData{
		URL:   clearFiltersURL(ctx),
		Label: translateOr(ctx, "filter.clear_all", "Clear all"),
	})
	sb.WriteString(`</div>`)
	return sb.String()
}

// toggleFilterURL builds the URL that adds or removes one filter
// value, resetting pagination back to the first page.
func toggleFilterURL(ctx *rendering.PageContext, code, value string, active bool) string {
	adjusted := make(map[string][]string, len(ctx.ActiveFilters))
	for c, selected := range ctx.ActiveFilters {
		adjusted[c] = append([]string(nil), selected...)
	}
	if active {
		var kept []string
		for _, v := range adjusted[code] {
			if v != value {
				kept = append(kept, v)
			}
		}
		if len(kept) == 0 {
			delete(adjusted, code)
		} else {
			adjusted[code] = kept
		}
	} else {
		adjusted[code] = append(adjusted[code], value)
	}

	scoped := *ctx
	scoped.ActiveFilters = adjusted
	return pageURL(&scoped, "page", "")
}

func clearFiltersURL(ctx *rendering.PageContext) string {
	scoped := *ctx
	scoped.ActiveFilters = nil
	return pageURL(&scoped, "page", "")
}
