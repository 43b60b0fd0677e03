package templates

import (
	"html/template"
	"strings"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

var breadcrumbsTmpl = template.Must(template.New("breadcrumbs").Parse(
	`{{define "wrapper"}}<nav class="breadcrumbs{{if .Class}} {{.Class}}{{end}}" aria-label="Breadcrumb"><ol class="breadcrumbs-list">{{end}}` +
		`{{define "crumb"}}<li class="breadcrumbs-item"><a href="{{.URL}}">{{.Name}}</a></li>{{end}}` +
		`{{define "current"}}<li class="breadcrumbs-item breadcrumbs-current" aria-current="page">{{.Name}}</li>{{end}}`,
))

type breadcrumbsWrapperData struct {
	Class string
}

type crumbData struct {
	URL  string
	Name string
}

// RenderBreadcrumbs renders the breadcrumb trail. The final crumb is
// the current page and renders without a link.
func RenderBreadcrumbs(ctx *rendering.PageContext, className string) string {
	if len(ctx.Breadcrumbs) == 0 {
		return ""
	}

	var sb strings.Builder
	executeTemplate(&sb, breadcrumbsTmpl, "wrapper", breadcrumbsWrapperData{Class: className})
	for i, crumb := range ctx.Breadcrumbs {
		data := crumbData{URL: crumb.URL, Name: crumb.Name}
		if i == len(ctx.Breadcrumbs)-1 {
			executeTemplate(&sb, breadcrumbsTmpl, "current", data)
		} else {
			executeTemplate(&sb, breadcrumbsTmpl, "crumb", data)
		}
	}
	sb.WriteString(`</ol></nav>`)
	return sb.String()
}
