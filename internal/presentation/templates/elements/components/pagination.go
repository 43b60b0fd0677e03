package templates

import (
	"html/template"
	"strconv"
	"strings"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

var paginationTmpl = template.Must(template.New("pagination").Parse(
	`{{define "wrapper"}}<nav class="pagination{{if .Class}} {{.Class}}{{end}}" aria-label="Pagination">{{end}}` +
		`{{define "page"}}<a href="{{.URL}}" class="pagination-page{{if .Current}} pagination-current{{end}}"{{if .Current}} aria-current="page"{{end}}>{{.Number}}</a>{{end}}` +
		`{{define "ellipsis"}}<span class="pagination-ellipsis">&hellip;</span>{{end}}` +
		`{{define "arrow"}}<a href="{{.URL}}" class="pagination-arrow" aria-label="{{.Label}}">{{.Glyph}}</a>{{end}}`,
))

type paginationWrapperData struct {
	Class string
}

type paginationPageData struct {
	URL     string
	Number  int
	Current bool
}

type paginationArrowData struct {
	URL   string
	Label string
	Glyph template.HTML
}

// RenderPagination renders the page-entry window with prev/next
// arrows. Single-page result sets render nothing at all.
func RenderPagination(ctx *rendering.PageContext, view *rendering.PaginationView, className string) string {
	if view == nil || view.TotalPages <= 1 {
		return ""
	}

	var sb strings.Builder
	executeTemplate(&sb, paginationTmpl, "wrapper", paginationWrapperData{Class: className})

	if view.HasPrev {
		executeTemplate(&sb, paginationTmpl, "arrow", paginationArrowData{
			URL:   pageURL(ctx, "page", strconv.Itoa(view.CurrentPage-1)),
			Label: "Previous page",
			Glyph: template.HTML("&laquo;"),
		})
	}

	for _, entry := range view.Pages {
		if entry.Ellipsis {
			executeTemplate(&sb, paginationTmpl, "ellipsis", nil)
			continue
		}
		executeTemplate(&sb, paginationTmpl, "page", paginationPageData{
			URL:     pageURL(ctx, "page", strconv.Itoa(entry.Number)),
			Number:  entry.Number,
			Current: entry.Current,
		})
	}

	if view.HasNext {
		executeTemplate(&sb, paginationTmpl, "arrow", paginationArrowData{
			URL:   pageURL(ctx, "page", strconv.Itoa(view.CurrentPage+1)),
			Label: "Next page",
			Glyph: template.HTML("&raquo;"),
		})
	}

	sb.WriteString(`</nav>`)
	return sb.String()
}
