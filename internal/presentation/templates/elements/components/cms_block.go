package templates

import (
	"html/template"
	"strings"
)

var cmsBlockTmpl = template.Must(template.New("cmsBlock").Parse(
	`<div id="slot-{{.ID}}" class="cms-block{{if .Class}} {{.Class}}{{end}}">{{.Content}}</div>`,
))

type cmsBlockData struct {
	ID      string
	Class   string
	Content template.HTML
}

// RenderCmsBlock renders merchant-authored CMS content. The content
// is trusted store-admin HTML with variables already substituted;
// it is emitted unescaped.
func RenderCmsBlock(slotID, content, className string) string {
	if content == "" {
		return ""
	}

	var sb strings.Builder
	executeTemplate(&sb, cmsBlockTmpl, "cmsBlock", cmsBlockData{
		ID:      slotID,
		Class:   className,
		Content: template.HTML(content),
	})
	return sb.String()
}
