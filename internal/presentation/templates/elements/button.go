package templates

import (
	"html/template"
	"strings"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

var buttonTmpl = template.Must(template.New("buttonElement").Parse(
	`{{define "link"}}<a id="slot-{{.ID}}" href="{{.Href}}"{{if .Class}} class="{{.Class}}"{{end}}>{{.Label}}</a>{{end}}` +
		`{{define "button"}}<button type="button" id="slot-{{.ID}}"{{if .Class}} class="{{.Class}}"{{end}}>{{.Label}}</button>{{end}}`,
))

type buttonData struct {
	ID    string
	Href  string
	Class string
	Label string
}

// RenderButton renders a button slot. A metadata href turns it into a
// styled link; without one it stays a plain button for client-side
// wiring.
func RenderButton(slot *rendering.Slot, label string) string {
	data := buttonData{
		ID:    slot.ID,
		Href:  metadataString(slot.Metadata, "href"),
		Class: slot.ClassName,
		Label: label,
	}

	var sb strings.Builder
	if data.Href != "" {
		executeTemplate(&sb, buttonTmpl, "link", data)
	} else {
		executeTemplate(&sb, buttonTmpl, "button", data)
	}
	return sb.String()
}
