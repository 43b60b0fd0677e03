package templates

import (
	"html/template"
	"strings"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

var imageTmpl = template.Must(template.New("imageElement").Parse(
	`<img id="slot-{{.ID}}" src="{{.Src}}"{{if .Alt}} alt="{{.Alt}}"{{end}}{{if .Class}} class="{{.Class}}"{{end}} loading="lazy" />`,
))

type imageData struct {
	ID    string
	Src   string
	Alt   string
	Class string
}

// RenderImage renders an image slot. The source is the substituted
// content, with metadata.src kept as a fallback for older layouts.
func RenderImage(slot *rendering.Slot, src string) string {
	if src == "" {
		src = metadataString(slot.Metadata, "src")
	}
	if src == "" {
		return ""
	}

	data := imageData{
		ID:    slot.ID,
		Src:   src,
		Alt:   metadataString(slot.Metadata, "alt"),
		Class: slot.ClassName,
	}

	var sb strings.Builder
	executeTemplate(&sb, imageTmpl, "imageElement", data)
	return sb.String()
}
