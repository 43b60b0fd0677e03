package templates

import (
	"html/template"
	"log"
	"strings"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

var (
	// classAttrTmpl renders the class attribute on its own so
	// authored class strings cannot break out of the attribute.
	classAttrTmpl = template.Must(template.New("classAttr").Parse(` class="{{.}}"`))

	// textTags is a security allowlist. Tags outside it fall back to
	// a paragraph rather than rendering arbitrary markup.
	textTags = map[string]struct{}{
		"h1":   {},
		"h2":   {},
		"h3":   {},
		"h4":   {},
		"h5":   {},
		"h6":   {},
		"p":    {},
		"span": {},
		"div":  {},
	}
)

// RenderText renders a text slot. Content arrives with variables
// already substituted; it is escaped here, authored text is not
// trusted markup.
func RenderText(slot *rendering.Slot, content string) string {
	safeTag := "p"
	if tag := metadataString(slot.Metadata, "tag"); tag != "" {
		if _, ok := textTags[tag]; ok {
			safeTag = tag
		}
	}

	var html strings.Builder
	html.WriteString("<" + safeTag)
	writeClassAttr(&html, slot.ClassName, slot.ID)
	html.WriteString(">")
	html.WriteString(template.HTMLEscapeString(content))
	html.WriteString("</" + safeTag + ">")
	return html.String()
}

func writeClassAttr(html *strings.Builder, className, slotID string) {
	if className == "" {
		return
	}
	if err := classAttrTmpl.Execute(html, className); err != nil {
		log.Printf("ERROR: Failed to execute classAttr template for slot %s: %v", slotID, err)
	}
}
