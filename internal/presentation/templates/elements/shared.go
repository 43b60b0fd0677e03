// Package templates provides leaf slot element renderers.
package templates

import (
	"html/template"
	"log"
	"strings"
)

func executeTemplate(sb *strings.Builder, tmpl *template.Template, name string, data interface{}) {
	if err := tmpl.ExecuteTemplate(sb, name, data); err != nil {
		log.Printf("ERROR: Failed to execute element template '%s': %v", name, err)
		sb.WriteString("<!-- template error -->")
	}
}

// metadataString pulls a string field out of slot metadata.
func metadataString(metadata map[string]any, key string) string {
	if metadata == nil {
		return ""
	}
	if value, ok := metadata[key].(string); ok {
		return value
	}
	return ""
}
