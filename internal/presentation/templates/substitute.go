package templates

import (
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_.]+)\s*\}\}`)

// SubstituteVariables replaces {{variable}} placeholders in authored
// content with values from the flat substitution map. Unknown
// variables resolve to the empty string rather than leaking the
// placeholder into the page.
func SubstituteVariables(content string, values map[string]string) string {
	if content == "" || !strings.Contains(content, "{{") {
		return content
	}
	return placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		return values[key]
	})
}
