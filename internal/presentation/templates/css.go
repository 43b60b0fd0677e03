// Package templates renders published slot layouts into storefront HTML.
package templates

import (
	"sort"
	"strings"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

// SlotClasses merges a slot's authored class list with renderer-supplied
// defaults. Authored classes win by coming last.
func SlotClasses(slot *rendering.Slot, defaults ...string) string {
	parts := make([]string, 0, len(defaults)+1)
	for _, d := range defaults {
		if d != "" {
			parts = append(parts, d)
		}
	}
	if slot != nil && slot.ClassName != "" {
		parts = append(parts, slot.ClassName)
	}
	return strings.Join(parts, " ")
}

// SlotInlineStyles flattens a slot's styles map into an inline style
// string. Keys are sorted so output is deterministic across renders.
func SlotInlineStyles(slot *rendering.Slot) string {
	if slot == nil || len(slot.Styles) == 0 {
		return ""
	}
	keys := make([]string, 0, len(slot.Styles))
	for k := range slot.Styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(slot.Styles[k])
	}
	return sb.String()
}
