// Package templates provides the slot tree rendering pipeline for
// storefront pages.
package templates

import (
	"log"
	"strings"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

// contextAccessor resolves the root segment of a conditionalDisplay
// dot-path into a traversable view of the page context.
type contextAccessor func(ctx *rendering.PageContext) any

// conditionRoots is the closed set of supported dot-path roots. Paths
// rooted anywhere else fail open: slot definitions come from the
// visual editor and an unknown key must never blank a page.
var conditionRoots = map[string]contextAccessor{
	"settings": func(ctx *rendering.PageContext) any { return ctx.Settings },
	"category": func(ctx *rendering.PageContext) any {
		if ctx.Category == nil {
			return nil
		}
		return map[string]any{
			"id":          ctx.Category.ID,
			"name":        ctx.Category.Name,
			"slug":        ctx.Category.Slug,
			"description": ctx.Category.Description,
			"image_url":   ctx.Category.ImageURL,
			"is_active":   ctx.Category.IsActive,
			"has_parent":  ctx.Category.ParentID != "",
		}
	},
	"store": func(ctx *rendering.PageContext) any {
		return map[string]any{
			"id":   ctx.StoreID,
			"name": ctx.StoreName,
			"url":  ctx.BaseURL,
		}
	},
	"pagination": func(ctx *rendering.PageContext) any {
		return map[string]any{
			"current_page":   ctx.Pagination.CurrentPage,
			"total_products": ctx.Pagination.TotalProducts,
			"total_pages":    ctx.Pagination.TotalPages(),
			"has_products":   ctx.Pagination.TotalProducts > 0,
		}
	},
	"search": func(ctx *rendering.PageContext) any {
		return map[string]any{
			"query":  ctx.SearchQuery,
			"active": ctx.SearchQuery != "",
		}
	},
	"filters": func(ctx *rendering.PageContext) any {
		return map[string]any{
			"active":    len(ctx.ActiveFilters) > 0,
			"available": len(ctx.Attributes) > 0,
		}
	},
}

// EvaluateCondition decides visibility for a conditionalDisplay
// dot-path. The policy, deliberately documented rather than
// accidental: no condition or an unknown path means visible
// (fail-open); a path that resolves to an explicit falsy value means
// hidden; any evaluation panic logs a warning and shows the slot.
func EvaluateCondition(path string, ctx *rendering.PageContext) (visible bool) {
	if path == "" || ctx == nil {
		return true
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("WARN: conditionalDisplay %q evaluation panic: %v - showing slot", path, r)
			visible = true
		}
	}()

	segments := strings.Split(path, ".")
	accessor, ok := conditionRoots[segments[0]]
	if !ok {
		return true
	}

	value := accessor(ctx)
	for _, segment := range segments[1:] {
		next, found := descend(value, segment)
		if !found {
			// Unknown key: fail open.
			return true
		}
		value = next
	}

	return truthy(value)
}

// descend resolves one path segment against a traversable value. The
// second return is false only when the key does not exist at all;
// present-but-nil values descend to nil and evaluate falsy.
func descend(value any, key string) (any, bool) {
	switch v := value.(type) {
	case map[string]any:
		next, ok := v[key]
		return next, ok
	case map[string]string:
		next, ok := v[key]
		return next, ok
	case map[string]bool:
		next, ok := v[key]
		return next, ok
	default:
		// Non-traversable intermediate (nil, scalar): the path is
		// broken mid-walk, which reads as an explicit negative.
		return nil, true
	}
}

// truthy applies the display-condition truth rules: nil, false, zero
// numbers, empty strings, and empty collections hide the slot.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "false" && v != "0"
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	case map[string]string:
		return len(v) > 0
	default:
		return true
	}
}
