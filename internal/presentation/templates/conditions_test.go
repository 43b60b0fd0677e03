package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

func conditionContext(settings map[string]any) *rendering.PageContext {
	return &rendering.PageContext{
		StoreID:   "store-1",
		StoreName: "Demo Store",
		BaseURL:   "https://demo.example.com",
		Settings:  settings,
	}
}

func TestEvaluateConditionEmptyPathIsVisible(t *testing.T) {
	assert.True(t, EvaluateCondition("", conditionContext(nil)))
}

func TestEvaluateConditionUnknownRootFailsOpen(t *testing.T) {
	assert.True(t, EvaluateCondition("cart.item_count", conditionContext(nil)))
}

func TestEvaluateConditionAbsentKeyFailsOpen(t *testing.T) {
	ctx := conditionContext(map[string]any{"show_banner": true})
	assert.True(t, EvaluateCondition("settings.no_such_key", ctx))
}

func TestEvaluateConditionExplicitFalseHides(t *testing.T) {
	ctx := conditionContext(map[string]any{"show_banner": false})
	assert.False(t, EvaluateCondition("settings.show_banner", ctx))
}

func TestEvaluateConditionTruthyValueShows(t *testing.T) {
	ctx := conditionContext(map[string]any{
		"show_banner": true,
		"banner_text": "Summer sale",
		"max_items":   float64(10),
	})
	assert.True(t, EvaluateCondition("settings.show_banner", ctx))
	assert.True(t, EvaluateCondition("settings.banner_text", ctx))
	assert.True(t, EvaluateCondition("settings.max_items", ctx))
}

func TestEvaluateConditionFalsyStringsHide(t *testing.T) {
	ctx := conditionContext(map[string]any{
		"empty":   "",
		"literal": "false",
		"zero":    "0",
		"zeroNum": float64(0),
	})
	assert.False(t, EvaluateCondition("settings.empty", ctx))
	assert.False(t, EvaluateCondition("settings.literal", ctx))
	assert.False(t, EvaluateCondition("settings.zero", ctx))
	assert.False(t, EvaluateCondition("settings.zeroNum", ctx))
}

func TestEvaluateConditionBrokenIntermediateHides(t *testing.T) {
	// "theme" exists but is a scalar; descending further reads as an
	// explicit negative rather than an authoring mistake.
	ctx := conditionContext(map[string]any{"theme": "dark"})
	assert.False(t, EvaluateCondition("settings.theme.accent", ctx))
}

func TestEvaluateConditionNestedSettings(t *testing.T) {
	ctx := conditionContext(map[string]any{
		"homepage": map[string]any{
			"show_featured": true,
			"show_banner":   false,
		},
	})
	assert.True(t, EvaluateCondition("settings.homepage.show_featured", ctx))
	assert.False(t, EvaluateCondition("settings.homepage.show_banner", ctx))
}

func TestEvaluateConditionCategoryRoot(t *testing.T) {
	ctx := conditionContext(nil)
	assert.False(t, EvaluateCondition("category.has_parent", ctx))

	ctx.Category = testCategory("cat-1", "Chairs", "parent-1")
	assert.True(t, EvaluateCondition("category.has_parent", ctx))
	assert.True(t, EvaluateCondition("category.name", ctx))
}

func TestEvaluateConditionSearchAndPaginationRoots(t *testing.T) {
	ctx := conditionContext(nil)
	assert.False(t, EvaluateCondition("search.active", ctx))
	assert.False(t, EvaluateCondition("pagination.has_products", ctx))

	ctx.SearchQuery = "chair"
	ctx.Pagination = rendering.PaginationState{CurrentPage: 1, ItemsPerPage: 12, TotalProducts: 3}
	assert.True(t, EvaluateCondition("search.active", ctx))
	assert.True(t, EvaluateCondition("pagination.has_products", ctx))
}

func TestEvaluateConditionNilContextIsVisible(t *testing.T) {
	assert.True(t, EvaluateCondition("settings.show_banner", nil))
}
