package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/catalog"
	"github.com/DainoStore/dainostore-go/internal/domain/entities/rendering"
)

func testLayout(slots ...*rendering.Slot) *rendering.SlotLayout {
	return &rendering.SlotLayout{
		ID:        "layout-1",
		PageType:  "category",
		Published: true,
		Slots:     slotMap(slots...),
	}
}

func testRenderer() *SlotRenderer {
	return NewSlotRenderer(NewDefaultRegistry(), testResolver())
}

func TestRenderPageEmptyLayout(t *testing.T) {
	sr := testRenderer()
	assert.Empty(t, sr.RenderPage(nil, testPageContext()))
	assert.Empty(t, sr.RenderPage(&rendering.SlotLayout{}, testPageContext()))
}

func TestRenderPageTextSlotSubstitutesVariables(t *testing.T) {
	layout := testLayout(
		&rendering.Slot{ID: "heading", Type: rendering.SlotText, Content: "Welcome to {{store_name}}", Metadata: map[string]any{"tag": "h1"}},
	)

	out := testRenderer().RenderPage(layout, testPageContext())
	assert.Contains(t, out, "<h1>")
	assert.Contains(t, out, "Welcome to Demo Store")
}

func TestRenderPageUnknownVariableRendersEmpty(t *testing.T) {
	layout := testLayout(
		&rendering.Slot{ID: "heading", Type: rendering.SlotText, Content: "Count: {{no_such_var}}!"},
	)

	out := testRenderer().RenderPage(layout, testPageContext())
	assert.Contains(t, out, "Count: !")
}

func TestRenderPageEscapesTextContent(t *testing.T) {
	layout := testLayout(
		&rendering.Slot{ID: "heading", Type: rendering.SlotText, Content: "<script>alert(1)</script>"},
	)

	out := testRenderer().RenderPage(layout, testPageContext())
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderPageUnknownSlotTypeRendersPlaceholder(t *testing.T) {
	layout := testLayout(
		&rendering.Slot{ID: "future", Type: "hologram"},
		&rendering.Slot{ID: "inside", ParentID: "future", Type: rendering.SlotText, Content: "still here"},
	)

	out := testRenderer().RenderPage(layout, testPageContext())
	assert.Contains(t, out, "slot-placeholder")
	assert.Contains(t, out, `data-slot-type="hologram"`)
	assert.Contains(t, out, "still here")
}

func TestRenderPageSurvivesParentCycle(t *testing.T) {
	layout := testLayout(
		&rendering.Slot{ID: "a", ParentID: "b", Type: rendering.SlotContainer},
		&rendering.Slot{ID: "b", ParentID: "a", Type: rendering.SlotContainer},
		&rendering.Slot{ID: "safe", Type: rendering.SlotText, Content: "intact"},
	)

	out := testRenderer().RenderPage(layout, testPageContext())
	assert.Contains(t, out, "intact")
}

func TestRenderPageSelfParentTerminates(t *testing.T) {
	layout := testLayout(
		&rendering.Slot{ID: "root", Type: rendering.SlotContainer},
		&rendering.Slot{ID: "loop", ParentID: "loop", Type: rendering.SlotContainer},
		&rendering.Slot{ID: "text", ParentID: "root", Type: rendering.SlotText, Content: "done"},
	)

	out := testRenderer().RenderPage(layout, testPageContext())
	assert.Contains(t, out, "done")
}

func TestRenderPageComponentPanicSkipsOnlyThatSlot(t *testing.T) {
	registry := NewComponentRegistry()
	require.NoError(t, registry.Register(KindCmsBlock, func(req *ComponentRequest) string {
		panic("component bug")
	}))

	sr := NewSlotRenderer(registry, testResolver())
	layout := testLayout(
		&rendering.Slot{ID: "broken", Type: rendering.SlotCmsBlock, Content: "<p>hi</p>"},
		&rendering.Slot{ID: "after", Type: rendering.SlotText, Content: "rest of page", Position: rendering.GridPosition{Row: 1}},
	)

	out := sr.RenderPage(layout, testPageContext())
	assert.Contains(t, out, "rest of page")
	assert.NotContains(t, out, "hi")
}

func TestRenderPageGridAppliesColSpans(t *testing.T) {
	fixed := rendering.ColSpan{}
	require.NoError(t, fixed.UnmarshalJSON([]byte(`4`)))

	perView := rendering.ColSpan{}
	require.NoError(t, perView.UnmarshalJSON([]byte(`{"grid": 3, "list": 12}`)))

	layout := testLayout(
		&rendering.Slot{ID: "grid", Type: rendering.SlotGrid},
		&rendering.Slot{ID: "fixed", ParentID: "grid", Type: rendering.SlotText, Content: "a", ColSpan: fixed},
		&rendering.Slot{ID: "responsive", ParentID: "grid", Type: rendering.SlotText, Content: "b", ColSpan: perView, Position: rendering.GridPosition{Col: 1}},
		&rendering.Slot{ID: "default", ParentID: "grid", Type: rendering.SlotText, Content: "c", Position: rendering.GridPosition{Col: 2}},
	)

	ctx := testPageContext()
	out := testRenderer().RenderPage(layout, ctx)
	assert.Contains(t, out, "col-span-4")
	assert.Contains(t, out, "col-span-3")
	assert.Contains(t, out, "col-span-12")

	ctx.ViewMode = rendering.ViewModeList
	out = testRenderer().RenderPage(layout, ctx)
	assert.NotContains(t, out, "col-span-3")
}

func TestRenderPageReservedSlotIDsDispatchAsComponents(t *testing.T) {
	layout := testLayout(
		&rendering.Slot{ID: "product_grid", Type: rendering.SlotContainer},
	)

	ctx := testPageContext(testProduct("p1", "Desk", 100))
	out := testRenderer().RenderPage(layout, ctx)
	assert.Contains(t, out, "product-card")
	assert.Contains(t, out, "$100.00")
}

func TestRenderPageComponentSlotByName(t *testing.T) {
	layout := testLayout(
		&rendering.Slot{ID: "pager", Type: rendering.SlotComponent, Component: "pagination"},
	)

	ctx := testPageContext()
	ctx.Pagination = rendering.PaginationState{CurrentPage: 2, ItemsPerPage: 10, TotalProducts: 50}
	out := testRenderer().RenderPage(layout, ctx)
	assert.Contains(t, out, "pagination")
	assert.Contains(t, out, `aria-current="page"`)
}

func TestRenderPageComponentNameFromMetadata(t *testing.T) {
	layout := testLayout(
		&rendering.Slot{ID: "legacy", Type: rendering.SlotComponent, Metadata: map[string]any{"component": "search_bar"}},
	)

	out := testRenderer().RenderPage(layout, testPageContext())
	assert.Contains(t, out, "search-bar")
}

func TestRenderPageUnregisteredComponentSkipsSlot(t *testing.T) {
	layout := testLayout(
		&rendering.Slot{ID: "mystery", Type: rendering.SlotComponent, Component: "not_a_thing"},
		&rendering.Slot{ID: "text", Type: rendering.SlotText, Content: "page still works", Position: rendering.GridPosition{Row: 1}},
	)

	out := testRenderer().RenderPage(layout, testPageContext())
	assert.Contains(t, out, "page still works")
}

func TestRenderSlotTreeRendersSubtree(t *testing.T) {
	layout := testLayout(
		&rendering.Slot{ID: "wrap", Type: rendering.SlotContainer},
		&rendering.Slot{ID: "inner", ParentID: "wrap", Type: rendering.SlotText, Content: "fragment"},
		&rendering.Slot{ID: "outside", Type: rendering.SlotText, Content: "not included", Position: rendering.GridPosition{Row: 1}},
	)

	sr := testRenderer()
	out := sr.RenderSlotTree(layout, testPageContext(), "wrap")
	assert.Contains(t, out, "fragment")
	assert.NotContains(t, out, "not included")

	assert.Empty(t, sr.RenderSlotTree(layout, testPageContext(), "missing"))
}

func TestParseLayoutPayload(t *testing.T) {
	payload := []byte(`[
		{"id": "root", "type": "container"},
		{"id": "child", "parentId": "root", "type": "text", "content": "hello"},
		{"type": "text", "content": "no id, dropped"}
	]`)

	slots, err := ParseLayoutPayload("layout-1", payload)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
	assert.Equal(t, rendering.SlotText, slots["child"].Type)

	_, err = ParseLayoutPayload("layout-1", []byte(`{not json`))
	assert.Error(t, err)
}

func TestRenderPageComponentsReceiveSlotMap(t *testing.T) {
	var seen map[string]*rendering.Slot
	registry := NewComponentRegistry()
	err := registry.Register(KindSearchBar, func(req *ComponentRequest) string {
		seen = req.AllSlots
		return ""
	})
	require.NoError(t, err)

	layout := testLayout(
		&rendering.Slot{ID: "header", Type: rendering.SlotText, Content: "Shop"},
		&rendering.Slot{ID: "search", Type: rendering.SlotComponent, Component: "search_bar"},
	)
	NewSlotRenderer(registry, testResolver()).RenderPage(layout, testPageContext())

	require.NotNil(t, seen)
	assert.Contains(t, seen, "header")
	assert.Contains(t, seen, "search")
}

func TestBreadcrumbsBorrowSiblingStyling(t *testing.T) {
	layout := testLayout(
		&rendering.Slot{
			ID:        "header",
			Type:      rendering.SlotText,
			Content:   "Lamps",
			ClassName: "text-sm uppercase",
			ViewModes: []string{"list"},
		},
		&rendering.Slot{
			ID:        "crumbs",
			Type:      rendering.SlotComponent,
			Component: "breadcrumbs",
			Metadata:  map[string]any{"styleFrom": "header"},
		},
	)

	ctx := testPageContext()
	ctx.Breadcrumbs = []catalog.Breadcrumb{
		{Name: "Home", URL: "/"},
		{Name: "Lamps", URL: "/category/lamps"},
	}
	out := testRenderer().RenderPage(layout, ctx)
	assert.Contains(t, out, "text-sm uppercase")
	assert.Contains(t, out, "/category/lamps")
}
